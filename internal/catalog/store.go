package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/model"
)

// Store errors.
var (
	ErrInvalidRate   = errors.New("exchange rate must be a positive number")
	ErrInvalidCourse = errors.New("invalid course")
)

// Persister is the durable backing for the catalog and the exchange rate.
// Load methods return an error wrapping common.ErrNotFound when nothing has
// been saved yet.
type Persister interface {
	LoadCatalog(ctx context.Context) ([]model.Course, error)
	SaveCatalog(ctx context.Context, courses []model.Course) error
	LoadRate(ctx context.Context) (float64, error)
	SaveRate(ctx context.Context, rate float64) error
}

// Store holds the live catalog and exchange rate. Every mutation is written
// through to the persister before the in-memory state changes.
type Store struct {
	persister Persister
	logger    *slog.Logger
	options   *Options
	courses   []model.Course
	rate      float64
	version   uint64
	optionsAt uint64
	mu        sync.RWMutex
}

// NewStore creates a store and loads its state from p.
func NewStore(ctx context.Context, p Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		persister: p,
		logger:    logger,
	}
	s.Load(ctx)

	return s
}

// Load replaces the in-memory state with the persisted catalog and rate.
// Missing or malformed data falls back to the seed catalog and the default
// rate; problems are logged, never returned.
func (s *Store) Load(ctx context.Context) {
	courses := s.loadCourses(ctx)
	rate := s.loadRate(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = courses
	s.rate = rate
	s.version++
}

func (s *Store) loadCourses(ctx context.Context) []model.Course {
	courses, err := s.persister.LoadCatalog(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.logger.Debug("no saved catalog, using seed courses")
		return SeedCourses()
	case err != nil:
		s.logger.Warn("saved catalog unreadable, using seed courses", "error", err)
		return SeedCourses()
	case courses == nil:
		s.logger.Warn("saved catalog is empty, using seed courses")
		return SeedCourses()
	}

	if err := validateCatalog(courses); err != nil {
		s.logger.Warn("saved catalog invalid, using seed courses", "error", err)
		return SeedCourses()
	}

	return courses
}

func (s *Store) loadRate(ctx context.Context) float64 {
	rate, err := s.persister.LoadRate(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return DefaultExchangeRate
	case err != nil:
		s.logger.Warn("saved exchange rate unreadable, using default", "error", err, "default", DefaultExchangeRate)
		return DefaultExchangeRate
	case validateRate(rate) != nil:
		s.logger.Warn("saved exchange rate invalid, using default", "rate", rate, "default", DefaultExchangeRate)
		return DefaultExchangeRate
	}
	return rate
}

// Courses returns a copy of the catalog, newest first.
func (s *Store) Courses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Rate returns the current exchange rate.
func (s *Store) Rate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

// Version increases on every catalog change; callers use it to invalidate
// anything derived from the catalog.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get looks up a course by id.
func (s *Store) Get(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.courses, id); i >= 0 {
		return s.courses[i], true
	}
	return model.Course{}, false
}

// Options returns the derived option sets, recomputing them only when the
// catalog version has moved since the last call.
func (s *Store) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.options == nil || s.optionsAt != s.version {
		opts := DeriveOptions(s.courses)
		s.options = &opts
		s.optionsAt = s.version
	}
	return *s.options
}

// Add prepends a course to the catalog.
func (s *Store) Add(ctx context.Context, course model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCourse)
	}
	if indexOf(s.courses, course.ID) >= 0 {
		return fmt.Errorf("%w: course %s", common.ErrDuplicateEntry, course.ID)
	}

	next := make([]model.Course, 0, len(s.courses)+1)
	next = append(next, course)
	next = append(next, s.courses...)

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info("course added", "id", course.ID, "course", course.CourseName, "university", course.UniversityName)
	return nil
}

// Update replaces the course with the same id. It reports false, without
// touching storage, when no course has that id.
func (s *Store) Update(ctx context.Context, course model.Course) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.courses, course.ID)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Course, len(s.courses))
	copy(next, s.courses)
	next[i] = course

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Info("course updated", "id", course.ID)
	return true, nil
}

// Remove deletes the course with the given id. It reports false, without
// touching storage, when no course has that id.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.courses, id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Course, 0, len(s.courses)-1)
	next = append(next, s.courses[:i]...)
	next = append(next, s.courses[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Info("course removed", "id", id)
	return true, nil
}

// SetRate persists a new exchange rate.
func (s *Store) SetRate(ctx context.Context, rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.SaveRate(ctx, rate); err != nil {
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	s.rate = rate

	s.logger.Info("exchange rate updated", "rate", rate)
	return nil
}

// Reset restores the seed catalog and the default exchange rate.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, SeedCourses()); err != nil {
		return err
	}
	if err := s.persister.SaveRate(ctx, DefaultExchangeRate); err != nil {
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	s.rate = DefaultExchangeRate

	s.logger.Info("catalog reset to seed data")
	return nil
}

// commit saves next and swaps it in. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []model.Course) error {
	if err := s.persister.SaveCatalog(ctx, next); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	s.courses = next
	s.version++
	return nil
}

func indexOf(courses []model.Course, id string) int {
	for i := range courses {
		if courses[i].ID == id {
			return i
		}
	}
	return -1
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return nil
}

func validateCatalog(courses []model.Course) error {
	seen := make(map[string]struct{}, len(courses))
	for i, c := range courses {
		if c.ID == "" {
			return fmt.Errorf("%w: course at index %d has no id", ErrInvalidCourse, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: id %s", common.ErrDuplicateEntry, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
