// Package editor turns raw form input into validated course records and hands
// them to the catalog store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrRequiredField = errors.New("required field is empty")
	ErrInvalidLevel  = errors.New("invalid course level")
)

// DefaultLevel is preselected on a blank form.
const DefaultLevel = model.LevelBachelor

// CourseStore is the subset of the catalog store the editor writes to.
type CourseStore interface {
	Add(ctx context.Context, course model.Course) error
	Update(ctx context.Context, course model.Course) (bool, error)
}

// Draft holds the form fields exactly as the user typed them.
type Draft struct {
	UniversityName string
	CourseName     string
	CourseType     string
	TuitionFee     string
	MiscFee        string
	Location       string
	Description    string
}

// DraftFromCourse pre-fills a form for editing an existing course.
func DraftFromCourse(c model.Course) Draft {
	return Draft{
		UniversityName: c.UniversityName,
		CourseName:     c.CourseName,
		CourseType:     string(c.CourseType),
		TuitionFee:     strconv.FormatFloat(c.TuitionFee, 'f', -1, 64),
		MiscFee:        strconv.FormatFloat(c.MiscFee, 'f', -1, 64),
		Location:       c.Location,
		Description:    c.Description,
	}
}

// ParseFee coerces fee input to a number. Blank, unparseable, negative or
// non-finite input becomes 0 rather than an error.
func ParseFee(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// TotalFee is the live total shown while the user is still typing.
func (d Draft) TotalFee() float64 {
	return ParseFee(d.TuitionFee) + ParseFee(d.MiscFee)
}

// Level resolves the level field; a blank field means DefaultLevel.
func (d Draft) Level() (model.CourseLevel, error) {
	if strings.TrimSpace(d.CourseType) == "" {
		return DefaultLevel, nil
	}

	level, err := model.ParseCourseLevel(d.CourseType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, d.CourseType)
	}
	return level, nil
}

// MissingFields lists the required fields that are blank after trimming.
func (d Draft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.UniversityName) == "" {
		missing = append(missing, "university")
	}
	if strings.TrimSpace(d.CourseName) == "" {
		missing = append(missing, "course name")
	}
	if strings.TrimSpace(d.Location) == "" {
		missing = append(missing, "location")
	}
	return missing
}

// Validate reports the first reason the draft cannot be submitted.
func (d Draft) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRequiredField, strings.Join(missing, ", "))
	}
	if _, err := d.Level(); err != nil {
		return err
	}
	return nil
}

// Build validates the draft and produces the course record with the given id.
// Location is stored trimmed so "Penang " and "Penang" stay one option.
func (d Draft) Build(id string) (model.Course, error) {
	if err := d.Validate(); err != nil {
		return model.Course{}, err
	}

	level, _ := d.Level()

	return model.Course{
		ID:             id,
		UniversityName: d.UniversityName,
		CourseName:     d.CourseName,
		CourseType:     level,
		TuitionFee:     ParseFee(d.TuitionFee),
		MiscFee:        ParseFee(d.MiscFee),
		Location:       strings.TrimSpace(d.Location),
		Description:    d.Description,
	}, nil
}

// Editor submits drafts to a course store.
type Editor struct {
	store CourseStore
	newID func() string
}

// New creates an editor that generates random UUIDs for new courses.
func New(store CourseStore) *Editor {
	return &Editor{
		store: store,
		newID: uuid.NewString,
	}
}

// Create validates the draft, assigns a fresh id and adds the course.
func (e *Editor) Create(ctx context.Context, d Draft) (model.Course, error) {
	course, err := d.Build(e.newID())
	if err != nil {
		return model.Course{}, err
	}

	if err := e.store.Add(ctx, course); err != nil {
		return model.Course{}, fmt.Errorf("failed to add course: %w", err)
	}
	return course, nil
}

// Update validates the draft and replaces the course with the given id.
// It returns common.ErrNotFound when the catalog has no such course.
func (e *Editor) Update(ctx context.Context, id string, d Draft) (model.Course, error) {
	course, err := d.Build(id)
	if err != nil {
		return model.Course{}, err
	}

	found, err := e.store.Update(ctx, course)
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to update course: %w", err)
	}
	if !found {
		return model.Course{}, fmt.Errorf("course %s: %w", id, common.ErrNotFound)
	}
	return course, nil
}
