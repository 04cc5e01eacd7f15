// Package courses provides fluent builders and fixtures for course test data.
//
// Example usage:
//
//	cs := courses.NewBuilder(t).
//		WithFixture(courses.FixtureMixedLevels).
//		With(courses.Course("x1").At("Monash University Malaysia").In("Johor Bahru")).
//		Build()
package courses

import (
	"testing"

	"github.com/Veraticus/edubridge/internal/model"
)

// Courses is an ordered set of test courses, newest first.
type Courses []model.Course

// Find returns the course with the given id, or nil.
func (c Courses) Find(id string) *model.Course {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the course with the given id or fails the test.
func (c Courses) MustFind(t *testing.T, id string) model.Course {
	t.Helper()
	course := c.Find(id)
	if course == nil {
		t.Fatalf("course %q not found in test data", id)
	}
	return *course
}

// IDs returns the course ids in order.
func (c Courses) IDs() []string {
	ids := make([]string, len(c))
	for i, course := range c {
		ids[i] = course.ID
	}
	return ids
}

// CourseBuilder assembles a single course.
type CourseBuilder struct {
	course model.Course
}

// Course starts a Bachelor course with the given id and placeholder names.
func Course(id string) *CourseBuilder {
	return &CourseBuilder{course: model.Course{
		ID:             id,
		UniversityName: "Test University",
		CourseName:     "Test Course " + id,
		CourseType:     model.LevelBachelor,
		Location:       "Kuala Lumpur",
	}}
}

// At sets the university name.
func (b *CourseBuilder) At(university string) *CourseBuilder {
	b.course.UniversityName = university
	return b
}

// Named sets the course name.
func (b *CourseBuilder) Named(name string) *CourseBuilder {
	b.course.CourseName = name
	return b
}

// Level sets the course level.
func (b *CourseBuilder) Level(level model.CourseLevel) *CourseBuilder {
	b.course.CourseType = level
	return b
}

// In sets the location.
func (b *CourseBuilder) In(location string) *CourseBuilder {
	b.course.Location = location
	return b
}

// Fees sets tuition and miscellaneous fees.
func (b *CourseBuilder) Fees(tuition, misc float64) *CourseBuilder {
	b.course.TuitionFee = tuition
	b.course.MiscFee = misc
	return b
}

// Described sets the description.
func (b *CourseBuilder) Described(description string) *CourseBuilder {
	b.course.Description = description
	return b
}

// Build returns the course.
func (b *CourseBuilder) Build() model.Course {
	return b.course
}

// Builder collects courses for a test catalog.
type Builder struct {
	t       *testing.T
	seen    map[string]struct{}
	courses Courses
}

// NewBuilder creates a builder bound to t; duplicate ids fail the test.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		t:    t,
		seen: make(map[string]struct{}),
	}
}

// With appends courses in catalog order.
func (b *Builder) With(courses ...*CourseBuilder) *Builder {
	b.t.Helper()
	for _, cb := range courses {
		b.add(cb.Build())
	}
	return b
}

// WithFixture appends every course of a fixture.
func (b *Builder) WithFixture(f Fixture) *Builder {
	b.t.Helper()
	for _, course := range f.Courses() {
		b.add(course)
	}
	return b
}

// Build returns the collected catalog.
func (b *Builder) Build() Courses {
	out := make(Courses, len(b.courses))
	copy(out, b.courses)
	return out
}

func (b *Builder) add(course model.Course) {
	b.t.Helper()
	if _, dup := b.seen[course.ID]; dup {
		b.t.Fatalf("duplicate course id %q in test data", course.ID)
	}
	b.seen[course.ID] = struct{}{}
	b.courses = append(b.courses, course)
}
