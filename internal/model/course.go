// Package model defines the course catalog data types shared across the application.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCourseLevel is returned when a level name is not part of the enumeration.
var ErrUnknownCourseLevel = errors.New("unknown course level")

// CourseLevel is the academic level of a course listing.
type CourseLevel string

const (
	// LevelFoundation is a pre-university foundation programme.
	LevelFoundation CourseLevel = "Foundation"
	// LevelDiploma is a diploma programme.
	LevelDiploma CourseLevel = "Diploma"
	// LevelBachelor is an undergraduate degree.
	LevelBachelor CourseLevel = "Bachelor"
	// LevelMaster is a postgraduate master's degree.
	LevelMaster CourseLevel = "Master"
	// LevelPhD is a doctoral programme.
	LevelPhD CourseLevel = "PhD"
	// LevelShortCourse is a non-degree short course.
	LevelShortCourse CourseLevel = "Short Course"
)

// CourseLevels returns the fixed level enumeration in display order.
func CourseLevels() []CourseLevel {
	return []CourseLevel{
		LevelFoundation,
		LevelDiploma,
		LevelBachelor,
		LevelMaster,
		LevelPhD,
		LevelShortCourse,
	}
}

// Valid reports whether l is one of the enumerated levels.
func (l CourseLevel) Valid() bool {
	for _, level := range CourseLevels() {
		if l == level {
			return true
		}
	}
	return false
}

// ParseCourseLevel resolves a user-supplied level name, ignoring case and
// treating hyphens and underscores as spaces ("short-course" → Short Course).
func ParseCourseLevel(s string) (CourseLevel, error) {
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, level := range CourseLevels() {
		if strings.EqualFold(string(level), normalized) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCourseLevel, s)
}

// Course is a single university course listing. Fees are in the primary
// currency (MYR). JSON names match the catalog format persisted by the
// original browser client so exported catalogs round-trip.
type Course struct {
	ID             string      `json:"id"`
	UniversityName string      `json:"universityName"`
	CourseName     string      `json:"courseName"`
	CourseType     CourseLevel `json:"courseType"`
	Location       string      `json:"location"`
	Description    string      `json:"description,omitempty"`
	TuitionFee     float64     `json:"priceMYR"`
	MiscFee        float64     `json:"miscFeesMYR"`
}

// TotalFee is tuition plus miscellaneous fees.
func (c Course) TotalFee() float64 {
	return c.TuitionFee + c.MiscFee
}

// Convert returns amount expressed in the display currency at rate.
func Convert(amount, rate float64) float64 {
	return amount * rate
}
