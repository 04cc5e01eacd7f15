// Package catalog owns the course catalog: the write-through store, the
// filter engine and the option sets derived from the live catalog.
package catalog

import (
	"strings"

	"github.com/Veraticus/edubridge/internal/model"
)

// ApplyFilters returns the courses matching every criterion, in catalog order.
func ApplyFilters(courses []model.Course, criteria model.FilterCriteria) []model.Course {
	filtered := make([]model.Course, 0, len(courses))
	search := strings.ToLower(criteria.Search)

	for _, course := range courses {
		if matches(course, criteria, search) {
			filtered = append(filtered, course)
		}
	}

	return filtered
}

// Matches reports whether a single course satisfies the criteria.
func Matches(course model.Course, criteria model.FilterCriteria) bool {
	return matches(course, criteria, strings.ToLower(criteria.Search))
}

// matches takes the search term already lowered so ApplyFilters lowers it once.
func matches(course model.Course, criteria model.FilterCriteria, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(course.UniversityName), search) &&
		!strings.Contains(strings.ToLower(course.CourseName), search) {
		return false
	}

	if !model.IsAll(criteria.CourseType) && string(course.CourseType) != criteria.CourseType {
		return false
	}
	if !model.IsAll(criteria.Location) && course.Location != criteria.Location {
		return false
	}
	if !model.IsAll(criteria.University) && course.UniversityName != criteria.University {
		return false
	}
	if !model.IsAll(criteria.CourseName) && course.CourseName != criteria.CourseName {
		return false
	}

	return course.TotalFee() <= criteria.MaxPrice
}
