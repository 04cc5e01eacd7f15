package model

import (
	"math"
	"strings"
)

// AllOption is the sentinel selection that disables a single-value filter.
const AllOption = "All"

// FilterCriteria is a snapshot of the user's narrowing conditions. It has no
// identity and is replaced wholesale whenever the user changes a filter.
type FilterCriteria struct {
	Search     string
	CourseType string
	Location   string
	University string
	CourseName string
	// MaxPrice is an inclusive ceiling on the total fee.
	MaxPrice float64
}

// DefaultFilterCriteria returns the reset state: no search term, every
// selection at "All" and no price ceiling.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		CourseType: AllOption,
		Location:   AllOption,
		University: AllOption,
		CourseName: AllOption,
		MaxPrice:   math.Inf(1),
	}
}

// IsAll reports whether a selection value means "no restriction".
// The empty string is accepted as well so zero-valued criteria behave.
func IsAll(selection string) bool {
	return selection == "" || strings.EqualFold(selection, AllOption)
}

// IsDefault reports whether the criteria impose no restriction at all.
func (f FilterCriteria) IsDefault() bool {
	return f.Search == "" &&
		IsAll(f.CourseType) &&
		IsAll(f.Location) &&
		IsAll(f.University) &&
		IsAll(f.CourseName) &&
		math.IsInf(f.MaxPrice, 1)
}
