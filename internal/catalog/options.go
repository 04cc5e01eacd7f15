package catalog

import (
	"sort"

	"github.com/Veraticus/edubridge/internal/model"
)

// Options are the selectable values derived from the whole catalog.
type Options struct {
	Universities []string
	CourseNames  []string
	Locations    []string
	Levels       []model.CourseLevel
}

// DeriveOptions computes every option set from the full catalog.
func DeriveOptions(courses []model.Course) Options {
	return Options{
		Universities: Universities(courses),
		CourseNames:  CourseNames(courses),
		Locations:    Locations(courses),
		Levels:       model.CourseLevels(),
	}
}

// Universities returns the distinct university names, sorted.
func Universities(courses []model.Course) []string {
	return distinctSorted(nil, courses, func(c model.Course) string { return c.UniversityName })
}

// CourseNames returns the distinct course names, sorted.
func CourseNames(courses []model.Course) []string {
	return distinctSorted(nil, courses, func(c model.Course) string { return c.CourseName })
}

// Locations returns BaseLocations united with every location in use, sorted.
func Locations(courses []model.Course) []string {
	return distinctSorted(BaseLocations, courses, func(c model.Course) string { return c.Location })
}

func distinctSorted(base []string, courses []model.Course, field func(model.Course) string) []string {
	seen := make(map[string]struct{}, len(base)+len(courses))
	values := make([]string, 0, len(base)+len(courses))

	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	for _, v := range base {
		add(v)
	}
	for _, c := range courses {
		add(field(c))
	}

	sort.Strings(values)
	return values
}
