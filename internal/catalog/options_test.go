package catalog

import (
	"testing"

	"github.com/Veraticus/edubridge/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDeriveOptions(t *testing.T) {
	opts := DeriveOptions(sampleCatalog())

	assert.Equal(t, []string{
		"Monash University",
		"Sunway University",
		"Taylor's University",
		"University of Malaya",
		"Universiti Sains Malaysia",
	}, opts.Universities)

	assert.Equal(t, []string{
		"Bachelor of Business",
		"Bachelor of Computer Science",
		"Diploma in Information Technology",
		"Foundation in Arts",
		"Master of Engineering",
		"PhD in Chemistry",
	}, opts.CourseNames)

	assert.Equal(t, model.CourseLevels(), opts.Levels)
}

func TestLocations_UnionsBaseline(t *testing.T) {
	courses := []model.Course{
		{ID: "a", Location: "Kuching"},
		{ID: "b", Location: "Penang"},
		{ID: "c", Location: "Kuching"},
	}

	locations := Locations(courses)

	assert.IsIncreasing(t, locations)
	for _, base := range BaseLocations {
		assert.Contains(t, locations, base)
	}
	assert.Contains(t, locations, "Kuching")
	assert.Len(t, locations, len(BaseLocations)+1)
}

func TestLocations_EmptyCatalogStillOffersBaseline(t *testing.T) {
	assert.Len(t, Locations(nil), len(BaseLocations))
	assert.Empty(t, Universities(nil))
	assert.Empty(t, CourseNames(nil))
}

func TestDistinctSorted_SkipsEmptyValues(t *testing.T) {
	courses := []model.Course{{ID: "a", UniversityName: ""}, {ID: "b", UniversityName: "Monash University"}}
	assert.Equal(t, []string{"Monash University"}, Universities(courses))
}
