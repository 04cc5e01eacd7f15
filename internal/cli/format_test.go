package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{17300, "17,300"},
		{458450, "458,450"},
		{1234567.891, "1,234,567.89"},
		{0.1 + 0.2, "0.30"},
		{-2500, "-2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestFormatCurrencies(t *testing.T) {
	assert.Equal(t, "RM 17,300", FormatMYR(17300))
	assert.Equal(t, "৳ 458,450", FormatBDT(17300, 26.5))
	assert.Equal(t, "৳ 3", FormatBDT(0.1, 25))
}

func TestRenderCourseTable(t *testing.T) {
	out := RenderCourseTable(catalog.SeedCourses(), 26.5)

	for _, c := range catalog.SeedCourses() {
		assert.Contains(t, out, c.CourseName)
	}
	assert.Contains(t, out, "RM 17,300")
	assert.Contains(t, out, "৳ 458,450")
}

func TestRenderCourseTable_Empty(t *testing.T) {
	assert.Contains(t, RenderCourseTable(nil, 26.5), "No courses match")
}

func TestRenderCourseDetail(t *testing.T) {
	c := model.Course{
		ID:             "abc",
		UniversityName: "Universiti Sains Malaysia",
		CourseName:     "PhD in Chemistry",
		CourseType:     model.LevelPhD,
		TuitionFee:     22000,
		MiscFee:        1200,
		Location:       "Penang",
		Description:    "Research track",
	}

	out := RenderCourseDetail(c, 26.5)
	assert.Contains(t, out, "RM 22,000")
	assert.Contains(t, out, "RM 1,200")
	assert.Contains(t, out, "RM 23,200")
	assert.Contains(t, out, "Research track")
}

func TestRenderOptions(t *testing.T) {
	out := RenderOptions(catalog.DeriveOptions(catalog.SeedCourses()))

	assert.Contains(t, out, "Universities (4)")
	assert.Contains(t, out, "Levels (6)")
	assert.Less(t, strings.Index(out, "Cyberjaya"), strings.Index(out, "Sarawak"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1", shortID("1"))
	assert.Equal(t, "3f2b9c1e", shortID("3f2b9c1e-8d7a-4b1e-9a0f-123456789abc"))
}
