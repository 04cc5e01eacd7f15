package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
)

func TestBuildRows(t *testing.T) {
	generated := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	seed := catalog.SeedCourses()

	rows := BuildRows(seed, 26.5, generated)

	require.Len(t, rows, headerRows+len(seed))
	assert.Equal(t, []any{"EduBridge Course Catalog", "Mar 1, 2025 09:30"}, rows[0])
	assert.Equal(t, []any{"Exchange rate (BDT per MYR)", 26.5}, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, courseHeader, rows[3])

	for i, c := range seed {
		row := rows[headerRows+i]
		require.Len(t, row, len(courseHeader))
		assert.Equal(t, c.UniversityName, row[0])
		assert.Equal(t, c.CourseName, row[1])
		assert.Equal(t, c.TotalFee(), row[6])
	}

	// Sunway diploma: 17300 MYR at 26.5.
	assert.Equal(t, 458450.0, rows[headerRows+1][7])
}

func TestBuildRows_EmptyCatalog(t *testing.T) {
	rows := BuildRows(nil, 26.5, time.Now())
	assert.Len(t, rows, headerRows)
}

func TestConvertedTotal(t *testing.T) {
	tests := []struct {
		name   string
		course model.Course
		rate   float64
		want   float64
	}{
		{name: "whole", course: model.Course{TuitionFee: 15500, MiscFee: 1800}, rate: 26.5, want: 458450},
		{name: "rounds half up", course: model.Course{TuitionFee: 0.1, MiscFee: 0.2}, rate: 5, want: 2},
		{name: "float drift removed", course: model.Course{TuitionFee: 0.1, MiscFee: 0.2}, rate: 10, want: 3},
		{name: "free", course: model.Course{}, rate: 26.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertedTotal(tt.course, tt.rate))
		})
	}
}
