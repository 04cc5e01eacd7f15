package editor

import (
	"context"
	"testing"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		UniversityName: "Asia Pacific University",
		CourseName:     "Bachelor of Software Engineering",
		CourseType:     "Bachelor",
		TuitionFee:     "24000",
		MiscFee:        "1500",
		Location:       "Kuala Lumpur",
	}
}

func TestParseFee(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "15500", want: 15500},
		{input: " 1800.50 ", want: 1800.5},
		{input: "1e3", want: 1000},
		{input: "", want: 0},
		{input: "abc", want: 0},
		{input: "1,000", want: 0},
		{input: "-250", want: 0},
		{input: "NaN", want: 0},
		{input: "Inf", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFee(tt.input))
		})
	}
}

func TestDraft_TotalFee(t *testing.T) {
	d := Draft{TuitionFee: "15500", MiscFee: "1800"}
	assert.Equal(t, 17300.0, d.TotalFee())

	d.MiscFee = ""
	assert.Equal(t, 15500.0, d.TotalFee())

	d.TuitionFee = "fifteen"
	assert.Equal(t, 0.0, d.TotalFee())
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Draft)
		wantErr error
		missing []string
	}{
		{
			name:   "valid",
			modify: func(*Draft) {},
		},
		{
			name:    "blank university",
			modify:  func(d *Draft) { d.UniversityName = "   " },
			wantErr: ErrRequiredField,
			missing: []string{"university"},
		},
		{
			name: "blank course and location",
			modify: func(d *Draft) {
				d.CourseName = ""
				d.Location = "\t"
			},
			wantErr: ErrRequiredField,
			missing: []string{"course name", "location"},
		},
		{
			name:   "blank level defaults",
			modify: func(d *Draft) { d.CourseType = "" },
		},
		{
			name:    "unknown level",
			modify:  func(d *Draft) { d.CourseType = "Certificate" },
			wantErr: ErrInvalidLevel,
		},
		{
			name:   "unparseable fee is not a validation error",
			modify: func(d *Draft) { d.TuitionFee = "n/a" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.modify(&d)

			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.missing, d.MissingFields())
		})
	}
}

func TestDraft_Build(t *testing.T) {
	d := validDraft()
	d.Location = "  Penang "
	d.CourseType = "master"
	d.MiscFee = ""
	d.Description = "Evening classes"

	course, err := d.Build("abc")
	require.NoError(t, err)

	assert.Equal(t, model.Course{
		ID:             "abc",
		UniversityName: "Asia Pacific University",
		CourseName:     "Bachelor of Software Engineering",
		CourseType:     model.LevelMaster,
		TuitionFee:     24000,
		MiscFee:        0,
		Location:       "Penang",
		Description:    "Evening classes",
	}, course)
}

func TestDraftFromCourse_RoundTrip(t *testing.T) {
	original := catalog.SeedCourses()[1]

	rebuilt, err := DraftFromCourse(original).Build(original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

func TestEditor_Create(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	ed := New(store)

	course, err := ed.Create(ctx, validDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, course, store.Courses()[0], "new courses are prepended")

	second, err := ed.Create(ctx, validDraft())
	require.NoError(t, err)
	assert.NotEqual(t, course.ID, second.ID)
}

func TestEditor_CreateRejectsInvalidDraft(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	before := store.Courses()

	d := validDraft()
	d.CourseName = " "

	_, err := New(store).Create(ctx, d)
	assert.ErrorIs(t, err, ErrRequiredField)
	assert.Equal(t, before, store.Courses())
}

func TestEditor_CreateTrimmedLocationDoesNotDuplicateOption(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	ed := New(store)

	existing := validDraft()
	existing.Location = "Penang"
	_, err := ed.Create(ctx, existing)
	require.NoError(t, err)

	padded := validDraft()
	padded.Location = "  Penang "
	course, err := ed.Create(ctx, padded)
	require.NoError(t, err)
	assert.Equal(t, "Penang", course.Location)

	count := 0
	for _, loc := range store.Options().Locations {
		if loc == "Penang" {
			count++
		}
		assert.NotEqual(t, "  Penang ", loc)
	}
	assert.Equal(t, 1, count)
}

func TestEditor_Update(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	ed := New(store)

	d := DraftFromCourse(catalog.SeedCourses()[0])
	d.TuitionFee = "29000"

	course, err := ed.Update(ctx, "1", d)
	require.NoError(t, err)
	assert.Equal(t, "1", course.ID, "id preserved")

	got, ok := store.Get("1")
	require.True(t, ok)
	assert.Equal(t, 29000.0, got.TuitionFee)
	assert.Equal(t, 31500.0, got.TotalFee())
}

func TestEditor_UpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	_, err := New(store).Update(ctx, "missing", validDraft())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, catalog.SeedCourses(), store.Courses())
}
