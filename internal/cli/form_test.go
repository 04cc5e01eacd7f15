package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/editor"
	"github.com/Veraticus/edubridge/internal/model"
)

func lines(ls ...string) io.Reader {
	return strings.NewReader(strings.Join(ls, "\n") + "\n")
}

func TestForm_FillDraft_NewCourse(t *testing.T) {
	var out bytes.Buffer
	form := NewForm(lines(
		"Universiti Sains Malaysia",
		"PhD in Chemistry",
		"phd",
		"Penang ",
		"22000",
		"1200",
		"",
		"y",
	), &out)

	d, err := form.FillDraft(context.Background(), editor.Draft{}, catalog.DeriveOptions(catalog.SeedCourses()), 26.5)
	require.NoError(t, err)

	course, err := d.Build("x")
	require.NoError(t, err)
	assert.Equal(t, model.LevelPhD, course.CourseType)
	assert.Equal(t, "Penang", course.Location)
	assert.InDelta(t, 23200.0, course.TotalFee(), 1e-9)

	assert.Contains(t, out.String(), "RM 23,200")
	assert.Contains(t, out.String(), "৳ 614,800")
}

func TestForm_FillDraft_KeepsDefaultsOnEnter(t *testing.T) {
	seed := catalog.SeedCourses()[1]
	var out bytes.Buffer
	// Every field accepted as-is, then the tuition changed, then confirm.
	form := NewForm(lines("", "", "", "", "16000", "", "", ""), &out)

	d, err := form.FillDraft(context.Background(), editor.DraftFromCourse(seed), catalog.DeriveOptions(nil), 26.5)
	require.NoError(t, err)

	assert.Equal(t, seed.UniversityName, d.UniversityName)
	assert.Equal(t, "16000", d.TuitionFee)
	assert.InDelta(t, 17800.0, d.TotalFee(), 1e-9)
	assert.Contains(t, out.String(), "["+seed.CourseName+"]")
}

func TestForm_FillDraft_RepromptsRequiredFields(t *testing.T) {
	var out bytes.Buffer
	form := NewForm(lines(
		"", // university left blank
		"Diploma in IT",
		"",
		"   ", // whitespace location
		"abc", // unparseable fee becomes 0
		"",
		"",
		"Sunway University",
		"Selangor",
		"y",
	), &out)

	d, err := form.FillDraft(context.Background(), editor.Draft{}, catalog.DeriveOptions(nil), 26.5)
	require.NoError(t, err)

	assert.Equal(t, "Sunway University", d.UniversityName)
	assert.Equal(t, "Selangor", d.Location)
	assert.Zero(t, d.TotalFee())
	assert.Contains(t, out.String(), "required field is empty")
}

func TestForm_FillDraft_RepromptsInvalidLevel(t *testing.T) {
	var out bytes.Buffer
	form := NewForm(lines(
		"Monash University Malaysia",
		"Bachelor of Business",
		"postdoc",
		"Johor Bahru",
		"32000",
		"2800",
		"",
		"bachelor",
		"yes",
	), &out)

	d, err := form.FillDraft(context.Background(), editor.Draft{}, catalog.DeriveOptions(nil), 26.5)
	require.NoError(t, err)

	level, err := d.Level()
	require.NoError(t, err)
	assert.Equal(t, model.LevelBachelor, level)
}

func TestForm_FillDraft_Declined(t *testing.T) {
	form := NewForm(lines("U", "C", "", "L", "", "", "", "n"), io.Discard)

	_, err := form.FillDraft(context.Background(), editor.Draft{}, catalog.DeriveOptions(nil), 26.5)
	require.ErrorIs(t, err, ErrAborted)
}

func TestForm_FillDraft_InputEnds(t *testing.T) {
	form := NewForm(strings.NewReader("Only a university\n"), io.Discard)

	_, err := form.FillDraft(context.Background(), editor.Draft{}, catalog.DeriveOptions(nil), 26.5)
	require.ErrorIs(t, err, io.EOF)
}

func TestForm_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "no", input: "no\n", defaultYes: true, want: false},
		{name: "default no", input: "\n", want: false},
		{name: "default yes", input: "\n", defaultYes: true, want: true},
		{name: "retry after junk", input: "maybe\nYES\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewForm(strings.NewReader(tt.input), io.Discard)
			got, err := form.Confirm(context.Background(), "Delete?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
