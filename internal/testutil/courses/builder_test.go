package courses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/testutil"
	"github.com/Veraticus/edubridge/internal/testutil/courses"
)

func TestBuilder_WithFixturePersists(t *testing.T) {
	cs := courses.NewBuilder(t).WithFixture(courses.FixtureMixedLevels).Build()
	db := testutil.SetupTestDB(t, cs)

	assert.Equal(t, []model.Course(cs), db.Store.Courses())
	assert.Equal(t, []model.Course(cs), db.Reload().Courses())
}

func TestBuilder_PreservesOrder(t *testing.T) {
	cs := courses.NewBuilder(t).
		With(courses.Course("b"), courses.Course("a")).
		WithFixture(courses.FixtureCustomLocation).
		Build()

	assert.Equal(t, []string{"b", "a", "c1"}, cs.IDs())
}

func TestCourseBuilder_Defaults(t *testing.T) {
	course := courses.Course("x").Build()

	assert.Equal(t, model.LevelBachelor, course.CourseType)
	assert.NotEmpty(t, course.UniversityName)
	assert.NotEmpty(t, course.Location)
	assert.Zero(t, course.TotalFee())
}

func TestCourses_Find(t *testing.T) {
	cs := courses.NewBuilder(t).WithFixture(courses.FixtureMixedLevels).Build()

	phd := cs.MustFind(t, "f5")
	assert.Equal(t, model.LevelPhD, phd.CourseType)
	assert.InDelta(t, 23200.0, phd.TotalFee(), 1e-9)

	require.Nil(t, cs.Find("missing"))
}

func TestSetupTestDB_EmptyUsesSeed(t *testing.T) {
	db := testutil.SetupTestDB(t, nil)
	assert.Len(t, db.Store.Courses(), 4)
}
