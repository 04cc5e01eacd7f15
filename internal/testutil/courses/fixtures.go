package courses

import "github.com/Veraticus/edubridge/internal/model"

// Fixture is a named, reusable set of courses.
type Fixture interface {
	Name() string
	Courses() []model.Course
}

type fixture struct {
	name    string
	courses func() []model.Course
}

func (f *fixture) Name() string            { return f.name }
func (f *fixture) Courses() []model.Course { return f.courses() }

// Predefined fixtures.
var (
	// FixtureMixedLevels spans every level and several locations.
	FixtureMixedLevels Fixture = &fixture{
		name: "MixedLevels",
		courses: func() []model.Course {
			return []model.Course{
				Course("f1").At("Taylor's University").Named("Foundation in Arts").Level(model.LevelFoundation).In("Selangor").Fees(18000, 0).Build(),
				Course("f2").At("Sunway University").Named("Diploma in IT").Level(model.LevelDiploma).In("Selangor").Fees(15500, 1800).Build(),
				Course("f3").At("Monash University Malaysia").Named("Bachelor of Business").Level(model.LevelBachelor).In("Johor Bahru").Fees(32000, 2800).Build(),
				Course("f4").At("University of Malaya").Named("Master of Engineering").Level(model.LevelMaster).In("Kuala Lumpur").Fees(35000, 3000).Build(),
				Course("f5").At("Universiti Sains Malaysia").Named("PhD in Chemistry").Level(model.LevelPhD).In("Penang").Fees(22000, 1200).Build(),
				Course("f6").At("Sunway University").Named("Certificate in Data Analytics").Level(model.LevelShortCourse).In("Selangor").Fees(4500, 300).Build(),
			}
		},
	}

	// FixtureCustomLocation includes a location outside the baseline list.
	FixtureCustomLocation Fixture = &fixture{
		name: "CustomLocation",
		courses: func() []model.Course {
			return []model.Course{
				Course("c1").At("Curtin University Malaysia").Named("Bachelor of Engineering").In("Miri").Fees(26000, 2000).Build(),
			}
		},
	}
)
