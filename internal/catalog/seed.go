package catalog

import "github.com/Veraticus/edubridge/internal/model"

// DefaultExchangeRate is the display-currency units per primary-currency unit
// (BDT per MYR) used when no rate has been persisted.
const DefaultExchangeRate = 26.5

// BaseLocations are always offered as location options, even when no course uses them.
var BaseLocations = []string{
	"Cyberjaya",
	"Johor Bahru",
	"Kuala Lumpur",
	"Melaka",
	"Negeri Sembilan",
	"Penang",
	"Perak",
	"Putrajaya",
	"Sabah",
	"Sarawak",
	"Selangor",
}

// SeedCourses returns the example catalog used when nothing has been persisted.
// Each call returns a fresh slice.
func SeedCourses() []model.Course {
	return []model.Course{
		{
			ID:             "1",
			UniversityName: "Taylor's University",
			CourseName:     "Bachelor of Computer Science",
			CourseType:     model.LevelBachelor,
			TuitionFee:     28000,
			MiscFee:        2500,
			Location:       "Selangor",
		},
		{
			ID:             "2",
			UniversityName: "Sunway University",
			CourseName:     "Diploma in Information Technology",
			CourseType:     model.LevelDiploma,
			TuitionFee:     15500,
			MiscFee:        1800,
			Location:       "Selangor",
		},
		{
			ID:             "3",
			UniversityName: "University of Malaya",
			CourseName:     "Master of Engineering",
			CourseType:     model.LevelMaster,
			TuitionFee:     35000,
			MiscFee:        3000,
			Location:       "Kuala Lumpur",
		},
		{
			ID:             "4",
			UniversityName: "Monash University",
			CourseName:     "Bachelor of Business",
			CourseType:     model.LevelBachelor,
			TuitionFee:     32000,
			MiscFee:        2800,
			Location:       "Johor Bahru",
		},
	}
}
