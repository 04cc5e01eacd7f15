package sheets

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/edubridge/internal/model"
)

// Column headers of the course table.
var courseHeader = []any{
	"University",
	"Course",
	"Level",
	"Location",
	"Tuition (MYR)",
	"Misc (MYR)",
	"Total (MYR)",
	"Total (BDT)",
	"Description",
}

// headerRows is the number of rows above the course table.
const headerRows = 4

// BuildRows lays out the catalog as sheet values: a title row, the rate the
// BDT column was computed with, a blank row, the column header and one row
// per course in catalog order.
func BuildRows(courses []model.Course, rate float64, generated time.Time) [][]any {
	values := make([][]any, 0, headerRows+len(courses))
	values = append(values,
		[]any{"EduBridge Course Catalog", generated.Format("Jan 2, 2006 15:04")},
		[]any{"Exchange rate (BDT per MYR)", rate},
		[]any{},
		courseHeader,
	)

	for _, c := range courses {
		values = append(values, []any{
			c.UniversityName,
			c.CourseName,
			string(c.CourseType),
			c.Location,
			money(c.TuitionFee),
			money(c.MiscFee),
			money(c.TotalFee()),
			ConvertedTotal(c, rate),
			c.Description,
		})
	}

	return values
}

// ConvertedTotal is the course total in BDT, rounded to whole taka.
func ConvertedTotal(c model.Course, rate float64) float64 {
	total := decimal.NewFromFloat(c.TuitionFee).Add(decimal.NewFromFloat(c.MiscFee))
	return total.Mul(decimal.NewFromFloat(rate)).Round(0).InexactFloat64()
}

// money rounds to cents without binary float drift.
func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
