package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
)

// Currency prefixes.
const (
	MYR = "RM"
	BDT = "৳"
)

// FormatAmount renders amount with thousands separators, dropping the
// fraction for whole numbers and otherwise rounding to two places.
func FormatAmount(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	s := d.StringFixed(2)
	if d.Equal(d.Truncate(0)) {
		s = d.StringFixed(0)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteString("." + frac)
	}
	return sign + b.String()
}

// FormatMYR renders an amount in the primary currency.
func FormatMYR(amount float64) string {
	return MYR + " " + FormatAmount(amount)
}

// FormatBDT renders a primary-currency amount converted at rate.
func FormatBDT(amountMYR, rate float64) string {
	converted := decimal.NewFromFloat(amountMYR).Mul(decimal.NewFromFloat(rate)).Round(0).InexactFloat64()
	return BDT + " " + FormatAmount(converted)
}

// RenderCourseTable lays out courses with both currencies. An empty slice
// renders a short notice instead of an empty table.
func RenderCourseTable(courses []model.Course, rate float64) string {
	if len(courses) == 0 {
		return SubtleStyle.Render("No courses match the current filters.")
	}

	rows := make([][]string, len(courses))
	for i, c := range courses {
		rows[i] = []string{
			shortID(c.ID),
			c.UniversityName,
			c.CourseName,
			string(c.CourseType),
			c.Location,
			FormatMYR(c.TotalFee()),
			FormatBDT(c.TotalFee(), rate),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("ID", "University", "Course", "Level", "Location", "Total (MYR)", "Total (BDT)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case col == 6:
				return AccentStyle.PaddingRight(2)
			default:
				return TableCellStyle
			}
		})

	return t.String()
}

// RenderCourseDetail renders every field of a course including the fee breakdown.
func RenderCourseDetail(c model.Course, rate float64) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
	}

	field("ID", c.ID)
	field("University", c.UniversityName)
	field("Course", c.CourseName)
	field("Level", string(c.CourseType))
	field("Location", c.Location)
	field("Tuition", FormatMYR(c.TuitionFee))
	field("Misc", FormatMYR(c.MiscFee))
	field("Total", FormatMYR(c.TotalFee())+"  "+AccentStyle.Render(FormatBDT(c.TotalFee(), rate)))
	if c.Description != "" {
		field("Description", c.Description)
	}

	return RenderBox(c.CourseName, strings.TrimRight(b.String(), "\n"))
}

// RenderOptions lists every derived option set.
func RenderOptions(opts catalog.Options) string {
	levels := make([]string, len(opts.Levels))
	for i, l := range opts.Levels {
		levels[i] = string(l)
	}

	sections := []struct {
		title  string
		values []string
	}{
		{"Universities", opts.Universities},
		{"Courses", opts.CourseNames},
		{"Locations", opts.Locations},
		{"Levels", levels},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(TitleStyle.UnsetMargins().Render(fmt.Sprintf("%s (%d)", s.title, len(s.values))))
		b.WriteString("\n")
		for _, v := range s.values {
			b.WriteString("  • " + v + "\n")
		}
	}
	return b.String()
}

// shortID keeps generated UUIDs readable in tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
