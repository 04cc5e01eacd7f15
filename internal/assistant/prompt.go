// Package assistant forwards catalog questions to a text-generation service
// and turns every failure into a fixed advisory message.
package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/edubridge/internal/model"
)

// BuildContext renders one line per course with its fee breakdown, level and
// location, in catalog order.
func BuildContext(courses []model.Course) string {
	lines := make([]string, len(courses))
	for i, c := range courses {
		lines[i] = fmt.Sprintf("%s at %s (Tuition: RM %s, Misc: RM %s, Total: RM %s, Level: %s, Location: %s)",
			c.CourseName,
			c.UniversityName,
			formatAmount(c.TuitionFee),
			formatAmount(c.MiscFee),
			formatAmount(c.TotalFee()),
			c.CourseType,
			c.Location,
		)
	}
	return strings.Join(lines, "\n")
}

// SystemPrompt frames the assistant as an education consultant and embeds the
// catalog snapshot and the exchange rate it was taken with.
func SystemPrompt(courses []model.Course, rate float64) string {
	var sb strings.Builder
	sb.WriteString("You are an expert Malaysian Education Consultant for students in Bangladesh.\n")
	sb.WriteString("Your goal is to help find the best course matches from the provided list based on the user's query.\n\n")
	sb.WriteString("Current Course Inventory with Fee Breakdown:\n")
	if len(courses) == 0 {
		sb.WriteString("(no courses are currently listed)\n")
	} else {
		sb.WriteString(BuildContext(courses))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nCurrent exchange rate: 1 MYR = %s BDT.\n\n", formatAmount(rate))
	sb.WriteString("If matching courses are found, highlight them clearly with their tuition, misc, and total fees.\n")
	sb.WriteString("If no exact match is found, suggest the closest alternatives.\n")
	sb.WriteString("Always explain that the BDT price depends on the current exchange rate.\n")
	sb.WriteString("Provide professional recommendations based on value for money.\n")
	sb.WriteString("Keep the response concise and formatted in markdown.")
	return sb.String()
}

// formatAmount prints whole amounts without a decimal point.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
