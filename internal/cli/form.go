package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/editor"
)

// ErrAborted is returned when the user declines to save a form.
var ErrAborted = errors.New("aborted by user")

// Form collects course fields line by line. Pressing enter on a field keeps
// the value shown in brackets.
type Form struct {
	reader *LineReader
	writer io.Writer
}

// NewForm creates a form reading from r and writing prompts to w.
func NewForm(r io.Reader, w io.Writer) *Form {
	return &Form{reader: NewLineReader(r), writer: w}
}

// FillDraft prompts for every field starting from initial, re-prompts the
// fields that fail validation, shows the total and asks for confirmation.
func (f *Form) FillDraft(ctx context.Context, initial editor.Draft, opts catalog.Options, rate float64) (editor.Draft, error) {
	d := initial

	if err := f.hint("Locations", opts.Locations); err != nil {
		return d, err
	}

	steps := []struct {
		label string
		value *string
	}{
		{"University", &d.UniversityName},
		{"Course name", &d.CourseName},
		{"Level (" + levelNames(opts) + ")", &d.CourseType},
		{"Location", &d.Location},
		{"Tuition fee (MYR)", &d.TuitionFee},
		{"Misc fees (MYR)", &d.MiscFee},
		{"Description", &d.Description},
	}
	for _, s := range steps {
		if err := f.ask(ctx, s.label, s.value); err != nil {
			return d, err
		}
	}

	for {
		err := d.Validate()
		if err == nil {
			break
		}
		if _, werr := fmt.Fprintln(f.writer, FormatError(err.Error())); werr != nil {
			return d, werr
		}

		switch {
		case errors.Is(err, editor.ErrInvalidLevel):
			d.CourseType = ""
			err = f.ask(ctx, "Level ("+levelNames(opts)+")", &d.CourseType)
		default:
			err = f.askMissing(ctx, &d)
		}
		if err != nil {
			return d, err
		}
	}

	total := d.TotalFee()
	if _, err := fmt.Fprintf(f.writer, "%s %s  %s\n",
		BoldStyle.Render("Total:"), FormatMYR(total), AccentStyle.Render(FormatBDT(total, rate))); err != nil {
		return d, err
	}

	ok, err := f.Confirm(ctx, "Save this course?", true)
	if err != nil {
		return d, err
	}
	if !ok {
		return d, ErrAborted
	}
	return d, nil
}

// Confirm asks a yes/no question. An empty answer picks defaultYes.
func (f *Form) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	for {
		if _, err := fmt.Fprint(f.writer, FormatPrompt(question+" "+suffix)); err != nil {
			return false, err
		}
		answer, err := f.reader.ReadLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(f.writer, FormatError("Please answer y or n.")); err != nil {
			return false, err
		}
	}
}

func (f *Form) askMissing(ctx context.Context, d *editor.Draft) error {
	for _, name := range d.MissingFields() {
		var err error
		switch name {
		case "university":
			err = f.ask(ctx, "University", &d.UniversityName)
		case "course name":
			err = f.ask(ctx, "Course name", &d.CourseName)
		case "location":
			err = f.ask(ctx, "Location", &d.Location)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) ask(ctx context.Context, label string, value *string) error {
	prompt := label
	if *value != "" {
		prompt += " [" + *value + "]"
	}
	if _, err := fmt.Fprint(f.writer, FormatPrompt(prompt)); err != nil {
		return err
	}

	line, err := f.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("input ended before the form was complete: %w", err)
		}
		return err
	}
	if line != "" {
		*value = line
	}
	return nil
}

func (f *Form) hint(title string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(f.writer, SubtleStyle.Render(title+": "+strings.Join(values, ", ")))
	return err
}

func levelNames(opts catalog.Options) string {
	names := make([]string, len(opts.Levels))
	for i, l := range opts.Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
