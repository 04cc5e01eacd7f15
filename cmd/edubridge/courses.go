package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/editor"
	"github.com/Veraticus/edubridge/internal/model"
)

func coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course", "c"},
		Short:   "List, show, add, edit and delete courses",
	}

	cmd.AddCommand(coursesListCmd())
	cmd.AddCommand(coursesShowCmd())
	cmd.AddCommand(coursesAddCmd())
	cmd.AddCommand(coursesEditCmd())
	cmd.AddCommand(coursesDeleteCmd())
	cmd.AddCommand(coursesImportCmd())
	cmd.AddCommand(coursesExportCmd())

	return cmd
}

func coursesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List courses matching the filters",
		Long: `List the catalog, newest first, with every total shown in MYR and
converted to BDT at the current exchange rate.

Selections take the exact option value (see 'edubridge options'); "All"
disables a filter. The search matches university and course names,
ignoring case.`,
		RunE: runCoursesList,
	}

	addFilterFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the matching courses as JSON")

	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Match university or course name")
	cmd.Flags().String("level", model.AllOption, "Course level (Foundation, Diploma, Bachelor, Master, PhD, Short Course)")
	cmd.Flags().String("location", model.AllOption, "Exact location")
	cmd.Flags().String("university", model.AllOption, "Exact university name")
	cmd.Flags().String("course", model.AllOption, "Exact course name")
	cmd.Flags().Float64("max-price", 0, "Inclusive ceiling on the total fee in MYR")
}

// criteriaFromFlags turns the filter flags into criteria. An unset
// --max-price means no ceiling.
func criteriaFromFlags(cmd *cobra.Command) (model.FilterCriteria, error) {
	criteria := model.DefaultFilterCriteria()

	criteria.Search, _ = cmd.Flags().GetString("search")
	criteria.Location, _ = cmd.Flags().GetString("location")
	criteria.University, _ = cmd.Flags().GetString("university")
	criteria.CourseName, _ = cmd.Flags().GetString("course")

	level, _ := cmd.Flags().GetString("level")
	if !model.IsAll(level) {
		parsed, err := model.ParseCourseLevel(level)
		if err != nil {
			return criteria, common.NewUserError(fmt.Sprintf("unknown level %q", level), err)
		}
		criteria.CourseType = string(parsed)
	}

	if cmd.Flags().Changed("max-price") {
		maxPrice, _ := cmd.Flags().GetFloat64("max-price")
		if maxPrice < 0 || math.IsNaN(maxPrice) {
			return criteria, common.NewUserError("--max-price cannot be negative", nil)
		}
		criteria.MaxPrice = maxPrice
	}

	return criteria, nil
}

func runCoursesList(cmd *cobra.Command, _ []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	store, cleanup, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return listCourses(cmd.OutOrStdout(), store, criteria, asJSON)
}

func listCourses(w io.Writer, store *catalog.Store, criteria model.FilterCriteria, asJSON bool) error {
	all := store.Courses()
	visible := catalog.ApplyFilters(all, criteria)

	if asJSON {
		return writeJSON(w, visible)
	}

	if _, err := fmt.Fprintln(w, cli.RenderCourseTable(visible, store.Rate())); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, cli.SubtleStyle.Render(
		fmt.Sprintf("%d of %d courses · 1 MYR = %s BDT", len(visible), len(all), formatRate(store.Rate()))))
	return err
}

func coursesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			course, err := resolveCourse(store.Courses(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCourseDetail(course, store.Rate()))
			return err
		},
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("university", "", "University name")
	cmd.Flags().String("name", "", "Course name")
	cmd.Flags().String("level", "", "Course level (default Bachelor)")
	cmd.Flags().String("location", "", "Location")
	cmd.Flags().String("tuition", "", "Tuition fee in MYR")
	cmd.Flags().String("misc", "", "Miscellaneous fees in MYR")
	cmd.Flags().String("description", "", "Description")
}

// draftFlags maps each field flag to the draft field it sets.
func draftFlags(d *editor.Draft) map[string]*string {
	return map[string]*string{
		"university":  &d.UniversityName,
		"name":        &d.CourseName,
		"level":       &d.CourseType,
		"location":    &d.Location,
		"tuition":     &d.TuitionFee,
		"misc":        &d.MiscFee,
		"description": &d.Description,
	}
}

// applyFieldFlags overlays every field flag the user set and reports whether
// there was any.
func applyFieldFlags(cmd *cobra.Command, d *editor.Draft) bool {
	changed := false
	for name, field := range draftFlags(d) {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetString(name)
			changed = true
		}
	}
	return changed
}

func coursesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course",
		Long: `Add a course to the top of the catalog.

Without field flags the course is entered interactively; the total and its
BDT conversion are shown before saving. With flags nothing is prompted.
Unparseable fees count as 0.`,
		Args: cobra.NoArgs,
		RunE: runCoursesAdd,
	}

	addFieldFlags(cmd)
	return cmd
}

func runCoursesAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var draft editor.Draft
	if !applyFieldFlags(cmd, &draft) {
		handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Interrupted. The course was not added.")
		formCtx, stop := handler.HandleInterrupts(ctx)
		defer stop()

		draft, err = cli.NewForm(cmd.InOrStdin(), cmd.OutOrStdout()).
			FillDraft(formCtx, editor.Draft{}, store.Options(), store.Rate())
		if err != nil {
			return formError(cmd.OutOrStdout(), err, handler)
		}
	}

	course, err := editor.New(store).Create(ctx, draft)
	if err != nil {
		return draftError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(),
		cli.FormatSuccess(fmt.Sprintf("Added %s at %s (%s)", course.CourseName, course.UniversityName, course.ID)))
	return err
}

func coursesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a course",
		Long: `Edit a course in place; its id and position in the catalog are kept.

Without field flags every field is prompted with the current value as the
default. With flags only those fields change.`,
		Args: cobra.ExactArgs(1),
		RunE: runCoursesEdit,
	}

	addFieldFlags(cmd)
	return cmd
}

func runCoursesEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	existing, err := resolveCourse(store.Courses(), args[0])
	if err != nil {
		return err
	}

	draft := editor.DraftFromCourse(existing)
	if !applyFieldFlags(cmd, &draft) {
		handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Interrupted. The course was not changed.")
		formCtx, stop := handler.HandleInterrupts(ctx)
		defer stop()

		draft, err = cli.NewForm(cmd.InOrStdin(), cmd.OutOrStdout()).
			FillDraft(formCtx, draft, store.Options(), store.Rate())
		if err != nil {
			return formError(cmd.OutOrStdout(), err, handler)
		}
	}

	course, err := editor.New(store).Update(ctx, existing.ID, draft)
	if err != nil {
		return draftError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+course.CourseName))
	return err
}

func coursesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a course",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			form := cli.NewForm(cmd.InOrStdin(), cmd.OutOrStdout())
			return deleteCourse(cmd.Context(), cmd.OutOrStdout(), store, form, args[0], force)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func deleteCourse(ctx context.Context, w io.Writer, store *catalog.Store, form *cli.Form, ref string, force bool) error {
	course, err := resolveCourse(store.Courses(), ref)
	if err != nil {
		return err
	}

	if !force {
		question := fmt.Sprintf("Delete %s at %s?", course.CourseName, course.UniversityName)
		ok, err := form.Confirm(ctx, question, false)
		if err != nil {
			return err
		}
		if !ok {
			_, err = fmt.Fprintln(w, "Delete canceled.")
			return err
		}
	}

	if _, err := store.Remove(ctx, course.ID); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, cli.FormatSuccess("Deleted "+course.CourseName))
	return err
}

// formError turns an abandoned form into a friendly message rather than a failure.
func formError(w io.Writer, err error, handler *cli.InterruptHandler) error {
	switch {
	case errors.Is(err, cli.ErrAborted):
		_, werr := fmt.Fprintln(w, "Nothing saved.")
		return werr
	case errors.Is(err, cli.ErrInputCancelled) && handler.WasInterrupted():
		return nil
	default:
		return err
	}
}

func draftError(err error) error {
	switch {
	case errors.Is(err, editor.ErrRequiredField), errors.Is(err, editor.ErrInvalidLevel):
		return common.NewUserError(err.Error(), err)
	case errors.Is(err, common.ErrNotFound):
		return common.NewUserError("that course no longer exists", err)
	default:
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// stdinIsTerminal reports whether prompts can expect an answer.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		slog.Debug("stat stdin", "error", err)
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
