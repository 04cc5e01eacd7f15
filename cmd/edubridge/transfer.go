package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/editor"
	"github.com/Veraticus/edubridge/internal/model"
)

func coursesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import courses from a JSON export",
		Long: `Import a JSON array of courses, as written by 'edubridge courses export'
or saved from the browser version of the catalog.

Every record goes through the same validation as 'courses add' and gets a
fresh id. Records missing a university, course name or location are
skipped. Imported courses appear at the top of the catalog in file order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := importCourses(cmd.Context(), f, editor.New(store), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Imported %d courses", result.imported)
			if result.skipped > 0 {
				msg += fmt.Sprintf(", skipped %d invalid", result.skipped)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return err
		},
	}
}

type importResult struct {
	imported int
	skipped  int
}

// importCourses decodes r and creates each record through ed. Records are
// added last to first so the file's first record ends up at the top.
func importCourses(ctx context.Context, r io.Reader, ed *editor.Editor, progress io.Writer) (importResult, error) {
	var records []model.Course
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return importResult{}, fmt.Errorf("failed to parse import file: %w", err)
	}

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Importing courses"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	var result importResult
	for i := len(records) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := ed.Create(ctx, editor.DraftFromCourse(records[i])); err != nil {
			slog.Warn("skipping course", "index", i, "course", records[i].CourseName, "error", err)
			result.skipped++
		} else {
			result.imported++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return result, nil
}

func coursesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the catalog as JSON",
		Long:  `Write the whole catalog as a JSON array to file, or to stdout when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 0 {
				return exportCourses(cmd.OutOrStdout(), store)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := exportCourses(f, store); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			slog.Info("catalog exported", "file", args[0], "courses", len(store.Courses()))
			return nil
		},
	}
}

func exportCourses(w io.Writer, store *catalog.Store) error {
	return writeJSON(w, store.Courses())
}
