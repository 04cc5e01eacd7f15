package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/edubridge/internal/assistant"
	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/tui"
)

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the values each filter accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderOptions(store.Options()))
			return err
		},
	}
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate [value]",
		Short: "Show or set the MYR to BDT exchange rate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			return runRate(cmd.Context(), cmd.OutOrStdout(), store, value)
		},
	}
}

func runRate(ctx context.Context, w io.Writer, store *catalog.Store, value string) error {
	if value != "" {
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("%q is not a number", value), err)
		}
		if err := store.SetRate(ctx, rate); err != nil {
			if errors.Is(err, catalog.ErrInvalidRate) {
				return common.NewUserError("the exchange rate must be a positive number", err)
			}
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s 1 MYR = %s BDT\n", cli.MoneyIcon, formatRate(store.Rate()))
	return err
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the AI assistant about the catalog",
		Long: `Send a question, together with the full catalog and the current exchange
rate, to the configured generative AI provider and print the reply.

The provider and its API key come from the llm.* configuration keys or the
provider's usual environment variable (for Gemini: GEMINI_API_KEY).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			session := assistant.NewSession(newBridge(ctx), store)
			return runAsk(ctx, cmd.OutOrStdout(), session, strings.Join(args, " "))
		},
	}
}

func runAsk(ctx context.Context, w io.Writer, session *assistant.Session, question string) error {
	if err := session.Submit(ctx, question); err != nil {
		if errors.Is(err, assistant.ErrEmptyQuery) {
			return common.NewUserError("the question is empty", err)
		}
		return err
	}

	answer, err := session.Wait(ctx)
	if err != nil {
		return err
	}

	body := lipgloss.NewStyle().Width(answerWidth).Render(strings.TrimSpace(answer.Text))
	text := cli.RenderBox(cli.RobotIcon+" Assistant", body)
	_, err = fmt.Fprintln(w, text)
	return err
}

// answerWidth wraps assistant replies to a comfortable reading width.
const answerWidth = 76

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !stdinIsTerminal() {
				return common.NewUserError("browse needs an interactive terminal; use 'edubridge courses list' instead", nil)
			}

			ctx := cmd.Context()
			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			session := assistant.NewSession(newBridge(ctx), store)
			return tui.Run(ctx, store, session)
		},
	}
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the example catalog and the default exchange rate",
		Long: `Reset replaces the whole catalog with the built-in example courses and sets
the exchange rate back to 26.5. Every course you added is lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			store, cleanup, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return runReset(cmd.Context(), cmd.OutOrStdout(), store, cli.NewForm(cmd.InOrStdin(), cmd.OutOrStdout()), force)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runReset(ctx context.Context, w io.Writer, store *catalog.Store, form *cli.Form, force bool) error {
	if !force {
		question := fmt.Sprintf("This replaces all %d courses with the example catalog. Continue?", len(store.Courses()))
		ok, err := form.Confirm(ctx, question, false)
		if err != nil {
			return err
		}
		if !ok {
			_, err = fmt.Fprintln(w, "Reset canceled.")
			return err
		}
	}

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}

	_, err := fmt.Fprintln(w, cli.FormatSuccess(
		fmt.Sprintf("Catalog reset to %d example courses at 1 MYR = %s BDT", len(store.Courses()), formatRate(store.Rate()))))
	return err
}
