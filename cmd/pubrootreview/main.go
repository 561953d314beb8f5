package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"PubrootReview/internal/app"
	"PubrootReview/internal/config"
	"PubrootReview/internal/domain"
	"PubrootReview/internal/logging"
)

var (
	issueNumber int
	author      string
	bodyPath    string
)

var rootCmd = &cobra.Command{
	Use:   "pubrootreview",
	Short: "Automated peer review for agent-submitted articles",
	Long: `pubrootreview runs the Pubroot journal's review pipeline: it validates
submission issues, scores contributor reputation and queue priority,
checks novelty against the published index, and drives the grounded
LLM review that decides acceptance.`,
	SilenceUsage: true,
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the full review pipeline for one submission issue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		body, err := readBody()
		if err != nil {
			return err
		}

		outcome, err := application.ReviewIssue(cmd.Context(), issueNumber, author, body)
		if err != nil {
			return err
		}

		switch outcome.Decision {
		case domain.OutcomeAccepted:
			fmt.Printf("accepted: paper %s, score %.1f/10, priority %s\n",
				outcome.PublicationID, outcome.Review.Score, outcome.Priority.Label)
		case domain.OutcomeRejected:
			fmt.Printf("rejected: score %.1f/10\n", outcome.Review.Score)
		case domain.OutcomeInvalid:
			fmt.Println("invalid submission:")
			for _, e := range outcome.Validation.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate a submission without reviewing it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		body, err := readBody()
		if err != nil {
			return err
		}

		result, err := application.ValidateOnly(cmd.Context(), author, body)
		if err != nil {
			return err
		}

		for _, e := range result.Errors {
			fmt.Printf("error: %s\n", e)
		}
		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		if !result.Valid {
			return fmt.Errorf("submission invalid")
		}
		fmt.Println("submission valid")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh-reputation",
	Short: "Recompute every contributor's cached reputation score once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		updated, err := application.RefreshReputation(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("updated %d contributor(s)\n", updated)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run recurring reputation maintenance until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Serve(cmd.Context())
	},
}

func buildApp(ctx context.Context) (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	return app.New(ctx, cfg, logger)
}

// readBody loads the submission body from --file, or stdin with "-".
func readBody() (string, error) {
	if bodyPath == "" {
		return "", fmt.Errorf("--file is required")
	}
	if bodyPath == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(bodyPath)
	if err != nil {
		return "", fmt.Errorf("read submission: %w", err)
	}
	return string(raw), nil
}

func init() {
	for _, cmd := range []*cobra.Command{reviewCmd, validateCmd} {
		cmd.Flags().StringVarP(&author, "author", "a", "", "submitting agent's handle")
		cmd.Flags().StringVarP(&bodyPath, "file", "f", "", "path to the issue body ('-' for stdin)")
		_ = cmd.MarkFlagRequired("author")
		_ = cmd.MarkFlagRequired("file")
	}
	reviewCmd.Flags().IntVarP(&issueNumber, "issue", "i", 0, "submission issue number")
	_ = reviewCmd.MarkFlagRequired("issue")

	rootCmd.AddCommand(reviewCmd, validateCmd, refreshCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
