package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pranavupp12/review-platform/internal/app"
	"github.com/Pranavupp12/review-platform/internal/application/services"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/ai"
)

func init() {
	aspectsCmd.AddCommand(aspectsExtractCmd)
	aspectsCmd.AddCommand(aspectsBackfillCmd)
}

var aspectsCmd = &cobra.Command{
	Use:   "aspects",
	Short: "Extract review aspects",
}

var aspectsExtractCmd = &cobra.Command{
	Use:   "extract [text|-]",
	Short: "Extract aspects from one review text",
	Long: `Extract topic:sentiment:snippet aspects from a review.
The text is read from the argument, or from stdin when the argument is "-" or absent.

Examples:
  reviewctl aspects extract "Friendly staff but the wait was far too long."
  cat review.txt | reviewctl aspects extract -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg, err := configFrom(cmd.Context())
		if err != nil {
			return err
		}
		generators, err := ai.BuildProviders(cfg.AI)
		if err != nil {
			return err
		}

		// Extraction needs no database, so only the provider chain is built
		extractor := services.NewReviewAspectService(services.NewExtractionChain(generators...), cfg.Aspects.MinTextLength)
		aspects, err := extractor.Extract(cmd.Context(), text)
		if err != nil {
			return err
		}
		return printAspects(cmd.OutOrStdout(), aspects, outputJSON)
	},
}

var aspectsBackfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Extract and store aspects for every review that has none",
	Long: `Page through reviews whose aspects were never extracted, extract them with a
bounded worker group and store the result. Reviews that yield no aspects are
stored with an empty list so they are not retried.

Worker count and page size come from ASPECT_BACKFILL_WORKERS and
ASPECT_BACKFILL_BATCH_SIZE.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		return withContainer(cmd.Context(), func(c *app.Container) error {
			summary, err := c.Backfill.BackfillAll(cmd.Context())
			if summary != nil {
				fmt.Fprintf(cmd.OutOrStdout(),
					"backfill finished in %s: processed=%d updated=%d failed=%d\n",
					time.Since(start).Round(time.Millisecond),
					summary.TotalProcessed,
					summary.UpdatedCount,
					summary.FailureCount,
				)
			}
			return err
		})
	},
}

func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(io.LimitReader(stdin, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read review text: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("review text is empty")
	}
	return text, nil
}

func printAspects(w io.Writer, aspects []string, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(map[string][]string{"aspects": aspects})
	}
	if len(aspects) == 0 {
		_, err := fmt.Fprintln(w, "no aspects found")
		return err
	}
	for _, aspect := range aspects {
		if _, err := fmt.Fprintln(w, aspect); err != nil {
			return err
		}
	}
	return nil
}
