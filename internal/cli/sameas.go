package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/sameas"
	"github.com/xenlixai/aeoscan/internal/validate"
)

var (
	canonicalURL     string
	extraURLs        []string
	requireMinimum   int
	checkReciprocity bool
	checkTimeout     time.Duration
	sameasJSON       string
)

// sameasCmd represents the sameas command
var sameasCmd = &cobra.Command{
	Use:   "sameas <handle>",
	Short: "Generate and validate sameAs profile URLs for a handle",
	Long: `SameAs expands a social handle across the known platforms, checks
that each profile actually exists, and emits the validated URL list ready
for the sameAs property of JSON-LD markup.

Checks run in small batches to stay polite. Duplicate profiles that
redirect to the same host are collapsed to one URL.

Example:
  aeoscan sameas acme --canonical https://acme.com
  aeoscan sameas acme --extra https://bsky.app/profile/acme.com --min 5
  aeoscan sameas acme --canonical https://acme.com --reciprocity`,
	Args: cobra.ExactArgs(1),
	RunE: runSameAs,
}

func init() {
	rootCmd.AddCommand(sameasCmd)

	sameasCmd.Flags().StringVar(&canonicalURL, "canonical", "", "canonical site URL (required for --reciprocity)")
	sameasCmd.Flags().StringArrayVar(&extraURLs, "extra", nil, "extra candidate profile URL (repeatable)")
	sameasCmd.Flags().IntVar(&requireMinimum, "min", 3, "warn if fewer valid profiles are found")
	sameasCmd.Flags().BoolVar(&checkReciprocity, "reciprocity", false, "check that profiles link back to the canonical site")
	sameasCmd.Flags().DurationVar(&checkTimeout, "check-timeout", 8*time.Second, "timeout per profile check")
	sameasCmd.Flags().StringVar(&sameasJSON, "json", "", "write full result as JSON to this path")
}

func runSameAs(cmd *cobra.Command, args []string) error {
	handle := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if checkReciprocity && canonicalURL == "" {
		return fmt.Errorf("--reciprocity requires --canonical")
	}

	cfg := model.DefaultConfig()
	cfg.SameAs.RequireMinimum = requireMinimum
	cfg.SameAs.CheckReciprocity = checkReciprocity
	cfg.SameAs.CheckTimeout = checkTimeout

	if verbose {
		fmt.Fprintf(os.Stderr, "Handle: %s\n", handle)
		fmt.Fprintf(os.Stderr, "Platforms: %d (+%d extras)\n", len(sameas.Platforms()), len(extraURLs))
		fmt.Fprintln(os.Stderr)
	}

	generator := sameas.NewGenerator(validate.NewProfileChecker(cfg))
	result, err := generator.Generate(ctx, model.SameAsRequest{
		Handle:           handle,
		Canonical:        canonicalURL,
		Extras:           extraURLs,
		RequireMinimum:   requireMinimum,
		CheckReciprocity: checkReciprocity,
	})
	if err != nil {
		return fmt.Errorf("sameas failed: %w", err)
	}

	if sameasJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(sameasJSON, data, 0o644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", sameasJSON)
		}
	}

	// Print results
	fmt.Printf("\nValidated sameAs URLs (%d):\n", len(result.SameAs))
	for _, u := range result.SameAs {
		fmt.Printf("  %s\n", u)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}

	fmt.Printf("\nChecked %d candidates: %d valid, %d invalid, %d timeouts, %d errors\n\n",
		len(result.AllResults),
		result.Summary.Valid,
		result.Summary.Invalid,
		result.Summary.Timeouts,
		result.Summary.Errors)

	return nil
}
