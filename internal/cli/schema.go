package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/schema"
)

var (
	schemaType   string
	mergeFile    string
	schemaFormat string
	schemaOut    string
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema <profile.yaml>",
	Short: "Generate JSON-LD schema markup from a business profile",
	Long: `Schema builds schema.org JSON-LD markup from a business profile
described in YAML. Rating and FAQ markup is only emitted when the profile
actually carries that data.

With --merge, the generated sameAs list is merged into an existing
JSON-LD block instead, and the diff is reported.

Example:
  aeoscan schema profile.yaml
  aeoscan schema profile.yaml --type organization --format html
  aeoscan schema profile.yaml --merge existing.json --out merged.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaType, "type", "local_business", "schema type (local_business, organization, faq_page)")
	schemaCmd.Flags().StringVar(&mergeFile, "merge", "", "existing JSON-LD file to merge sameAs into")
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "pretty", "output format (pretty, minified, html)")
	schemaCmd.Flags().StringVar(&schemaOut, "out", "", "output path (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	profilePath := args[0]

	data, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var profile model.BusinessProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	var block map[string]any
	switch schemaType {
	case "local_business":
		block = schema.LocalBusiness(profile)
	case "organization":
		block = schema.Organization(profile)
	case "faq_page":
		block = schema.FAQPage(profile.FAQs)
		if block == nil {
			return fmt.Errorf("faq_page requires at least one complete FAQ entry in the profile")
		}
	default:
		return fmt.Errorf("unknown schema type: %s", schemaType)
	}

	// Merge the profile's sameAs list into an existing block instead
	if mergeFile != "" {
		raw, err := os.ReadFile(mergeFile)
		if err != nil {
			return fmt.Errorf("read existing block: %w", err)
		}
		existing, err := schema.ParseBlock(string(raw))
		if err != nil {
			return fmt.Errorf("parse existing block: %w", err)
		}

		merged, diff := schema.MergeSameAs(existing, profile.SameAs)
		block = merged

		fmt.Fprintf(os.Stderr, "sameAs merge: %d added, %d removed, %d unchanged\n",
			len(diff.Added), len(diff.Removed), len(diff.Unchanged))
	}

	// Validate before rendering
	findings := schema.Validate(block)
	for _, f := range findings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", f.Severity, f.Message)
	}
	if schema.HasErrors(findings) {
		return fmt.Errorf("schema validation failed")
	}

	var rendered string
	switch schemaFormat {
	case "pretty":
		rendered, err = schema.Pretty(block)
	case "minified":
		rendered, err = schema.Minified(block)
	case "html":
		rendered, err = schema.HTMLScript(block)
	default:
		return fmt.Errorf("unknown format: %s", schemaFormat)
	}
	if err != nil {
		return fmt.Errorf("render schema: %w", err)
	}

	if schemaOut != "" {
		if err := os.WriteFile(schemaOut, []byte(rendered+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote schema: %s\n", schemaOut)
		}
		return nil
	}

	fmt.Println(rendered)
	return nil
}
