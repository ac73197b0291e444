package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/pricing"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing <model-id>",
	Short: "Show the pricing entry a model identifier resolves to",
	Long: `Resolve a model identifier the same way cost calculation does and print
the matched rate schedule. Exits non-zero when nothing resolves, which makes
it handy for checking whether a new model is covered.

Examples:
  better-ccusage pricing claude-sonnet-4-5
  better-ccusage pricing gpt-5-codex --pricing-file ./prices.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPricing,
}

func init() {
	rootCmd.AddCommand(pricingCmd)
}

func runPricing(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	model := args[0]
	rec, ok := env.engine.GetPricing(cmd.Context(), model)
	if !ok {
		return fmt.Errorf("no pricing entry resolves for model %q", model)
	}

	out := struct {
		Model   string               `json:"model"`
		Pricing pricing.ModelPricing `json:"pricing"`
	}{Model: model, Pricing: rec}
	return writeJSON(os.Stdout, out)
}
