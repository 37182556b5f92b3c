package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample [records.json|-]",
	Short: "Pick opening exchanges from donated records and build the questionnaires",
	Long: `sample reads the donated records (a JSON array as written by
"donor extract --format json", possibly edited by the donor) and prints the
selected question/answer pairs with their questionnaire prompts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open records: %w", err)
			}
			defer f.Close()
			r = f
		}

		var donated []map[string]any
		if err := json.NewDecoder(r).Decode(&donated); err != nil {
			return fmt.Errorf("decode records: %w", err)
		}

		result := newFlow(cfg).Questionnaires(donated)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
