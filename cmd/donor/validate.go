package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/donor/internal/archive"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [export.zip]",
	Short: "Check that an archive is a known ChatGPT export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("stat archive: %w", err)
		}

		v, err := archive.ValidateFile(args[0], archive.ChatGPTCategories)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Archive: %s (%s)\n", args[0], humanize.Bytes(uint64(info.Size())))
		fmt.Fprintf(out, "Status: %s\n", v.Status)
		if v.Category != nil {
			fmt.Fprintf(out, "Category: %s (%s, %s)\n", v.Category.ID, v.Category.Filetype, v.Category.Language)
			fmt.Fprintf(out, "Known files: %s\n", strings.Join(v.Matched, ", "))
		}
		if !v.Valid() {
			return fmt.Errorf("%s is not a known ChatGPT export", args[0])
		}
		return nil
	},
}
