package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/donor/internal/archive"
	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
	"github.com/MikeSquared-Agency/donor/internal/export"
)

var (
	extractFormat string
	extractOut    string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "output format: json, csv or parquet")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [export.zip]",
	Short: "Flatten the archive's conversations into the donation table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(extractFormat)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		slog.Info("archive loaded", "path", args[0], "size", humanize.Bytes(uint64(len(data))))

		v, err := archive.Validate(bytes.NewReader(data), int64(len(data)), archive.ChatGPTCategories)
		if err != nil {
			return fmt.Errorf("validate archive: %w", err)
		}
		if !v.Valid() {
			slog.Warn("archive does not look like a ChatGPT export")
		}

		ext := chatgpt.New(slog.Default(), cfg.ConversationsFile)
		records := ext.ExtractArchive(bytes.NewReader(data), int64(len(data)))

		var w io.Writer = cmd.OutOrStdout()
		if extractOut != "" {
			f, err := os.Create(extractOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, format, records); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d records (%s)\n", len(records), format)
		return nil
	},
}
