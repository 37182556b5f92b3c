package main

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/donor/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "donor",
	Short: "Extract and sample ChatGPT export archives for data donation",
	Long: `donor reads a ChatGPT data-export archive, flattens its conversations
into a donation table, and picks a few opening exchanges for a follow-up
questionnaire.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (yaml)")
}
