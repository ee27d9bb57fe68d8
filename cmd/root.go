package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/horacio12345/image-compressor/internal/config"
	"github.com/horacio12345/image-compressor/internal/logger"
)

var (
	cfg      = config.Load()
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "imgcompress",
	Short: "imgcompress - batch compress, resize and re-orient images",
	Long:  "imgcompress re-encodes batches of images as JPEG or PNG, fixing EXIF orientation and optionally downsizing them, using every CPU core.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logLevel)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}
