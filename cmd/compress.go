package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/horacio12345/image-compressor/internal/compressor"
	"github.com/horacio12345/image-compressor/internal/logger"
	"github.com/horacio12345/image-compressor/internal/tui"
)

var (
	compressQuality    string
	compressFormat     string
	compressPrivacy    string
	compressWidth      int
	compressOutputDir  string
	compressWorkers    int
	compressJSON       bool
	compressNoProgress bool
)

var compressCmd = &cobra.Command{
	Use:   "compress [flags] <path>...",
	Short: "Compress images into an output directory",
	Long: `Compress re-encodes every image given (directories are searched recursively)
into the output directory as <name>_compressed.<ext>. Orientation from EXIF is
applied before resizing; embedded metadata is not copied to the output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompress,
}

func runCompress(cmd *cobra.Command, args []string) error {
	// selectors are validated before anything touches the disk
	opts, err := compressor.NewProcessOptions(compressQuality, compressFormat, compressPrivacy, compressWidth, compressOutputDir)
	if err != nil {
		return err
	}
	opts.Workers = compressWorkers

	paths, err := collectInputs(args, opts.OutputDir)
	if err != nil {
		return err
	}

	if len(paths) > 0 {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var summary compressor.ProgressInfo
	if compressJSON || compressNoProgress || len(paths) == 0 {
		summary, err = compressor.ProcessImages(ctx, paths, opts, nil)
	} else {
		summary, err = runWithProgress(ctx, cancel, paths, opts)
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Warn("Batch interrupted, images not yet started were counted as failed")
	}

	out := cmd.OutOrStdout()
	if compressJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	outPath := opts.OutputDir
	if abs, absErr := filepath.Abs(outPath); absErr == nil {
		outPath = abs
	}
	fmt.Fprintln(out, tui.RenderSummary(tui.SummaryRows(summary, outPath)))
	return nil
}

func runWithProgress(ctx context.Context, cancel func(), paths []string, opts compressor.ProcessOptions) (compressor.ProgressInfo, error) {
	updates := make(chan compressor.ProgressUpdate, 64)
	program := tea.NewProgram(tui.NewModel(updates, len(paths), cancel))

	release := logger.Hold()
	defer release()

	uiDone := make(chan struct{})
	go func() {
		defer close(uiDone)
		_, _ = program.Run()
		// keep workers unblocked if the UI exits early (e.g. no terminal)
		for range updates {
		}
	}()

	summary, err := compressor.ProcessImages(ctx, paths, opts, updates)
	close(updates)
	<-uiDone
	return summary, err
}

func init() {
	compressCmd.Flags().StringVarP(&compressQuality, "quality", "q", cfg.Quality, "quality preset: high|alta, medium|media, low|baja")
	compressCmd.Flags().StringVarP(&compressFormat, "format", "f", cfg.Format, "output format: jpeg|jpg, png, webp")
	compressCmd.Flags().StringVarP(&compressPrivacy, "privacy", "p", cfg.Privacy, "metadata policy: keep_all|todo, remove_sensitive|sensible, remove_all|nada")
	compressCmd.Flags().IntVarP(&compressWidth, "width", "w", 0, "target width in pixels, images narrower than this are left as is (0 keeps the size)")
	compressCmd.Flags().StringVarP(&compressOutputDir, "output", "o", cfg.OutputDir, "destination folder for compressed copies")
	compressCmd.Flags().IntVar(&compressWorkers, "workers", cfg.Workers, "number of images processed in parallel")
	compressCmd.Flags().BoolVar(&compressJSON, "json", false, "print the summary as JSON")
	compressCmd.Flags().BoolVar(&compressNoProgress, "no-progress", false, "disable the live progress display")

	rootCmd.AddCommand(compressCmd)
}
