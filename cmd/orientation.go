package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/horacio12345/image-compressor/internal/compressor"
	"github.com/horacio12345/image-compressor/internal/tui"
)

var orientationCmd = &cobra.Command{
	Use:   "orientation <file>...",
	Short: "Report the EXIF orientation of images without modifying them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			orientation, err := compressor.ReadOrientationStrict(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s\n  %s %s\n",
					orientationFileStyle.Render(path),
					orientationBulletStyle.Render("-"),
					orientationErrStyle.Render(err.Error()),
				)
				continue
			}
			value := fmt.Sprintf("%d (%s)", int(orientation), orientation)
			if orientation.SwapsDimensions() {
				value += ", swaps width and height"
			}
			fmt.Fprintf(out, "%s\n  %s %s\n",
				orientationFileStyle.Render(path),
				orientationBulletStyle.Render("-"),
				orientationValueStyle.Render(value),
			)
		}

		if failed > 0 {
			return fmt.Errorf("could not read orientation of %d of %d files", failed, len(args))
		}
		return nil
	},
}

var (
	orientationFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	orientationValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	orientationErrStyle    = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	orientationBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(orientationCmd)
}
