package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thywilljoshua/pdf-to-raster/internal/profile"
	"github.com/thywilljoshua/pdf-to-raster/internal/raster"
)

func rootCmd() *cobra.Command {
	var out string
	var profilePath string
	var verbose bool
	params := raster.DefaultParams()

	cmd := &cobra.Command{
		Use:   "pdf2raster <pdf>",
		Short: "Rasterize a PDF into an image-only PDF",
		Long: "Re-renders every page of a PDF as a JPEG and assembles a new PDF from " +
			"the images alone. The output looks like the input but carries no text or " +
			"vector data, which makes it a good stress-test input for OCR pipelines.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if profilePath != "" {
				p, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				p.Apply(&params, changedFlags(cmd))
			}

			res, err := raster.Run(cmd.Context(), args[0], raster.Config{
				OutPath: out,
				Params:  params,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s\n", res.OutPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default: <input>-rasterized.pdf)")
	cmd.Flags().IntVar(&params.DPI, "dpi", params.DPI, "render DPI (72-600)")
	cmd.Flags().Float64Var(&params.Downscale, "downscale", params.Downscale, "downscale factor (0.1-1.0)")
	cmd.Flags().IntVar(&params.JPEGQuality, "jpeg-quality", params.JPEGQuality, "JPEG quality (1-95). Lower = more artifacts")
	cmd.Flags().Float64Var(&params.BlurRadius, "blur", params.BlurRadius, "gaussian blur radius (0-10)")
	cmd.Flags().Float64Var(&params.RotateDegrees, "rotate", params.RotateDegrees, "rotate degrees (-10 to 10)")
	cmd.Flags().Float64Var(&params.NoiseFraction, "noise", params.NoiseFraction, "per-channel pixel noise (0-0.5)")
	cmd.Flags().BoolVar(&params.Grayscale, "grayscale", false, "convert pages to grayscale (still saved as RGB JPEG)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML degradation profile; flags set explicitly still win")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "per-page debug logging")
	return cmd
}

// changedFlags reports which flags the user set on the command line, so a
// profile never overrides an explicit choice.
func changedFlags(cmd *cobra.Command) map[string]bool {
	set := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { set[f.Name] = true })
	return set
}
