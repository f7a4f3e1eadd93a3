package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/convolve"
)

func newPadCmd() *cobra.Command {
	var (
		input, output string
		rows, cols    int
		channels      int
	)

	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Write a copy of an image with a mirrored border",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := convolve.LoadWithChannels(input, channels)
			if err != nil {
				return fmt.Errorf("failed to load image from path %s: %w", input, err)
			}
			padded, err := convolve.PadReflect(img, rows, cols)
			if err != nil {
				return err
			}
			if err := convolve.Save(output, padded); err != nil {
				return fmt.Errorf("failed to save image to path %s: %w", output, err)
			}

			p := message.NewPrinter(language.English)
			p.Fprintf(cmd.OutOrStdout(), "Padded %d x %d to %d x %d: %s\n",
				img.Height(), img.Width(), padded.Height(), padded.Width(), output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "Input image file")
	f.StringVarP(&output, "output", "o", "", "Output image file")
	f.IntVar(&rows, "rows", 1, "Rows to add above and below")
	f.IntVar(&cols, "cols", 1, "Columns to add left and right")
	f.IntVar(&channels, "channels", 3, "Channels to load: 1 (gray), 3 (RGB) or 4 (RGBA)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
