package main

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/convolve"
)

type applyOptions struct {
	input    string
	output   string
	kernel   string
	size     int
	sigma    float64
	channels int
	workers  int
	clamp    bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Convolve an image with a kernel",
		Long: `Convolve an image with a kernel and write the result.

Without --kernel the kernel is chosen from an interactive menu on stdin.
Pixels near the border use only the kernel taps that fall inside the image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "Input image file")
	f.StringVarP(&opts.output, "output", "o", "", "Output image file (.png, .jpg, .bmp, .tif)")
	f.StringVarP(&opts.kernel, "kernel", "k", "", "Kernel: sharpen, edge, emboss, gaussian, identity")
	f.IntVar(&opts.size, "size", 3, "Kernel size for edge and gaussian (odd)")
	f.Float64Var(&opts.sigma, "sigma", 1.0, "Gaussian standard deviation")
	f.IntVar(&opts.channels, "channels", 3, "Channels to load: 1 (gray), 3 (RGB) or 4 (RGBA)")
	f.IntVar(&opts.workers, "workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	f.BoolVar(&opts.clamp, "clamp", false, "Clamp sums to [0,255] instead of wrapping")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runApply(cmd *cobra.Command, opts applyOptions) error {
	out := cmd.OutOrStdout()
	p := message.NewPrinter(language.English)

	img, err := convolve.LoadWithChannels(opts.input, opts.channels)
	if err != nil {
		return fmt.Errorf("failed to load image from path %s: %w", opts.input, err)
	}
	p.Fprintf(out, "Image loaded successfully from the path: %s\n", opts.input)
	p.Fprintf(out, "Image dimensions: %d x %d - %d channels\n", img.Height(), img.Width(), img.Channels())

	spec := convolve.KernelSpec{Size: opts.size, Sigma: opts.sigma}
	if opts.kernel != "" {
		spec.Kind, err = convolve.ParseKernelKind(opts.kernel)
		if err != nil {
			return err
		}
	} else {
		spec, err = promptKernel(bufio.NewReader(cmd.InOrStdin()), out)
		if err != nil {
			return err
		}
	}

	k, err := spec.Build()
	if err != nil {
		return err
	}

	engineOpts := []convolve.EngineOption{convolve.WithWorkers(opts.workers)}
	if opts.clamp {
		engineOpts = append(engineOpts, convolve.WithSampleMode(convolve.SampleClamp))
	}
	engine := convolve.NewEngine(engineOpts...)
	defer engine.Close()

	p.Fprintf(out, "Applying the %v kernel (%d x %d) on %d workers...\n",
		spec.Kind, k.Height(), k.Width(), engine.Workers())
	start := time.Now()
	result, err := engine.Apply(img, k)
	if err != nil {
		return err
	}
	p.Fprintf(out, "Time taken to apply the kernel: %.2f seconds\n", time.Since(start).Seconds())

	if err := convolve.Save(opts.output, result); err != nil {
		return fmt.Errorf("failed to save image to path %s: %w", opts.output, err)
	}
	p.Fprintf(out, "Image saved successfully to the path: %s\n", opts.output)
	return nil
}

// promptKernel runs the numbered kernel menu, reading answers from r.
// Sizes are returned as entered; KernelSpec.Build rejects even sizes.
func promptKernel(r *bufio.Reader, w io.Writer) (convolve.KernelSpec, error) {
	var spec convolve.KernelSpec

	fmt.Fprintln(w, "\nSelect the kernel you want to apply:")
	for _, kind := range convolve.KernelKinds() {
		fmt.Fprintf(w, "%d. %s\n", uint8(kind), menuLabel(kind))
	}
	fmt.Fprint(w, "Enter the kernel number: ")

	var choice string
	if _, err := fmt.Fscan(r, &choice); err != nil {
		return spec, fmt.Errorf("reading kernel choice: %w", err)
	}
	kind, err := convolve.ParseKernelKind(choice)
	if err != nil {
		return spec, fmt.Errorf("invalid kernel choice %q: %w", choice, err)
	}
	spec.Kind = kind

	if kind.Parametric() {
		fmt.Fprint(w, "Enter the size of the kernel: ")
		if _, err := fmt.Fscan(r, &spec.Size); err != nil {
			return spec, fmt.Errorf("reading kernel size: %w", err)
		}
		if spec.Size%2 == 0 {
			return spec, fmt.Errorf("%w: kernel size must be odd", convolve.ErrInvalidArgument)
		}
	}
	if kind == convolve.KindGaussian {
		fmt.Fprint(w, "Enter the standard deviation of the Gaussian distribution: ")
		if _, err := fmt.Fscan(r, &spec.Sigma); err != nil {
			return spec, fmt.Errorf("reading sigma: %w", err)
		}
	}

	return spec, nil
}

func menuLabel(kind convolve.KernelKind) string {
	switch kind {
	case convolve.KindSharpen:
		return "Sharpen"
	case convolve.KindEdgeDetection:
		return "Edge Detection"
	case convolve.KindEmboss:
		return "Emboss"
	case convolve.KindGaussian:
		return "Gaussian"
	case convolve.KindIdentity:
		return "Identity"
	default:
		return kind.String()
	}
}
