package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/convolve"
)

func newKernelCmd() *cobra.Command {
	var (
		kind  string
		size  int
		sigma float64
	)

	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Print the weights of a kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := convolve.ParseKernelKind(kind)
			if err != nil {
				return err
			}
			k, err := convolve.KernelSpec{Kind: parsed, Size: size, Sigma: sigma}.Build()
			if err != nil {
				return err
			}
			return printKernel(cmd, parsed, k)
		},
	}

	cmd.Flags().StringVarP(&kind, "kernel", "k", "", "Kernel: sharpen, edge, emboss, gaussian, identity")
	cmd.Flags().IntVar(&size, "size", 3, "Kernel size for edge and gaussian (odd)")
	cmd.Flags().Float64Var(&sigma, "sigma", 1.0, "Gaussian standard deviation")
	_ = cmd.MarkFlagRequired("kernel")

	return cmd
}

func printKernel(cmd *cobra.Command, kind convolve.KernelKind, k *convolve.Kernel) error {
	weights := k.Weights()
	data := make([]float64, len(weights))
	for i, w := range weights {
		data[i] = float64(w)
	}
	m := mat.NewDense(k.Height(), k.Width(), data)

	cy, cx := k.Center()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v kernel %dx%d, center (%d, %d), sum %g\n", kind, k.Height(), k.Width(), cy, cx, k.Sum())
	_, err := fmt.Fprintf(out, "%.6v\n", mat.Formatted(m, mat.Squeeze()))
	return err
}
