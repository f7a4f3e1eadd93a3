// Command convolve applies convolution kernels to image files.
//
// Usage:
//
//	convolve apply -i photo.png -o sharp.png --kernel sharpen
//	convolve apply -i photo.png -o blur.png --kernel gaussian --size 7 --sigma 2
//	convolve apply -i photo.png -o out.png        # interactive kernel menu
//	convolve kernel --kernel edge --size 5
//	convolve pad -i photo.png -o padded.png --rows 16 --cols 16
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/gogpu/convolve"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "convolve",
		Short:         "Apply 2D convolution kernels to images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				return
			}
			convolve.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
			logPlatform()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(newApplyCmd(), newKernelCmd(), newPadCmd())
	return root
}

// logPlatform records the SIMD features of the host at debug level.
func logPlatform() {
	convolve.Logger().Debug("convolve: platform",
		"goos", runtime.GOOS,
		"goarch", runtime.GOARCH,
		"cpus", runtime.NumCPU(),
		"avx2", cpu.X86.HasAVX2,
		"avx512f", cpu.X86.HasAVX512F,
		"asimd", cpu.ARM64.HasASIMD)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
