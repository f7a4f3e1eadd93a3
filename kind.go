package convolve

import (
	"fmt"
	"strings"
)

// KernelKind names one of the kernels a caller can select.
type KernelKind uint8

const (
	// KindSharpen is the fixed 3x3 sharpen kernel.
	KindSharpen KernelKind = iota + 1

	// KindEdgeDetection is the size-parametric edge-detection kernel.
	KindEdgeDetection

	// KindEmboss is the fixed 3x3 emboss kernel.
	KindEmboss

	// KindGaussian is the size- and sigma-parametric Gaussian blur.
	KindGaussian

	// KindIdentity is the fixed 3x3 identity kernel.
	KindIdentity
)

var kindNames = map[KernelKind]string{
	KindSharpen:       "sharpen",
	KindEdgeDetection: "edge",
	KindEmboss:        "emboss",
	KindGaussian:      "gaussian",
	KindIdentity:      "identity",
}

// KernelKinds lists every kind in menu order.
func KernelKinds() []KernelKind {
	return []KernelKind{KindSharpen, KindEdgeDetection, KindEmboss, KindGaussian, KindIdentity}
}

// String returns the short name used on the command line.
func (k KernelKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KernelKind(%d)", uint8(k))
}

// Parametric reports whether the kind takes a size.
func (k KernelKind) Parametric() bool {
	return k == KindEdgeDetection || k == KindGaussian
}

// ParseKernelKind accepts a kind name (case-insensitive; "edge-detection"
// and "edge_detection" are aliases of "edge", "blur" of "gaussian") or its
// menu number, 1 through 5.
func ParseKernelKind(s string) (KernelKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "edge-detection", "edge_detection", "edgedetection":
		return KindEdgeDetection, nil
	case "blur":
		return KindGaussian, nil
	}

	for _, k := range KernelKinds() {
		if name == k.String() || name == fmt.Sprint(uint8(k)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kernel %q", ErrInvalidArgument, s)
}

// KernelSpec selects a kernel and its parameters.
type KernelSpec struct {
	Kind KernelKind

	// Size is the side length for KindEdgeDetection and KindGaussian.
	// It must be odd and positive; fixed kinds ignore it.
	Size int

	// Sigma is the Gaussian standard deviation; only KindGaussian uses it.
	Sigma float64
}

// Build constructs the selected kernel. Invalid parameters are
// reported as ErrInvalidArgument and never adjusted.
func (s KernelSpec) Build() (*Kernel, error) {
	switch s.Kind {
	case KindSharpen:
		return Sharpen(), nil
	case KindEmboss:
		return Emboss(), nil
	case KindIdentity:
		return Identity(), nil
	case KindEdgeDetection:
		return EdgeDetection(s.Size)
	case KindGaussian:
		return Gaussian(s.Size, s.Sigma)
	default:
		return nil, fmt.Errorf("%w: unknown kernel kind %d", ErrInvalidArgument, uint8(s.Kind))
	}
}
