package main

import (
	"bufio"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/convolve"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeTestImage saves a small RGB gradient and returns its path.
func writeTestImage(t *testing.T, dir string) (string, *convolve.RawImage) {
	t.Helper()
	pix := make([]byte, 6*5*3)
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	img, err := convolve.RawImageFromPixels(6, 5, 3, pix)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "in.png")
	if err := convolve.Save(path, img); err != nil {
		t.Fatal(err)
	}
	return path, img
}

func TestPromptKernel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  convolve.KernelSpec
	}{
		{"sharpen", "1\n", convolve.KernelSpec{Kind: convolve.KindSharpen}},
		{"edge", "2\n5\n", convolve.KernelSpec{Kind: convolve.KindEdgeDetection, Size: 5}},
		{"emboss", "3\n", convolve.KernelSpec{Kind: convolve.KindEmboss}},
		{"gaussian", "4\n7\n1.5\n", convolve.KernelSpec{Kind: convolve.KindGaussian, Size: 7, Sigma: 1.5}},
		{"identity by name", "identity\n", convolve.KernelSpec{Kind: convolve.KindIdentity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w bytes.Buffer
			got, err := promptKernel(bufio.NewReader(strings.NewReader(tt.input)), &w)
			if err != nil {
				t.Fatalf("promptKernel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("promptKernel() = %+v, want %+v", got, tt.want)
			}
			if !strings.Contains(w.String(), "2. Edge Detection") {
				t.Errorf("menu missing entries:\n%s", w.String())
			}
		})
	}
}

func TestPromptKernel_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown choice", "9\n"},
		{"even size", "2\n4\n"},
		{"missing size", "4\n"},
		{"bad sigma", "4\n3\nabc\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w bytes.Buffer
			if _, err := promptKernel(bufio.NewReader(strings.NewReader(tt.input)), &w); err == nil {
				t.Errorf("promptKernel(%q) should fail", tt.input)
			}
		})
	}
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	in, src := writeTestImage(t, dir)
	out := filepath.Join(dir, "out.png")

	stdout, err := execute(t, "", "apply", "-i", in, "-o", out, "--kernel", "identity", "--workers", "2")
	if err != nil {
		t.Fatalf("apply error = %v", err)
	}
	for _, want := range []string{"Image dimensions: 6 x 5 - 3 channels", "Time taken", "saved successfully"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	got, err := convolve.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("identity apply should write the input unchanged")
	}
}

func TestApplyCommand_Interactive(t *testing.T) {
	dir := t.TempDir()
	in, src := writeTestImage(t, dir)
	out := filepath.Join(dir, "menu.png")

	stdout, err := execute(t, "3\n", "apply", "-i", in, "-o", out)
	if err != nil {
		t.Fatalf("apply error = %v", err)
	}
	if !strings.Contains(stdout, "Enter the kernel number") {
		t.Errorf("expected the kernel menu:\n%s", stdout)
	}

	want, err := convolve.Apply(src, convolve.Emboss())
	if err != nil {
		t.Fatal(err)
	}
	got, err := convolve.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(want) {
		t.Error("menu choice 3 should apply the emboss kernel")
	}
}

func TestApplyCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestImage(t, dir)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing input", []string{"apply", "-i", filepath.Join(dir, "none.png"), "-o", filepath.Join(dir, "a.png"), "-k", "sharpen"}, convolve.ErrIO},
		{"unknown kernel", []string{"apply", "-i", in, "-o", filepath.Join(dir, "b.png"), "-k", "laplace"}, convolve.ErrInvalidArgument},
		{"even size", []string{"apply", "-i", in, "-o", filepath.Join(dir, "c.png"), "-k", "edge", "--size", "4"}, convolve.ErrInvalidArgument},
		{"bad output", []string{"apply", "-i", in, "-o", filepath.Join(dir, "d.xyz"), "-k", "sharpen"}, convolve.ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestKernelCommand(t *testing.T) {
	stdout, err := execute(t, "", "kernel", "--kernel", "edge", "--size", "3")
	if err != nil {
		t.Fatalf("kernel error = %v", err)
	}
	if !strings.Contains(stdout, "edge kernel 3x3, center (1, 1), sum 0") {
		t.Errorf("unexpected header:\n%s", stdout)
	}
	if !strings.Contains(stdout, "8") {
		t.Errorf("matrix missing center weight:\n%s", stdout)
	}

	if _, err := execute(t, "", "kernel", "--kernel", "gaussian", "--size", "5", "--sigma", "0"); !errors.Is(err, convolve.ErrInvalidArgument) {
		t.Errorf("gaussian sigma 0 error = %v, want ErrInvalidArgument", err)
	}
}

func TestPadCommand(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestImage(t, dir)
	out := filepath.Join(dir, "padded.bmp")

	stdout, err := execute(t, "", "pad", "-i", in, "-o", out, "--rows", "2", "--cols", "3")
	if err != nil {
		t.Fatalf("pad error = %v", err)
	}
	if !strings.Contains(stdout, "Padded 6 x 5 to 10 x 11") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	padded, err := convolve.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if padded.Height() != 10 || padded.Width() != 11 {
		t.Errorf("padded size = %dx%d, want 10x11", padded.Height(), padded.Width())
	}
}

func TestVerboseLogging(t *testing.T) {
	orig := convolve.Logger()
	t.Cleanup(func() { convolve.SetLogger(orig) })

	stdout, err := execute(t, "", "--verbose", "kernel", "-k", "sharpen")
	if err != nil {
		t.Fatalf("kernel error = %v", err)
	}
	if !strings.Contains(stdout, "convolve: platform") {
		t.Errorf("verbose run should log the platform:\n%s", stdout)
	}
}
