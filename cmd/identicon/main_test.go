package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/identicon"
	"github.com/flavioheleno/identicon/internal/digest"
)

const zeroDigest = "00000000000000000000000000000000"

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestPNGToStdout(t *testing.T) {
	out, _, err := runCmd(t, "", "--hex", zeroDigest)
	require.NoError(t, err)

	img, err := png.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 420, img.Bounds().Dx())
	r, g, b, _ := img.At(35, 35).RGBA()
	assert.Equal(t, [3]uint32{233, 150, 150}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestPNGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, _, err := runCmd(t, "", "-o", path, "Someone@Example.com")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	sum, err := digest.Sum(digest.MD5, []byte("someone@example.com"))
	require.NoError(t, err)
	g, err := identicon.New(sum, nil)
	require.NoError(t, err)

	fg := g.Foreground()
	r, gr, b, _ := img.At(210, 210).RGBA()
	got := [3]uint32{r >> 8, gr >> 8, b >> 8}
	if g.Pattern().Filled(2, 2) {
		assert.Equal(t, [3]uint32{uint32(fg.R), uint32(fg.G), uint32(fg.B)}, got)
	} else {
		assert.Equal(t, [3]uint32{240, 240, 240}, got)
	}
}

func TestStdinInput(t *testing.T) {
	fromArg, _, err := runCmd(t, "", "--hash", "sha256", "someone@example.com")
	require.NoError(t, err)
	fromStdin, _, err := runCmd(t, "  someone@example.com\n", "--hash", "sha256")
	require.NoError(t, err)
	assert.Equal(t, fromArg, fromStdin)
}

func TestPreview(t *testing.T) {
	out, _, err := runCmd(t, "", "--preview", "--color", "never", "--hex", zeroDigest)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "  "+strings.Repeat("██", 5)+"  ", lines[3])
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hash: blake3\n"), 0o644))

	viaConfig, _, err := runCmd(t, "", "--config", path, "x")
	require.NoError(t, err)
	viaFlag, _, err := runCmd(t, "", "--hash", "blake3", "x")
	require.NoError(t, err)
	assert.Equal(t, viaFlag, viaConfig)

	// Flags override the file.
	overridden, _, err := runCmd(t, "", "--config", path, "--hash", "md5", "x")
	require.NoError(t, err)
	assert.NotEqual(t, viaConfig, overridden)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"unknown hash", []string{"--hash", "crc32", "x"}},
		{"short hex", []string{"--hex", "abcd"}},
		{"bad color", []string{"--color", "sometimes", "x"}},
		{"argument with serve", []string{"--serve", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, "", tt.args...)
			var u usageError
			assert.True(t, errors.As(err, &u), "err = %v", err)
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCmd(t, "", "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "identicon "))
}
