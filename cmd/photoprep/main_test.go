package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"photoprep"}, args...))
	return out.String(), err
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", writePNG(t, 8, 8))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ok: image/png"))
}

func TestValidateCommandRejectsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := run(t, "validate", path)
	assert.EqualError(t, err, "Invalid file type. Please upload a JPEG, PNG, or WebP image.")
}

func TestCompressAndEstimateCommands(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "photo.txt")

	_, err := run(t, "compress", "--max-width", "16", "--out", outPath, writePNG(t, 64, 32))
	require.NoError(t, err)

	dataURL, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dataURL), "data:image/jpeg;base64,"))

	out, err := run(t, "estimate", outPath)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestCompressCommandRequiresArgument(t *testing.T) {
	_, err := run(t, "compress")
	assert.Error(t, err)
}
