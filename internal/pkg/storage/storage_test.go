package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/v1/admin/proofs/")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "payment-proofs/ABCD1234-1.png", strings.NewReader("proof")))

	rc, err := s.Get(ctx, "payment-proofs/ABCD1234-1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "proof", string(data))

	require.NoError(t, s.Delete(ctx, "payment-proofs/ABCD1234-1.png"))
	_, err = s.Get(ctx, "payment-proofs/ABCD1234-1.png")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "payment-proofs/missing.png"), "deleting a missing object is not an error")
}

func TestLocalStorage_StaysInsideBase(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	base := filepath.Join(root, "store")
	s, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../escape.txt", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Save(ctx, "/", strings.NewReader("x")))
}

func TestLocalStorage_PublicURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/v1/admin/proofs/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1/admin/proofs/payment-proofs/a.png", s.PublicURL("/payment-proofs/a.png"))
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for x := 0; x < 800; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := NewImageProcessor(200, 200).Thumbnail(&buf)
	require.NoError(t, err)

	img, format, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	_, err = NewImageProcessor(200, 200).Thumbnail(strings.NewReader("%PDF-1.4"))
	assert.Error(t, err)
}
