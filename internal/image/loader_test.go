package image

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/security"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRemoteLoaderLoadsPNG(t *testing.T) {
	data := pngBytes(t, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	loader := NewRemoteLoader(security.HostPolicy{AllowPrivate: true}, 0)
	img, err := loader.Load(context.Background(), server.URL+"/thumb.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestRemoteLoaderForbiddenHost(t *testing.T) {
	loader := NewRemoteLoader(security.HostPolicy{}, 0)
	_, err := loader.Load(context.Background(), "http://127.0.0.1/thumb.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbiddenSource))
}

func TestRemoteLoaderDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	loader := NewRemoteLoader(security.HostPolicy{AllowPrivate: true}, 0)
	_, err := loader.Load(context.Background(), server.URL)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrForbiddenSource))
}

func TestRemoteLoaderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	loader := NewRemoteLoader(security.HostPolicy{AllowPrivate: true}, 0)
	_, err := loader.Load(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestSmartLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thumb.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, color.White), 0o600))

	loader := NewSmartLoader(NewRemoteLoader(security.HostPolicy{}, 0))
	img, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dy())

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = loader.Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}

// hugePNG returns a small PNG whose header declares width x height pixels.
func hugePNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := pngBytes(t, color.Black)
	// Signature (8), IHDR length (4), "IHDR" (4), then width and height.
	binary.BigEndian.PutUint32(data[16:], width)
	binary.BigEndian.PutUint32(data[20:], height)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestRemoteLoaderRejectsOversizedImage(t *testing.T) {
	data := hugePNG(t, 40000, 40000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	loader := NewRemoteLoader(security.HostPolicy{AllowPrivate: true}, 0)
	_, err := loader.Load(context.Background(), server.URL+"/huge.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestFileLoaderRejectsOversizedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	require.NoError(t, os.WriteFile(path, hugePNG(t, 10000, 5000), 0o600))

	_, err := NewFileLoader().Load(context.Background(), path)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestRemoteLoaderRefusesLoopbackAtDial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(pngBytes(t, color.White))
	}))
	defer server.Close()

	// Allow-listed by name, yet the address it reaches is loopback.
	loader := NewRemoteLoader(security.HostPolicy{Allowed: []string{"thumbs.example.com"}}, 0)
	loader.client.Transport.(*http.Transport).DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		d := net.Dialer{Control: security.HostPolicy{}.DialControl}
		return d.DialContext(ctx, network, server.Listener.Addr().String())
	}

	_, err := loader.Load(context.Background(), "http://thumbs.example.com/a.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbiddenSource))
}
