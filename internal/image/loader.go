// Package image provides utilities for loading thumbnails to sample theme colours from.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/studio/internal/security"
	httputil "github.com/jmylchreest/studio/internal/util/http"
)

// MaxPixels bounds the declared dimensions of an image before it is decoded.
const MaxPixels = 40_000_000

var (
	// ErrForbiddenSource is returned when an image URL is not allowed to be fetched.
	ErrForbiddenSource = errors.New("image source forbidden")

	// ErrTooLarge is returned when an image declares more than MaxPixels pixels.
	ErrTooLarge = errors.New("image too large")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given location.
	Load(ctx context.Context, location string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if err := checkDimensions(file); err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image file: %w", err)
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// checkDimensions reads the image header and rejects images over MaxPixels.
func checkDimensions(r io.Reader) error {
	config, format, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("failed to decode image config (format: %s): %w", format, err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", config.Width, config.Height)
	}
	if int64(config.Width)*int64(config.Height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, config.Width, config.Height)
	}
	return nil
}

// RemoteLoader fetches and decodes images over HTTP(S), subject to a host policy.
type RemoteLoader struct {
	policy security.HostPolicy
	client *http.Client
}

// NewRemoteLoader creates a RemoteLoader. A zero timeout uses the fetch default.
// The policy is checked before the request, when dialling and on redirects.
func NewRemoteLoader(policy security.HostPolicy, timeout time.Duration) *RemoteLoader {
	if timeout == 0 {
		timeout = httputil.DefaultTimeout
	}
	return &RemoteLoader{policy: policy, client: policy.HTTPClient(timeout)}
}

// Load fetches and decodes an image from an HTTP(S) URL.
func (l *RemoteLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if err := l.policy.ValidateFetchURL(url); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrForbiddenSource, err)
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{
		Client:  l.client,
		Headers: map[string]string{"Accept": "image/*"},
	})
	if err != nil {
		if errors.Is(err, security.ErrHostNotAllowed) {
			return nil, fmt.Errorf("%w: %w", ErrForbiddenSource, err)
		}
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	if err := checkDimensions(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader   *FileLoader
	remoteLoader *RemoteLoader
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(remote *RemoteLoader) *SmartLoader {
	return &SmartLoader{
		fileLoader:   NewFileLoader(),
		remoteLoader: remote,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, location string) (image.Image, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return l.remoteLoader.Load(ctx, location)
	}
	return l.fileLoader.Load(ctx, location)
}
