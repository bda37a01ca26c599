package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/config"
	"github.com/jmylchreest/studio/internal/theme"
)

func TestFormatTheme(t *testing.T) {
	dark := theme.Fallback(theme.ModeDark)

	css, err := formatTheme(dark, "css", false)
	require.NoError(t, err)
	assert.Contains(t, css, "--theme-accent: #52ddeb;")

	js, err := formatTheme(dark, "JSON", false)
	require.NoError(t, err)
	var decoded theme.Theme
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, dark, decoded)

	table, err := formatTheme(dark, "table", true)
	require.NoError(t, err)
	assert.Contains(t, table, "mode: dark  source: fallback")
	assert.Contains(t, table, "\033[48;2;18;18;18m")

	_, err = formatTheme(dark, "yaml", false)
	assert.Error(t, err)
}

func TestThemeCommand(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "thumb.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"theme", path, "--mode", "light", "--format", "json", "--algorithm", "kmeans"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	var got theme.Theme
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, theme.SourceComputed, got.Source)
	assert.Equal(t, "#dee2ec", got.Background)
}

func TestReadPasswordFromPipe(t *testing.T) {
	got, err := readPassword(strings.NewReader("s3cret \r\nignored\n"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "s3cret ", got)

	got, err = readPassword(strings.NewReader("no-newline"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestPostAdmin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"invalid password"}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"Portfolio cache updated.","revision":42}`))
	}))
	defer server.Close()

	reply, err := postAdmin(context.Background(), server.URL, "pw")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), reply.Revision)

	_, err = postAdmin(context.Background(), server.URL, "nope")
	assert.EqualError(t, err, "server refused (HTTP 401): invalid password")
}

func TestNewLogger(t *testing.T) {
	oldVerbose, oldLevel := globalVerbose, globalLogLevel
	t.Cleanup(func() { globalVerbose, globalLogLevel = oldVerbose, oldLevel })

	globalVerbose, globalLogLevel = false, ""
	assert.True(t, newLogger("warn").IsWarn())
	assert.False(t, newLogger("warn").IsInfo())
	assert.True(t, newLogger("bogus").IsInfo())

	globalLogLevel = "error"
	assert.False(t, newLogger("debug").IsWarn())

	globalVerbose = true
	assert.True(t, newLogger("error").IsDebug())
}

func TestBuildServer(t *testing.T) {
	cfg := &config.Config{
		Coda:  config.Coda{Token: "t", DocID: "d", TableID: "Portfolio"},
		Theme: config.Theme{DefaultMode: "light", Algorithm: "kmeans"},
		Addr:  ":0",
	}
	server, err := buildServer(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-theme="light"`)

	cfg.Theme.Algorithm = "median-cut"
	_, err = buildServer(cfg, hclog.NewNullLogger())
	assert.Error(t, err)
}
