package security

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAbsoluteHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://cdn.example.com/a.jpg", true},
		{"http://example.com", true},
		{"HTTPS://EXAMPLE.COM/x", true},
		{"", false},
		{"example.com/a.jpg", false},
		{"/relative/path.png", false},
		{"ftp://example.com/a.jpg", false},
		{"https://", false},
		{"https://exa mple.com/a.jpg", false},
		{"javascript:alert(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAbsoluteHTTPURL(tt.in))
		})
	}
}

func TestHostPolicyValidateFetchURL(t *testing.T) {
	tests := []struct {
		name       string
		policy     HostPolicy
		url        string
		wantErr    bool
		notAllowed bool
	}{
		{name: "public host", url: "https://images.example.com/a.png"},
		{name: "empty", url: "", wantErr: true},
		{name: "not http", url: "file:///etc/passwd", wantErr: true},
		{name: "localhost", url: "http://localhost:8080/a.png", wantErr: true, notAllowed: true},
		{name: "loopback", url: "http://127.0.0.1/a.png", wantErr: true, notAllowed: true},
		{name: "private", url: "http://10.1.2.3/a.png", wantErr: true, notAllowed: true},
		{name: "link local", url: "http://169.254.169.254/latest", wantErr: true, notAllowed: true},
		{name: "trailing dot localhost", url: "http://localhost./x.png", wantErr: true, notAllowed: true},
		{name: "metadata name", url: "http://metadata.google.internal/x", wantErr: true, notAllowed: true},
		{name: "carrier nat", url: "http://100.64.1.1/x", wantErr: true, notAllowed: true},
		{name: "private allowed", policy: HostPolicy{AllowPrivate: true}, url: "http://127.0.0.1/a.png"},
		{
			name:   "exact allow-list",
			policy: HostPolicy{Allowed: []string{"codahosted.io"}},
			url:    "https://codahosted.io/docs/x.png",
		},
		{
			name:   "suffix allow-list",
			policy: HostPolicy{Allowed: []string{".cloudfront.net"}},
			url:    "https://d1.cloudfront.net/x.png",
		},
		{
			name:       "outside allow-list",
			policy:     HostPolicy{Allowed: []string{"codahosted.io"}},
			url:        "https://evil.example.com/x.png",
			wantErr:    true,
			notAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.ValidateFetchURL(tt.url)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.notAllowed, errors.Is(err, ErrHostNotAllowed))
		})
	}
}

func TestHostPolicyDialControl(t *testing.T) {
	tests := []struct {
		address string
		policy  HostPolicy
		wantErr bool
	}{
		{address: "93.184.216.34:443"},
		{address: "[2606:2800:220:1::]:443"},
		{address: "127.0.0.1:80", wantErr: true},
		{address: "[::1]:80", wantErr: true},
		{address: "10.0.0.7:8080", wantErr: true},
		{address: "169.254.169.254:80", wantErr: true},
		{address: "127.0.0.1:80", policy: HostPolicy{AllowPrivate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := tt.policy.DialControl("tcp", tt.address, nil)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrHostNotAllowed))
		})
	}
}

// A name that passes URL validation but resolves to loopback is refused when
// the connection is made.
func TestHostPolicyClientRejectsResolvedLoopback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := HostPolicy{}.HTTPClient(2 * time.Second)
	_, err := client.Get(server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHostNotAllowed))
}

func TestHostPolicyClientChecksRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("secret"))
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, strings.Replace(target.URL, "127.0.0.1", "localhost", 1), http.StatusFound)
	}))
	defer redirector.Close()

	policy := HostPolicy{AllowPrivate: true, Allowed: []string{"127.0.0.1"}}
	_, err := policy.HTTPClient(2 * time.Second).Get(redirector.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHostNotAllowed))
}
