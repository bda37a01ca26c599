package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSetsHeaders(t *testing.T) {
	var gotUA, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), server.URL, FetchOptions{
		Headers: map[string]string{"Authorization": "Bearer abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.True(t, strings.HasPrefix(gotUA, UserAgentName+"/"))
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"gone"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "gone")
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotBody, gotType, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	_, err := Post(context.Background(), server.URL, []byte(`{"a":1}`), FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, `{"a":1}`, gotBody)
	assert.Equal(t, "application/json", gotType)
}

func TestFetchCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, server.URL, FetchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
