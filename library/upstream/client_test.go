package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientReturnsVerbatimBodyOnSuccess(t *testing.T) {
	const payload = "# Title\nBody"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, payload, body)
}

func TestClientTranslatesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, err := client.Do(req)
	require.Empty(t, body)
	require.Error(t, err)

	uerr, ok := err.(*UpstreamError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, uerr.StatusCode)
	require.Equal(t, "Not Found", uerr.Status)
	require.Equal(t, "not found", uerr.Body)
	require.Contains(t, err.Error(), "404")
	require.Contains(t, err.Error(), "not found")
}

func TestClientTranslatesTransportFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(WithHTTPClient(server.Client()))
	server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, err := client.Do(req)
	require.Empty(t, body)
	require.Error(t, err)

	terr, ok := err.(*TransportError)
	require.True(t, ok)
	require.NotNil(t, terr.Err)
	require.Contains(t, err.Error(), "transport failure")
}

func TestTruncateForLog(t *testing.T) {
	body, truncated := truncateForLog([]byte("abcdef"), 4)
	require.True(t, truncated)
	require.Equal(t, "abcd", body)

	body, truncated = truncateForLog([]byte("abc"), 4)
	require.False(t, truncated)
	require.Equal(t, "abc", body)
}
