package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{"newer patch", "v1.0.0", "v1.0.1", true, false},
		{"same", "v1.2.0", "v1.2.0", false, false},
		{"older", "v2.0.0", "v1.9.9", false, false},
		{"missing v prefix", "1.0.0", "1.1.0", true, false},
		{"prerelease is older", "v1.0.0", "v1.0.0-rc.1", false, false},
		{"garbage current", "banana", "v1.0.0", false, true},
		{"garbage latest", "v1.0.0", "latest", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.current, tt.latest)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Compare("(devel)", "v1.0.0")
	assert.ErrorIs(t, err, ErrDevBuild)
}

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/psytests/psytests/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	t.Run("update available", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, `{"tag_name":"v1.3.0","html_url":"https://example.com/v1.3.0"}`)
		st, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), "v1.2.0")
		require.NoError(t, err)
		assert.True(t, st.UpdateAvailable)
		assert.Equal(t, "v1.3.0", st.Latest)
		assert.Equal(t, "https://example.com/v1.3.0", st.URL)
	})

	t.Run("up to date", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0"}`)
		st, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), "v1.2.0")
		require.NoError(t, err)
		assert.False(t, st.UpdateAvailable)
	})

	t.Run("dev build skips the network", func(t *testing.T) {
		_, err := NewChecker(WithBaseURL("http://127.0.0.1:1")).Check(context.Background(), "(devel)")
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("http error", func(t *testing.T) {
		server := releaseServer(t, http.StatusForbidden, `{"message":"rate limited"}`)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), "v1.0.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("empty tag", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, `{}`)
		_, err := NewChecker(WithBaseURL(server.URL)).Latest(context.Background())
		assert.Error(t, err)
	})

	t.Run("custom repository", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/tests/releases/latest", r.URL.Path)
			_, _ = w.Write([]byte(`{"tag_name":"v0.1.0"}`))
		}))
		defer server.Close()

		rel, err := NewChecker(WithBaseURL(server.URL+"/"), WithRepository("acme", "tests")).Latest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "v0.1.0", rel.Tag)
	})
}
