package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func esServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPingES(t *testing.T) {
	es, err := NewESClient([]string{esServer(t, http.StatusOK).URL}, "", "")
	require.NoError(t, err)
	assert.NoError(t, PingES(context.Background(), es))
}

func TestPingES_ErrorStatus(t *testing.T) {
	es, err := NewESClientWithOptions(ESOptions{Addrs: []string{esServer(t, http.StatusUnauthorized).URL}, MaxRetries: 1})
	require.NoError(t, err)
	assert.Error(t, PingES(context.Background(), es))
}
