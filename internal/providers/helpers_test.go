package providers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dshills/promptgate/internal/config"
	"github.com/stretchr/testify/assert"
)

func testConfig(p config.Provider, endpoint string) config.EffectiveConfig {
	return config.EffectiveConfig{
		Provider:    p,
		Model:       config.DefaultModel(p),
		Prompt:      "ping",
		Temperature: 0.7,
		MaxTokens:   64,
		APIKey:      "test-key",
		Endpoint:    endpoint,
	}
}

func testClient(server *httptest.Server) *Client {
	return &Client{client: server.Client()}
}

// stubServer answers every request with status and body. check, when set,
// inspects the request and its decoded JSON payload.
func stubServer(t *testing.T, status int, body string, check func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if check != nil {
			var payload map[string]any
			assert.NoError(t, json.Unmarshal(raw, &payload))
			check(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// rewriteTransport redirects requests for fixed provider URLs to a test server.
type rewriteTransport struct {
	base    http.RoundTripper
	baseURL string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = "http"
	req.URL.Host = t.baseURL[len("http://"):]
	if t.base != nil {
		return t.base.RoundTrip(req)
	}
	return http.DefaultTransport.RoundTrip(req)
}
