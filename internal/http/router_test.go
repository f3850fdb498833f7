package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/steveyiyo/tts-gateway/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(apiKey string) config.Config {
	return config.Config{
		Host:       "127.0.0.1",
		Port:       "5001",
		MurfAPIKey: apiKey,
		TTSTimeout: 5 * time.Second,
	}
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestSynthesize_MissingOrBlankText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var upstream atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream.Add(1)
	}))
	defer srv.Close()

	cfg := testConfig("ap2_0123456789abcdef")
	cfg.MurfAPIURL = srv.URL
	r := NewRouter(cfg)

	t.Run("missing text", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/tts", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body, "expected_format")
	})

	t.Run("whitespace text", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/tts", `{"text": "   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("invalid json", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/tts", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Equal(t, int32(0), upstream.Load(), "bad input must never reach upstream")
}

func TestSynthesize_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"audioFile":      "https://x/y.mp3",
			"charactersUsed": 42,
		})
	}))
	defer srv.Close()

	cfg := testConfig("ap2_0123456789abcdef")
	cfg.MurfAPIURL = srv.URL
	r := NewRouter(cfg)

	w, body := do(t, r, http.MethodPost, "/tts", `{"text": "hello", "speech_rate": 10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://x/y.mp3", body["audio_url"])
	assert.Equal(t, float64(42), body["characters_used"])
	assert.Equal(t, "hello", body["text_processed"])
	assert.Equal(t, "en-US-ken", body["voice_used"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSynthesize_UpstreamStatusMirrored(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"errorMessage": "rate limited"})
	}))
	defer srv.Close()

	cfg := testConfig("ap2_0123456789abcdef")
	cfg.MurfAPIURL = srv.URL
	r := NewRouter(cfg)

	w, body := do(t, r, http.MethodPost, "/tts", `{"text": "hello"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(429), body["status_code"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rate limited", details["errorMessage"])
	assert.Contains(t, body, "request_payload")
	assert.Contains(t, body, "suggestion")
}

func TestSynthesize_ContractError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "done"})
	}))
	defer srv.Close()

	cfg := testConfig("ap2_0123456789abcdef")
	cfg.MurfAPIURL = srv.URL
	r := NewRouter(cfg)

	w, body := do(t, r, http.MethodPost, "/tts", `{"text": "hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "murf_response")
}

func TestSynthesize_NoAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig(""))

	w, body := do(t, r, http.MethodPost, "/tts", `{"text": "hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestKeyTest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unconfigured", func(t *testing.T) {
		r := NewRouter(testConfig(""))
		w, body := do(t, r, http.MethodGet, "/tts/key-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("configured", func(t *testing.T) {
		r := NewRouter(testConfig("ap2_0123456789abcdef"))
		w, body := do(t, r, http.MethodGet, "/tts/key-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Valid format", body["api_key_format"])
		assert.Equal(t, float64(len("ap2_0123456789abcdef")), body["api_key_length"])
		assert.NotContains(t, body["api_key_preview"], "0123456789abcdef")
	})

	t.Run("wrong prefix", func(t *testing.T) {
		r := NewRouter(testConfig("sk_0123456789abcdefgh"))
		w, body := do(t, r, http.MethodGet, "/tts/key-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Check format - should start with ap2_", body["api_key_format"])
	})
}

func TestAuthTest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).UnixMilli()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"token":               "tok_abcdefghijklmnopqrstuvwxyz",
				"expiryInEpochMillis": expiry,
			})
		}))
		defer srv.Close()

		cfg := testConfig("ap2_0123456789abcdef")
		cfg.MurfAuthURL = srv.URL
		r := NewRouter(cfg)

		w, body := do(t, r, http.MethodGet, "/tts/auth-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(expiry), body["expires_at"])
		preview, _ := body["token_preview"].(string)
		assert.Contains(t, preview, "...")
	})

	t.Run("upstream rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		cfg := testConfig("ap2_0123456789abcdef")
		cfg.MurfAuthURL = srv.URL
		r := NewRouter(cfg)

		w, body := do(t, r, http.MethodGet, "/tts/auth-test", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unconfigured", func(t *testing.T) {
		r := NewRouter(testConfig(""))
		w, body := do(t, r, http.MethodGet, "/tts/auth-test", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestVoicesEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"voiceId": "en-US-ken"},
			{"voiceId": "en-US-sarah"},
			{"voiceId": "en-GB-daniel"},
		})
	}))
	defer srv.Close()

	cfg := testConfig("ap2_0123456789abcdef")
	cfg.MurfVoicesURL = srv.URL
	r := NewRouter(cfg)

	w, body := do(t, r, http.MethodGet, "/tts/voices", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["count"])
}

func TestMetaEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig("ap2_0123456789abcdef"))

	t.Run("health", func(t *testing.T) {
		w, body := do(t, r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body, "endpoints")
	})

	t.Run("docs", func(t *testing.T) {
		w, body := do(t, r, http.MethodGet, "/docs", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body, "endpoints")
		assert.Equal(t, "http://localhost:5001", body["base_url"])
	})

	t.Run("tts test descriptor", func(t *testing.T) {
		w, body := do(t, r, http.MethodGet, "/tts/test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["api_key_configured"])
		assert.Contains(t, body, "common_voice_ids")
	})

	t.Run("landing page", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})
}
