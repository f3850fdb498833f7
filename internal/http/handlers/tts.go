package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/steveyiyo/tts-gateway/internal/core/murf"
	"github.com/steveyiyo/tts-gateway/pkg/types"

	"github.com/gin-gonic/gin"
)

type TTSHandler struct {
	Client *murf.Client
	APIKey string
}

func NewTTSHandler(client *murf.Client, apiKey string) *TTSHandler {
	return &TTSHandler{Client: client, APIKey: apiKey}
}

// Synthesize is POST /tts: validate, translate, call Murf, relay the audio
// URL or a structured error.
func (h *TTSHandler) Synthesize(c *gin.Context) {
	if !h.Client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Murf API key not configured. Please set MURF_API_KEY environment variable.",
			"success": false,
		})
		return
	}

	var req types.TTSReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required field: text",
			"success": false,
			"expected_format": gin.H{
				"text":        "Your text to convert to speech",
				"voice_id":    murf.DefaultVoiceID + " (optional)",
				"format":      "mp3 (optional)",
				"speech_rate": "0 (optional, -50 to 50)",
			},
		})
		return
	}

	res, err := h.Client.Synthesize(c.Request.Context(), murf.SynthesisRequest{
		Text:       req.Text,
		VoiceID:    req.VoiceID,
		Format:     req.Format,
		SpeechRate: req.SpeechRate,
	})
	if err != nil {
		h.synthesisError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TTSResp{
		Success:        true,
		AudioURL:       res.AudioURL,
		TextProcessed:  res.Text,
		VoiceUsed:      res.VoiceUsed,
		Format:         res.Format,
		Timestamp:      res.Timestamp.Format(time.RFC3339),
		CharactersUsed: res.CharactersUsed,
		MurfResponse:   res.Raw,
	})
}

func (h *TTSHandler) synthesisError(c *gin.Context, err error) {
	var me *murf.Error
	if !errors.As(err, &me) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error(), "success": false})
		return
	}
	switch me.Kind {
	case murf.KindUpstream:
		c.JSON(me.HTTPStatus(), gin.H{
			"error":           me.Message,
			"success":         false,
			"details":         me.Details,
			"status_code":     me.Status,
			"request_payload": me.Payload,
			"suggestion":      "Try using a valid voice ID like: " + strings.Join(murf.CommonVoiceIDs[:4], ", "),
		})
	case murf.KindContract:
		c.JSON(me.HTTPStatus(), gin.H{
			"error":         me.Message,
			"success":       false,
			"murf_response": me.Details,
		})
	default:
		c.JSON(me.HTTPStatus(), gin.H{"error": me.Message, "success": false})
	}
}

// Voices is GET /tts/voices: relay the upstream voice listing.
func (h *TTSHandler) Voices(c *gin.Context) {
	voices, err := h.Client.Voices(c.Request.Context())
	if err != nil {
		var me *murf.Error
		if errors.As(err, &me) && me.Kind == murf.KindUpstream {
			c.JSON(me.HTTPStatus(), gin.H{"success": false, "error": me.Message, "details": me.Details})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	var count any = "unknown"
	if list, ok := voices.([]any); ok {
		count = len(list)
	}
	c.JSON(http.StatusOK, types.VoicesResp{Success: true, Voices: voices, Count: count})
}

// KeyTest is GET /tts/key-test: shape-check the configured key. Never calls
// out.
func (h *TTSHandler) KeyTest(c *gin.Context) {
	if h.APIKey == "" {
		c.JSON(http.StatusOK, gin.H{"error": "API key not configured", "success": false})
		return
	}

	format := "Check format - should start with ap2_"
	if strings.HasPrefix(h.APIKey, "ap2_") {
		format = "Valid format"
	}
	c.JSON(http.StatusOK, types.KeyTestResp{
		Success:       true,
		APIKeyFormat:  format,
		APIKeyLength:  len(h.APIKey),
		APIKeyPreview: preview(h.APIKey, 8),
		Message:       "API key configuration looks good",
	})
}

// AuthTest is GET /tts/auth-test: exercise the token cache against the
// upstream auth endpoint.
func (h *TTSHandler) AuthTest(c *gin.Context) {
	if !h.Client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Murf API key not configured", "success": false})
		return
	}

	token, err := h.Client.AuthToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Failed to authenticate with Murf API"})
		return
	}
	c.JSON(http.StatusOK, types.AuthTestResp{
		Success:      true,
		Message:      "Authentication successful",
		TokenPreview: preview(token, 10),
		ExpiresAt:    h.Client.TokenExpiresAt(),
	})
}

// Test is GET /tts/test: a static capability descriptor.
func (h *TTSHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":            "TTS endpoint is active",
		"status":             "success",
		"endpoint":           "/tts",
		"method":             "POST",
		"required_fields":    []string{"text"},
		"optional_fields":    []string{"voice_id", "format", "speech_rate", "pitch"},
		"api_key_configured": h.APIKey != "",
		"example_request": gin.H{
			"text":        "Hello, this is a test message for text to speech conversion.",
			"voice_id":    murf.DefaultVoiceID,
			"format":      "mp3",
			"speech_rate": 0,
		},
		"common_voice_ids": murf.CommonVoiceIDs,
		"test_urls": gin.H{
			"test_endpoint":      "/tts/test",
			"auth_test_endpoint": "/tts/auth-test",
			"voices_endpoint":    "/tts/voices",
			"main_endpoint":      "/tts",
		},
	})
}

// preview shows the first and last n characters of a secret.
func preview(s string, n int) string {
	if len(s) <= 2*n {
		return s
	}
	return s[:n] + "..." + s[len(s)-n:]
}
