package handlers

import (
	"net/http"
	"time"

	"github.com/steveyiyo/tts-gateway/pkg/types"

	"github.com/gin-gonic/gin"
)

// routeTable names every route for the health and docs endpoints.
var routeTable = map[string]string{
	"root":     "/",
	"tts":      "/tts",
	"tts_test": "/tts/test",
	"voices":   "/tts/voices",
	"health":   "/health",
	"docs":     "/docs",
}

const landingPage = `<!DOCTYPE html>
<html>
<head><title>TTS Gateway</title></head>
<body>
<h1>TTS Gateway</h1>
<p>REST API for text-to-speech conversion via Murf.</p>
<p>See <a href="/docs">/docs</a> for the API surface.</p>
</body>
</html>`

type MetaHandler struct {
	Port string
}

func NewMetaHandler(port string) *MetaHandler {
	return &MetaHandler{Port: port}
}

func (h *MetaHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}

func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Endpoints: routeTable,
	})
}

// Docs is a JSON self-description of the API surface.
func (h *MetaHandler) Docs(c *gin.Context) {
	base := "http://localhost:" + h.Port
	c.JSON(http.StatusOK, gin.H{
		"title":       "TTS Gateway API Documentation",
		"description": "REST API for Text-to-Speech conversion using Murf API",
		"version":     "1.0.0",
		"base_url":    base,
		"endpoints": gin.H{
			"GET /": gin.H{
				"description": "Home page",
				"response":    "HTML page",
			},
			"GET /docs": gin.H{
				"description": "API documentation (this page)",
				"response":    "JSON documentation",
			},
			"GET /health": gin.H{
				"description": "Health check endpoint",
				"response": gin.H{
					"status":    "healthy",
					"timestamp": "ISO timestamp",
					"endpoints": "Available endpoints list",
				},
			},
			"GET /tts/voices": gin.H{
				"description": "Get list of available voices from Murf API",
				"response": gin.H{
					"success": true,
					"voices":  "Array of voice objects",
					"count":   "Number of voices available",
				},
			},
			"GET /tts/test": gin.H{
				"description": "Test endpoint to verify TTS functionality",
				"response": gin.H{
					"message":          "TTS endpoint is active",
					"status":           "success",
					"common_voice_ids": "List of valid voice IDs",
				},
			},
			"POST /tts": gin.H{
				"description":     "Convert text to speech using Murf API",
				"method":          "POST",
				"content_type":    "application/json",
				"required_fields": []string{"text"},
				"optional_fields": []string{"voice_id", "format", "speech_rate", "pitch"},
				"request_example": gin.H{
					"text":        "Hello, this is a test message",
					"voice_id":    "en-US-ken",
					"format":      "mp3",
					"speech_rate": 0,
				},
				"success_response": gin.H{
					"success":        true,
					"audio_url":      "https://generated-audio-url.com/file.mp3",
					"text_processed": "Your input text",
					"voice_used":     "en-US-ken",
					"format":         "mp3",
					"timestamp":      "ISO timestamp",
				},
				"error_response": gin.H{
					"success": false,
					"error":   "Error description",
				},
			},
		},
		"quick_test_commands": gin.H{
			"test_endpoint":  "curl " + base + "/tts/test",
			"get_voices":     "curl " + base + "/tts/voices",
			"tts_conversion": "curl -X POST " + base + `/tts -H "Content-Type: application/json" -d '{"text": "Hello world!", "voice_id": "en-US-ken"}'`,
			"health_check":   "curl " + base + "/health",
		},
	})
}
