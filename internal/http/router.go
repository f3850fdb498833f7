package http

import (
	"github.com/steveyiyo/tts-gateway/internal/config"
	"github.com/steveyiyo/tts-gateway/internal/core/murf"
	"github.com/steveyiyo/tts-gateway/internal/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func NewRouter(cfg config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(requestID())

	client := murf.NewClient(cfg.MurfAPIKey, cfg.MurfAPIURL, cfg.MurfAuthURL, cfg.MurfVoicesURL, cfg.TTSTimeout)
	th := handlers.NewTTSHandler(client, cfg.MurfAPIKey)
	mh := handlers.NewMetaHandler(cfg.Port)

	r.GET("/", mh.Index)
	r.GET("/health", mh.Health)
	r.GET("/docs", mh.Docs)
	r.GET("/tts/test", th.Test)
	r.GET("/tts/voices", th.Voices)
	r.GET("/tts/key-test", th.KeyTest)
	r.GET("/tts/auth-test", th.AuthTest)
	r.POST("/tts", th.Synthesize)
	return r
}

// requestID tags every response so log lines can be matched to a call.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = "req_" + uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
