package main

import (
	"io"
	"log"
	"os"

	"github.com/steveyiyo/tts-gateway/internal/config"
	h "github.com/steveyiyo/tts-gateway/internal/http"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   "logs/server.log",
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}))

	keyState := "missing"
	if cfg.MurfAPIKey != "" {
		keyState = "configured"
	}
	log.Printf("TTS gateway starting on %s:%s (debug=%v, murf key %s)", cfg.Host, cfg.Port, cfg.Debug, keyState)
	log.Printf("endpoints: / /docs /health /tts /tts/test /tts/voices /tts/key-test /tts/auth-test")

	r := h.NewRouter(cfg)
	if err := r.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
