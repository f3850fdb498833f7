// Command smoke exercises every gateway endpoint against a running server
// for manual verification. It prints the status and body per endpoint and
// exits nonzero when any check fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type check struct {
	name   string
	method string
	path   string
	body   any
	want   int
}

func main() {
	base := flag.String("base", "http://localhost:5001", "gateway base URL")
	flag.Parse()

	checks := []check{
		{name: "Health Check Endpoint", method: "GET", path: "/health", want: 200},
		{name: "API Documentation", method: "GET", path: "/docs", want: 200},
		{name: "TTS Test Endpoint", method: "GET", path: "/tts/test", want: 200},
		{name: "Key Test Endpoint", method: "GET", path: "/tts/key-test", want: 200},
		{name: "Home Page", method: "GET", path: "/", want: 200},
		{name: "TTS Conversion Endpoint", method: "POST", path: "/tts", want: 200, body: map[string]any{
			"text":     "Hello! This is a test of the Murf TTS integration. The system is working correctly.",
			"voice_id": "en-US-ken",
			"format":   "mp3",
		}},
		{name: "TTS Missing Text", method: "POST", path: "/tts", want: 400, body: map[string]any{}},
	}

	hc := &http.Client{Timeout: 30 * time.Second}
	failed := 0
	for _, ck := range checks {
		if err := run(hc, *base, ck); err != nil {
			fmt.Printf("FAIL %s: %v\n", ck.name, err)
			failed++
		} else {
			fmt.Printf("PASS %s\n", ck.name)
		}
	}

	fmt.Printf("\n%d/%d checks passed\n", len(checks)-failed, len(checks))
	if failed > 0 {
		os.Exit(1)
	}
}

func run(hc *http.Client, base string, ck check) error {
	var body io.Reader
	if ck.body != nil {
		b, err := json.Marshal(ck.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(ck.method, base+ck.path, body)
	if err != nil {
		return err
	}
	if ck.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed (is the server running?): %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	fmt.Printf("  %s %s -> %d\n", ck.method, ck.path, resp.StatusCode)
	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "  ", "  ") == nil {
		fmt.Printf("  %s\n", pretty.String())
	}

	if resp.StatusCode != ck.want {
		return fmt.Errorf("got status %d, want %d", resp.StatusCode, ck.want)
	}
	return nil
}
