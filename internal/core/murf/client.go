package murf

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultVoiceID is a known-good Murf voice used when the caller
	// doesn't pick one.
	DefaultVoiceID = "en-US-ken"

	defaultFormat = "MP3"
	modelVersion  = "GEN2"
	channelType   = "STEREO"

	// auth and voices calls are cheap; they get a shorter deadline than
	// synthesis.
	quickTimeout = 10 * time.Second
)

// audioURLFields is the compatibility list of response keys Murf has used
// for the generated file URL. First present wins.
var audioURLFields = []string{"audioFile", "audio_url", "url"}

// CommonVoiceIDs are voice IDs known to work with GEN2, surfaced by the
// diagnostic endpoints.
var CommonVoiceIDs = []string{
	"en-US-ken",
	"en-US-sarah",
	"en-US-laura",
	"en-US-wayne",
	"en-GB-daniel",
	"en-AU-nicole",
}

type Client struct {
	apiKey    string
	synthURL  string
	authURL   string
	voicesURL string
	hc        *http.Client
	tokens    *TokenCache
}

func NewClient(apiKey, synthURL, authURL, voicesURL string, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
	return &Client{
		apiKey:    apiKey,
		synthURL:  synthURL,
		authURL:   authURL,
		voicesURL: voicesURL,
		hc:        &http.Client{Transport: tr, Timeout: timeout},
		tokens:    NewTokenCache(),
	}
}

// Configured reports whether an upstream API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// SynthesisRequest is the local input shape for one conversion.
type SynthesisRequest struct {
	Text       string
	VoiceID    string
	Format     string
	SpeechRate int
}

// SynthesisResult is the success shape: the generated audio URL plus the
// echoed parameters and whatever usage counter Murf reported.
type SynthesisResult struct {
	AudioURL       string
	Text           string
	VoiceUsed      string
	Format         string
	Timestamp      time.Time
	CharactersUsed int
	Raw            map[string]any
}

// payload is the Murf wire shape. Model generation and channel mode are
// pinned; rate passes through unvalidated (contract range is -50..50,
// out-of-range values are the caller's problem).
type payload struct {
	Text         string `json:"text"`
	VoiceID      string `json:"voiceId"`
	AudioFormat  string `json:"audioFormat"`
	ModelVersion string `json:"modelVersion"`
	Rate         int    `json:"rate"`
	ChannelType  string `json:"channelType"`
}

func buildPayload(req SynthesisRequest) payload {
	voice := req.VoiceID
	if voice == "" {
		voice = DefaultVoiceID
	}
	format := strings.ToUpper(req.Format)
	if format == "" {
		format = defaultFormat
	}
	return payload{
		Text:         req.Text,
		VoiceID:      voice,
		AudioFormat:  format,
		ModelVersion: modelVersion,
		Rate:         req.SpeechRate,
		ChannelType:  channelType,
	}
}

// Synthesize converts text to speech through Murf and returns the audio URL.
// No retries: a single upstream failure surfaces directly to the caller.
func (c *Client) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if !c.Configured() {
		return nil, &Error{Kind: KindConfig, Message: "Murf API key not configured. Please set MURF_API_KEY environment variable."}
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, &Error{Kind: KindValidation, Message: "Text cannot be empty"}
	}

	p := buildPayload(req)
	body, err := json.Marshal(p)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "encoding Murf payload: " + err.Error()}
	}

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.synthURL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "building Murf request: " + err.Error()}
	}
	hr.Header.Set("api-key", c.apiKey)
	hr.Header.Set("Content-Type", "application/json")
	hr.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(hr)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Network error calling Murf API: " + err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Network error calling Murf API: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Murf API error: %d", resp.StatusCode),
			Details: decodeDetails(raw),
			Payload: p,
		}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &Error{Kind: KindContract, Message: "Unparseable Murf response", Details: string(raw)}
	}

	audioURL := firstString(data, audioURLFields...)
	if audioURL == "" {
		return nil, &Error{Kind: KindContract, Message: "Audio URL not found in Murf response", Details: data}
	}

	res := &SynthesisResult{
		AudioURL:  audioURL,
		Text:      req.Text,
		VoiceUsed: p.VoiceID,
		Format:    p.AudioFormat,
		Timestamp: time.Now(),
		Raw:       data,
	}
	if n, ok := data["charactersUsed"].(float64); ok {
		res.CharactersUsed = int(n)
	}
	return res, nil
}

// Voices relays Murf's voice listing verbatim.
func (c *Client) Voices(ctx context.Context) (any, error) {
	if !c.Configured() {
		return nil, &Error{Kind: KindConfig, Message: "API key not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, quickTimeout)
	defer cancel()
	hr, err := http.NewRequestWithContext(ctx, http.MethodGet, c.voicesURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "building voices request: " + err.Error()}
	}
	hr.Header.Set("api-key", c.apiKey)
	hr.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(hr)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Error fetching voices: " + err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Error fetching voices: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Failed to fetch voices: %d", resp.StatusCode),
			Details: decodeDetails(raw),
		}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &Error{Kind: KindContract, Message: "Unparseable voices response", Details: string(raw)}
	}
	return data, nil
}

// decodeDetails parses an upstream error body as JSON when possible and
// falls back to the raw text.
func decodeDetails(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
