package types

// TTSReq is the client-facing synthesis request. Only Text is required;
// speech_rate follows the upstream contract of -50 (slow) to 50 (fast) and
// is passed through unvalidated.
type TTSReq struct {
	Text       string `json:"text"`
	VoiceID    string `json:"voice_id"`
	Format     string `json:"format"`
	SpeechRate int    `json:"speech_rate"`
}

// TTSResp is the success shape of POST /tts. MurfResponse carries the full
// upstream body for debugging.
type TTSResp struct {
	Success        bool   `json:"success"`
	AudioURL       string `json:"audio_url"`
	TextProcessed  string `json:"text_processed"`
	VoiceUsed      string `json:"voice_used"`
	Format         string `json:"format"`
	Timestamp      string `json:"timestamp"`
	CharactersUsed int    `json:"characters_used"`
	MurfResponse   any    `json:"murf_response"`
}

// VoicesResp relays the upstream voice listing. Count is a number when the
// listing is an array and "unknown" otherwise.
type VoicesResp struct {
	Success bool `json:"success"`
	Voices  any  `json:"voices"`
	Count   any  `json:"count"`
}

// KeyTestResp describes the locally configured API key without calling out.
type KeyTestResp struct {
	Success       bool   `json:"success"`
	APIKeyFormat  string `json:"api_key_format"`
	APIKeyLength  int    `json:"api_key_length"`
	APIKeyPreview string `json:"api_key_preview"`
	Message       string `json:"message"`
}

// AuthTestResp reports a token-cache exercise.
type AuthTestResp struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TokenPreview string `json:"token_preview"`
	ExpiresAt    int64  `json:"expires_at"`
}

// HealthResp is the health-check body.
type HealthResp struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}
