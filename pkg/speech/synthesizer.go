// Package speech converts extracted text to audio and manages the
// directory of generated audio files.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// SynthesisError represents a speech-generation failure
type SynthesisError struct {
	Message string
}

func (e *SynthesisError) Error() string {
	return e.Message
}

// Synthesizer converts text to an audio byte stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, localeCode string) ([]byte, error)
}

// DefaultTTSEndpoint is the Google Translate speech endpoint.
const DefaultTTSEndpoint = "https://translate.google.com/translate_tts"

// maxChunkRunes bounds the text sent per TTS request; the endpoint rejects
// long query strings.
const maxChunkRunes = 180

// GoogleSynthesizer synthesizes speech through the Google Translate TTS
// endpoint, producing MP3 audio. Long text is split into chunks on
// whitespace and the resulting MP3 segments are concatenated.
type GoogleSynthesizer struct {
	endpoint string
	client   *http.Client
}

// NewGoogleSynthesizer creates a synthesizer against the given endpoint.
// An empty endpoint selects DefaultTTSEndpoint.
func NewGoogleSynthesizer(endpoint string) *GoogleSynthesizer {
	if endpoint == "" {
		endpoint = DefaultTTSEndpoint
	}
	return &GoogleSynthesizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize converts text to MP3 audio in the given locale.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, localeCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Message: "no text to synthesize"}
	}
	if localeCode == "" {
		return nil, &SynthesisError{Message: "no synthesis locale provided"}
	}

	var audio bytes.Buffer
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		segment, err := g.fetchChunk(ctx, chunk, localeCode)
		if err != nil {
			return nil, err
		}
		audio.Write(segment)
	}

	return audio.Bytes(), nil
}

func (g *GoogleSynthesizer) fetchChunk(ctx context.Context, chunk, localeCode string) ([]byte, error) {
	params := url.Values{
		"ie":     {"UTF-8"},
		"client": {"tw-ob"},
		"tl":     {localeCode},
		"q":      {chunk},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &SynthesisError{Message: fmt.Sprintf("failed to build TTS request: %v", err)}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &SynthesisError{Message: fmt.Sprintf("TTS request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SynthesisError{Message: fmt.Sprintf("TTS endpoint returned %s", resp.Status)}
	}

	segment, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Message: fmt.Sprintf("failed to read TTS response: %v", err)}
	}
	if len(segment) == 0 {
		return nil, &SynthesisError{Message: "TTS endpoint returned no audio"}
	}
	return segment, nil
}

// splitChunks breaks text into pieces of at most maxRunes runes, preferring
// whitespace boundaries so words are not cut mid-way.
func splitChunks(text string, maxRunes int) []string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentRunes := 0
	for _, word := range strings.Fields(text) {
		wordRunes := utf8.RuneCountInString(word)
		if currentRunes > 0 && currentRunes+1+wordRunes > maxRunes {
			chunks = append(chunks, current.String())
			current.Reset()
			currentRunes = 0
		}
		if currentRunes > 0 {
			current.WriteByte(' ')
			currentRunes++
		}
		current.WriteString(word)
		currentRunes += wordRunes
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
