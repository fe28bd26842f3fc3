package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avelar/wordflash/internal/logger"
)

// maxClipBytes caps a single synthesized clip read from the TTS backend.
const maxClipBytes = 5 * 1024 * 1024

// Generator synthesizes a pronunciation clip for a word.
type Generator interface {
	Synthesize(ctx context.Context, word, lang, voice string) ([]byte, error)
}

// TTSClient talks to an external text-to-speech HTTP endpoint.
type TTSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTTSClient creates a Generator backed by the TTS service at baseURL.
func NewTTSClient(baseURL string) *TTSClient {
	return &TTSClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *TTSClient) Synthesize(ctx context.Context, word, lang, voice string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("tts").WithField("word", word)

	q := url.Values{}
	q.Set("text", word)
	q.Set("lang", lang)
	if voice != "" {
		q.Set("voice", voice)
	}
	endpoint := fmt.Sprintf("%s/synthesize?%s", c.baseURL, q.Encode())

	log.Debug("synthesizing clip from: %s", c.baseURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to reach tts service: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("tts response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("tts request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("tts status %d: %s", resp.StatusCode, string(body))
	}

	clip, err := io.ReadAll(io.LimitReader(resp.Body, maxClipBytes))
	if err != nil {
		log.Error("failed to read tts response: %v", err)
		return nil, err
	}

	log.Info("synthesized %d bytes for %q", len(clip), word)
	return clip, nil
}
