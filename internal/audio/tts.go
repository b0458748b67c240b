package audio

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// Speaker produces a playable audio file for a piece of text. The quiz core
// only hands text to this side channel; utterance lifecycle (cancel before
// speak) is the player's concern.
type Speaker interface {
	AudioFile(ctx context.Context, text string) (string, error)
}

// TTSService provides text-to-speech functionality backed by a directory of
// cached MP3 files
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a new TTS service writing into audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// AudioFile converts text to speech and saves it as MP3, reusing a cached
// file when one exists. Returns the filename (not full path) on success.
func (s *TTSService) AudioFile(ctx context.Context, text string) (string, error) {
	filename := audioFilename(text)
	path := filepath.Join(s.audioDir, filename)

	// Reuse an already generated file
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	// Generate audio using Google Translate TTS (free, no API key needed)
	if err := s.generateUsingGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// audioFilename derives a stable filename from the text. Short word-like
// text keeps a readable sanitized name; longer phrases (meanings, labels)
// fall back to a digest so filenames stay bounded.
func audioFilename(text string) string {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	if len(sanitized) <= 40 && isFilenameSafe(sanitized) {
		return fmt.Sprintf("word_%s.mp3", sanitized)
	}

	sum := sha1.Sum([]byte(sanitized))
	return fmt.Sprintf("tts_%s.mp3", hex.EncodeToString(sum[:8]))
}

func isFilenameSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '\'':
		default:
			return false
		}
	}
	return s != ""
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// DeleteAudioFile removes a cached audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already deleted
	}

	return os.Remove(path)
}
