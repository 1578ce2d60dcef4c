package tts

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxTextLength bounds the text accepted for synthesis.
const MaxTextLength = 500

// Service wraps a Synthesizer with a content-addressed file cache. Word
// ingestion audio is named after the word id; ad hoc TTS requests are keyed
// on (lowercased text, voice) so repeated requests hit the cache.
type Service struct {
	synth    Synthesizer
	voice    string
	audioDir string
	cacheDir string
}

func NewService(synth Synthesizer, voice, audioDir string) (*Service, error) {
	cacheDir := filepath.Join(audioDir, "tts_cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dirs: %w", err)
	}
	return &Service{
		synth:    synth,
		voice:    voice,
		audioDir: audioDir,
		cacheDir: cacheDir,
	}, nil
}

// CacheKey derives the cache key for a text/voice pair.
func CacheKey(text, voiceID string) string {
	content := strings.ToLower(strings.TrimSpace(text)) + "_" + voiceID
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// GenerateWordAudio synthesizes the translation for a newly created word and
// stores it as <wordID>.mp3. Returns the public URL of the file.
func (s *Service) GenerateWordAudio(ctx context.Context, text string, wordID int64) (string, error) {
	data, err := s.synth.Synthesize(ctx, text, s.voice, "mp3")
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d.mp3", wordID)
	if err := os.WriteFile(filepath.Join(s.audioDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return "/static/audio/" + filename, nil
}

// CachedPath returns the path of an existing cached file for the key.
func (s *Service) CachedPath(cacheKey string) (string, bool) {
	path := filepath.Join(s.cacheDir, "tts_"+cacheKey+".mp3")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Generate returns the audio URL for the text, synthesizing and caching on a
// miss. The second return reports whether the result came from the cache.
func (s *Service) Generate(ctx context.Context, text, voiceID string) (string, bool, error) {
	if voiceID == "" {
		voiceID = s.voice
	}
	key := CacheKey(text, voiceID)
	url := "/static/audio/tts_cache/tts_" + key + ".mp3"

	if _, ok := s.CachedPath(key); ok {
		return url, true, nil
	}

	data, err := s.synth.Synthesize(ctx, text, voiceID, "mp3")
	if err != nil {
		return "", false, err
	}

	path := filepath.Join(s.cacheDir, "tts_"+key+".mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write cached audio: %w", err)
	}
	return url, false, nil
}

// ClearCache removes all cached TTS files and returns how many were deleted.
func (s *Service) ClearCache() (int, error) {
	entries, err := os.ReadDir(s.cacheDir)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "tts_") && strings.HasSuffix(name, ".mp3") {
			if err := os.Remove(filepath.Join(s.cacheDir, name)); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}
