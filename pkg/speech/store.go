package speech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shravanisawant28/PDF/pkg/logging"
)

// RetentionPolicy bounds how many generated audio files stay on disk.
// Apply runs after a new file is written; justWritten names the file the
// current request produced and must never be deleted.
type RetentionPolicy interface {
	Apply(dir, justWritten string) error
}

// KeepLatest retains the N most recently modified .mp3 files.
type KeepLatest struct {
	N int
}

// Apply deletes the oldest .mp3 files beyond the retention bound.
// Concurrent cleanups may race over the same victims, so a missing file is
// treated as already deleted.
func (k KeepLatest) Apply(dir, justWritten string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list audio directory: %w", err)
	}

	type candidate struct {
		name    string
		modTime int64
	}
	var files []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{name: entry.Name(), modTime: info.ModTime().UnixNano()})
	}

	if len(files) <= k.N {
		return nil
	}

	// Newest first; survivors are the first N plus the just-written file.
	sort.Slice(files, func(i, j int) bool { return files[i].modTime > files[j].modTime })

	for _, f := range files[k.N:] {
		if f.name == justWritten {
			continue
		}
		if err := os.Remove(filepath.Join(dir, f.name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to evict %s: %w", f.name, err)
		}
	}
	return nil
}

// Store writes synthesized audio into the audio directory and applies the
// retention policy. It is the only component that touches that directory.
type Store struct {
	dir        string
	publicPath string
	policy     RetentionPolicy
	synth      Synthesizer
	logger     zerolog.Logger
}

// NewStore creates an audio store rooted at dir, served under publicPath.
func NewStore(dir, publicPath string, policy RetentionPolicy, synth Synthesizer) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", dir, err)
	}
	return &Store{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		policy:     policy,
		synth:      synth,
		logger:     logging.GetLogger("speech"),
	}, nil
}

// Save synthesizes the text and persists it under a unique filename,
// returning the public URL. Any failure degrades to an empty URL: the
// caller still serves the extracted text without audio.
func (s *Store) Save(ctx context.Context, text, localeCode string) string {
	filename := fmt.Sprintf("speech_%s.mp3", strings.ReplaceAll(uuid.NewString(), "-", ""))

	audio, err := s.synth.Synthesize(ctx, text, localeCode)
	if err != nil {
		s.logger.Error().Err(err).Str("locale", localeCode).Msg("TTS error")
		return ""
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, audio, 0644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to write audio file")
		return ""
	}

	if err := s.policy.Apply(s.dir, filename); err != nil {
		// Retention problems never fail the request.
		s.logger.Warn().Err(err).Msg("Audio retention cleanup failed")
	}

	return s.publicPath + "/" + filename
}
