package slycat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// materializeTree writes merged files under destRoot, creating
// intermediate directories as needed. Content is trimmed of surrounding
// whitespace once, on the whole merged text. Each file lands via a
// same-directory temp file and rename, so a failure never leaves a torn
// file; per-file failures are reported and the batch continues.
func materializeTree(files []MergedFile, destRoot string, log zerolog.Logger) (written, failed int) {
	for _, f := range files {
		dest, err := safeJoin(destRoot, f.Path)
		if err != nil {
			log.Warn().Str("path", f.Path).Err(err).Msg("skipping file outside destination")
			failed++
			continue
		}
		if err := writeFileAtomic(dest, strings.TrimSpace(f.Content)); err != nil {
			log.Warn().Str("path", dest).Err(err).Msg("write failed")
			failed++
			continue
		}
		log.Info().Str("path", dest).Msg("created file")
		written++
	}
	return written, failed
}

// safeJoin joins a sanitized relative path onto root, rejecting anything
// that would land outside it.
func safeJoin(root, rel string) (string, error) {
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes destination", ErrInvalidPath, rel)
	}
	if vol := filepath.VolumeName(rel); vol != "" {
		return "", fmt.Errorf("%w: %q carries a volume name", ErrInvalidPath, rel)
	}
	return filepath.Join(root, rel), nil
}

// writeFileAtomic stages content in a temp file beside dest and renames
// it into place.
func writeFileAtomic(dest, content string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".slycat-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
