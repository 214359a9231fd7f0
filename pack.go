package slycat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// docExtensions mark documentation-like files for the traversal sort.
var docExtensions = map[string]bool{
	".md": true, ".markdown": true, ".rst": true, ".txt": true, ".adoc": true,
}

// Pack archives the given files and directories into a single document
// at output. Directories are walked depth-first in a stable order:
// README files sort first, then other documentation, then everything
// else case-insensitively. Non-text files are skipped, per-file read
// failures are reported and skipped, and the run continues; preflight
// failures abort before anything is written.
func Pack(output string, inputs []string, opts ...PackOption) (*Summary, error) {
	cfg := packConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if _, err := os.Stat(output); err == nil {
		if !cfg.force {
			return nil, fmt.Errorf("%w: %q (use force to overwrite)", ErrOutputExists, output)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat output %q: %w", output, err)
	}
	if err := checkNameCollisions(inputs); err != nil {
		return nil, err
	}

	doc, err := createDocument(output)
	if err != nil {
		return nil, err
	}
	w := NewWriter(doc)
	p := &packer{cfg: cfg, w: w, sum: &Summary{}}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			cfg.log.Warn().Str("path", in).Msg("input does not exist, skipping")
			continue
		}
		name := filepath.Base(filepath.Clean(in))
		if matchAny(cfg.excludes, name) {
			p.sum.Excluded++
			cfg.log.Info().Str("path", in).Msg("excluded")
			continue
		}
		if info.IsDir() {
			// The directory's own name becomes the leading path
			// segment of every record beneath it.
			err = p.walkDir(in, filepath.Dir(filepath.Clean(in)), false)
		} else {
			err = p.addFile(in, filepath.Dir(in))
		}
		if err != nil {
			doc.Close()
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		doc.Close()
		return nil, err
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}
	return p.sum, nil
}

// checkNameCollisions rejects input lists where a file and a directory
// share a basename, which would make record paths ambiguous.
func checkNameCollisions(inputs []string) error {
	fileNames := make(map[string]bool)
	dirNames := make(map[string]bool)
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			continue
		}
		name := filepath.Base(filepath.Clean(in))
		if info.IsDir() {
			dirNames[name] = true
		} else {
			fileNames[name] = true
		}
	}
	for name := range fileNames {
		if dirNames[name] {
			return fmt.Errorf("%w: %q", ErrPathCollision, name)
		}
	}
	return nil
}

type packer struct {
	cfg packConfig
	w   *Writer
	sum *Summary
}

// walkDir visits dir depth-first in traversal order. root is the path
// record paths are made relative to. included marks the subtree of a
// directory whose name matched an include pattern; the include filter
// is lifted for everything beneath it (the exclude filter still
// applies).
func (p *packer) walkDir(dir, root string, included bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.cfg.log.Warn().Str("path", dir).Err(err).Msg("cannot read directory")
		p.sum.Unreadable++
		return nil
	}
	sortEntries(entries)
	for _, e := range entries {
		name := e.Name()
		full := filepath.Join(dir, name)
		if matchAny(p.cfg.excludes, name) {
			p.sum.Excluded++
			p.cfg.log.Info().Str("path", full).Msg("excluded")
			continue
		}
		if e.IsDir() {
			sub := included || matchAny(p.cfg.includes, name)
			if err := p.walkDir(full, root, sub); err != nil {
				return err
			}
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		if !included && len(p.cfg.includes) > 0 && !matchAny(p.cfg.includes, name) {
			continue
		}
		if err := p.addFile(full, root); err != nil {
			return err
		}
	}
	return nil
}

// addFile reads, classifies, decodes, and appends one file. Local
// failures (unreadable, non-text, oversized) are counted and skipped;
// only a document write error propagates.
func (p *packer) addFile(full, root string) error {
	rel, err := filepath.Rel(root, full)
	if err != nil {
		rel = filepath.Base(full)
	}
	info, err := os.Stat(full)
	if err != nil {
		p.cfg.log.Warn().Str("path", full).Err(err).Msg("cannot stat file")
		p.sum.Unreadable++
		return nil
	}
	if info.Size() > p.cfg.limits.MaxFileSize {
		p.cfg.log.Warn().Str("path", full).Int64("size", info.Size()).Msg("file exceeds size limit, skipping")
		p.sum.Unreadable++
		return nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		p.cfg.log.Warn().Str("path", full).Err(err).Msg("cannot read file")
		p.sum.Unreadable++
		return nil
	}
	detected, ok := classifyText(full, data)
	if !ok {
		p.cfg.log.Info().Str("path", full).Msg("skipped non-text file")
		p.sum.SkippedNonText++
		return nil
	}
	body, err := decodeBytes(data, detected)
	if err != nil {
		p.cfg.log.Warn().Str("path", full).Err(err).Msg("no encoding decodes file, skipping")
		p.sum.Unreadable++
		return nil
	}
	rec := NewRecord(rel, body)
	if err := p.w.WriteRecord(rec); err != nil {
		if errors.Is(err, ErrInvalidPath) {
			p.cfg.log.Warn().Str("path", full).Err(err).Msg("path not expressible in archive, skipping")
			p.sum.Unreadable++
			return nil
		}
		return err
	}
	p.cfg.log.Info().Str("path", rec.Path).Msg("adding")
	p.sum.Processed++
	return nil
}

// sortEntries orders a directory's entries: README files first, then
// other documentation, then everything else, each band sorted
// case-insensitively. The order is cosmetic for readers of the archive
// but must stay stable so repeated packs are byte-identical.
func sortEntries(entries []os.DirEntry) {
	band := func(e os.DirEntry) int {
		if e.IsDir() {
			return 2
		}
		name := strings.ToLower(e.Name())
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if stem == "readme" && (ext == "" || docExtensions[ext]) {
			return 0
		}
		if docExtensions[ext] {
			return 1
		}
		return 2
	}
	sort.SliceStable(entries, func(i, j int) bool {
		bi, bj := band(entries[i]), band(entries[j])
		if bi != bj {
			return bi < bj
		}
		ni, nj := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if ni != nj {
			return ni < nj
		}
		return entries[i].Name() < entries[j].Name()
	})
}

// matchAny reports whether name matches any shell glob pattern.
// Patterns that fail to compile match nothing.
func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}
