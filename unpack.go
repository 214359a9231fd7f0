package slycat

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Unpack reads one or more archive documents and reconstructs the file
// tree under dest, creating it if missing. Records from every document
// are pooled before merging: fragments of one file may be spread across
// documents, so grouping is global, not per document. A document with no
// records at all is reported and contributes nothing; an unreadable
// document aborts the run.
func Unpack(inputs []string, dest string, opts ...UnpackOption) (*Summary, error) {
	cfg := unpackConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}

	var records []RawRecord
	for _, in := range inputs {
		r, err := openDocument(in, cfg.limits)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", in, err)
		}
		recs, err := ParseDocument(r, cfg.limits)
		r.Close()
		if err != nil {
			if errors.Is(err, ErrMalformedArchive) {
				cfg.log.Warn().Str("path", in).Msg("no records found in document")
				continue
			}
			return nil, fmt.Errorf("parse %q: %w", in, err)
		}
		cfg.log.Info().Str("path", in).Int("records", len(recs)).Msg("parsed document")
		records = append(records, recs...)
	}

	files := Merge(records)
	written, failed := materializeTree(files, dest, cfg.log)
	return &Summary{
		Processed:  written,
		Unreadable: failed,
		Records:    len(records),
	}, nil
}
