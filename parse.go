package slycat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// parseHeader matches one line against the record header grammar:
// optional surrounding whitespace, the header marker, whitespace, the
// path wrapped in bold backtick decoration. The path itself cannot
// contain the delimiter.
func parseHeader(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, headerMarker) {
		return "", false
	}
	t = strings.TrimSpace(t[len(headerMarker):])
	const pre, suf = "**`", "`**"
	if len(t) < len(pre)+len(suf)+1 || !strings.HasPrefix(t, pre) || !strings.HasSuffix(t, suf) {
		return "", false
	}
	p := strings.TrimSpace(t[len(pre) : len(t)-len(suf)])
	if p == "" || strings.ContainsRune(p, pathDelim) {
		return "", false
	}
	return p, true
}

// parseFenceOpen matches a fence-open line and returns its tag. The tag
// abuts the fence token with no intervening space.
func parseFenceOpen(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, fenceToken) {
		return "", false
	}
	tag := t[len(fenceToken):]
	if strings.ContainsAny(tag, " \t`") {
		return "", false
	}
	return tag, true
}

func isFenceClose(line string) bool {
	return strings.TrimSpace(line) == fenceToken
}

// Scanner walks an archive document and yields records lazily in
// document order. It holds no state across documents; numbering and
// fragment overlap are the merger's concern.
type Scanner struct {
	sc      *bufio.Scanner
	limits  Limits
	pending *string
	rec     RawRecord
	count   int
	err     error
	done    bool
}

// NewScanner returns a Scanner over one document. Zero-valued limits
// fields take the defaults.
func NewScanner(r io.Reader, limits Limits) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16<<20)
	return &Scanner{sc: sc, limits: limits.withDefaults()}
}

// Scan advances to the next record. It returns false at end of document
// or on error; consult Err afterwards.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	for {
		line, ok := s.nextLine()
		if !ok {
			s.done = true
			return false
		}
		path, isHeader := parseHeader(line)
		if !isHeader {
			continue
		}
		s.count++
		if s.count > s.limits.MaxRecords {
			s.err = fmt.Errorf("%w: more than %d records", ErrLimitExceeded, s.limits.MaxRecords)
			return false
		}
		return s.scanBody(path)
	}
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() RawRecord {
	return s.rec
}

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}

// scanBody consumes the record body following a header line.
func (s *Scanner) scanBody(path string) bool {
	// Skip the blank separator after the header. A header abutting the
	// next header, or the end of the document, yields an empty body.
	var first string
	for {
		line, ok := s.nextLine()
		if !ok {
			s.rec = RawRecord{Path: path}
			return s.err == nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		first = line
		break
	}
	if _, ok := parseHeader(first); ok {
		s.pushBack(first)
		s.rec = RawRecord{Path: path}
		return true
	}
	// Markdown-family records are never written fenced, so for those
	// paths a fence-looking first line is content, not a fence opener.
	if !prosePath(path) {
		if tag, ok := parseFenceOpen(first); ok {
			return s.scanFenced(path, tag)
		}
	}
	return s.scanPlain(path, first)
}

// scanFenced captures everything up to the bare fence-close line. Header
// lookalikes inside a fence are content. A document truncated before the
// close runs to end of document.
func (s *Scanner) scanFenced(path, tag string) bool {
	var lines []string
	var size int64
	for {
		line, ok := s.nextLine()
		if !ok {
			break
		}
		if isFenceClose(line) {
			break
		}
		size += int64(len(line)) + 1
		if size > s.limits.MaxRecordSize {
			s.err = fmt.Errorf("%w: record %q body exceeds %d bytes", ErrLimitExceeded, path, s.limits.MaxRecordSize)
			return false
		}
		lines = append(lines, line)
	}
	if s.err != nil {
		return false
	}
	s.rec = RawRecord{Path: path, Tag: tag, Body: joinBody(lines)}
	return true
}

// scanPlain captures an unfenced body up to the next header line or end
// of document. A content line that happens to match the header grammar
// terminates the body and starts a new record; unfenced bodies cannot
// express such lines.
func (s *Scanner) scanPlain(path, first string) bool {
	lines := []string{first}
	size := int64(len(first)) + 1
	for {
		line, ok := s.nextLine()
		if !ok {
			break
		}
		if _, isHeader := parseHeader(line); isHeader {
			s.pushBack(line)
			break
		}
		size += int64(len(line)) + 1
		if size > s.limits.MaxRecordSize {
			s.err = fmt.Errorf("%w: record %q body exceeds %d bytes", ErrLimitExceeded, path, s.limits.MaxRecordSize)
			return false
		}
		lines = append(lines, line)
	}
	if s.err != nil {
		return false
	}
	// Trailing blank lines are the record separator, not content.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	s.rec = RawRecord{Path: path, Body: joinBody(lines)}
	return true
}

func (s *Scanner) nextLine() (string, bool) {
	if s.pending != nil {
		line := *s.pending
		s.pending = nil
		return line, true
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			s.err = err
		}
		return "", false
	}
	return s.sc.Text(), true
}

func (s *Scanner) pushBack(line string) {
	s.pending = &line
}

func joinBody(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// ParseDocument reads a whole document and returns its records in
// document order. A document with no records at all is malformed.
func ParseDocument(r io.Reader, limits Limits) ([]RawRecord, error) {
	s := NewScanner(r, limits)
	var out []RawRecord
	for s.Scan() {
		out = append(out, s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrMalformedArchive
	}
	return out, nil
}
