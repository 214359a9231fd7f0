package slycat

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// NewRecord builds the encode-side record for a file. rel is the path
// relative to the archive root, in either native or slash form; body is
// the file's decoded text.
func NewRecord(rel, body string) Record {
	p := path.Clean(filepath.ToSlash(rel))
	tag := TagForExtension(strings.ToLower(path.Ext(p)))
	return Record{
		Path:   p,
		Tag:    tag,
		Body:   body,
		Fenced: !proseTags[tag],
	}
}

// Writer serializes records into an archive document.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer emitting to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRecord appends one record. The header delimiter cannot appear in
// the path, so such paths are rejected rather than emitted unparseable.
func (w *Writer) WriteRecord(rec Record) error {
	if rec.Path == "" || rec.Path == "." {
		return fmt.Errorf("%w: empty record path", ErrInvalidPath)
	}
	if strings.ContainsRune(rec.Path, pathDelim) {
		return fmt.Errorf("%w: %q contains the header delimiter", ErrInvalidPath, rec.Path)
	}
	if _, err := fmt.Fprintf(w.w, "%s **%c%s%c**\n\n", headerMarker, pathDelim, rec.Path, pathDelim); err != nil {
		return err
	}
	body := rec.Body
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if rec.Fenced {
		if _, err := fmt.Fprintf(w.w, "%s%s\n", fenceToken, rec.Tag); err != nil {
			return err
		}
		if _, err := w.w.WriteString(body); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w.w, "%s\n\n", fenceToken); err != nil {
			return err
		}
		return nil
	}
	if _, err := w.w.WriteString(body); err != nil {
		return err
	}
	_, err := w.w.WriteString("\n")
	return err
}

// Flush drains the buffer to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
