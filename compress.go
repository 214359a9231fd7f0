package slycat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec wrapped around an archive document. The
// textual grammar inside is identical for every codec.
type Compression uint16

const (
	CompNone Compression = 0
	CompGzip Compression = 1
	CompZSTD Compression = 2
	CompLZ4  Compression = 3
	CompBR   Compression = 4
)

// compressionForPath picks the codec from the document's extension.
func compressionForPath(p string) Compression {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".gz", ".gzip":
		return CompGzip
	case ".zst":
		return CompZSTD
	case ".lz4":
		return CompLZ4
	case ".br":
		return CompBR
	default:
		return CompNone
	}
}

// openDocument opens an archive document for reading, transparently
// decompressing by extension. The returned reader fails with
// ErrLimitExceeded once more than limits.MaxDocumentSize decompressed
// bytes come out, which bounds decompression bombs.
func openDocument(p string, limits Limits) (io.ReadCloser, error) {
	limits = limits.withDefaults()
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	var r io.Reader
	var closers []io.Closer
	switch compressionForPath(p) {
	case CompGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = zr
		closers = append(closers, zr)
	case CompZSTD:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = zr.IOReadCloser()
		closers = append(closers, r.(io.Closer))
	case CompLZ4:
		r = lz4.NewReader(f)
	case CompBR:
		r = brotli.NewReader(f)
	default:
		r = f
	}
	closers = append(closers, f)
	return &docReader{r: &boundedReader{r: r, remain: limits.MaxDocumentSize}, closers: closers}, nil
}

// createDocument opens an archive document for writing, compressing by
// extension. Closing flushes the codec before the file.
func createDocument(p string) (io.WriteCloser, error) {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	switch compressionForPath(p) {
	case CompGzip:
		return &docWriter{w: gzip.NewWriter(f), file: f}, nil
	case CompZSTD:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &docWriter{w: zw, file: f}, nil
	case CompLZ4:
		return &docWriter{w: lz4.NewWriter(f), file: f}, nil
	case CompBR:
		return &docWriter{w: brotli.NewWriter(f), file: f}, nil
	default:
		return f, nil
	}
}

type docReader struct {
	r       io.Reader
	closers []io.Closer
}

func (d *docReader) Read(p []byte) (int, error) { return d.r.Read(p) }

func (d *docReader) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type docWriter struct {
	w    io.WriteCloser
	file *os.File
}

func (d *docWriter) Write(p []byte) (int, error) { return d.w.Write(p) }

func (d *docWriter) Close() error {
	err := d.w.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// boundedReader errors instead of silently truncating once the limit is
// crossed.
type boundedReader struct {
	r      io.Reader
	remain int64
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remain < 0 {
		return 0, fmt.Errorf("%w: document larger than allowed", ErrLimitExceeded)
	}
	if int64(len(p)) > b.remain+1 {
		p = p[:b.remain+1]
	}
	n, err := b.r.Read(p)
	b.remain -= int64(n)
	if b.remain < 0 {
		return n, fmt.Errorf("%w: document larger than allowed", ErrLimitExceeded)
	}
	return n, err
}
