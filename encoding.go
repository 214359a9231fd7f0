package slycat

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// binaryExtensions lists extensions never worth sniffing: images, audio,
// video, archives, compiled objects.
var binaryExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tiff": true,
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true,
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
	".exe": true, ".dll": true, ".so": true, ".o": true, ".pyc": true,
}

const (
	// sniffLen bounds the prefix inspected for the text/binary decision.
	sniffLen = 1024
	// confidenceFloor is the minimum chardet confidence (0-100) to
	// accept a file as text.
	confidenceFloor = 90
)

// classifyText decides whether data is text. On success it also returns
// the statistically detected charset name, which becomes the first decode
// candidate ("" when the sniff was empty).
func classifyText(path string, data []byte) (detected string, ok bool) {
	if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return "", false
	}
	sniff := data
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	if len(sniff) == 0 {
		return "", true
	}
	ascii := true
	for _, b := range sniff {
		if b == 0x00 {
			return "", false
		}
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return "", false
		}
		if b >= 0x80 {
			ascii = false
		}
	}
	// Pure ASCII is text by construction; the detector only arbitrates
	// when high bytes leave the encoding in question.
	if ascii {
		return "", true
	}
	res, err := chardet.NewTextDetector().DetectBest(sniff)
	if err != nil || res.Charset == "" || res.Charset == "binary" {
		return "", false
	}
	if res.Confidence < confidenceFloor {
		return "", false
	}
	return res.Charset, true
}

// decodeCandidate is one attempt in the decode cascade: a charset name
// and a pure decode function that either yields text or fails.
type decodeCandidate struct {
	name   string
	decode func([]byte) (string, error)
}

// decodeCandidates builds the cascade: the detected charset first, then
// UTF-8, ASCII, and Latin-1. Latin-1 accepts every byte value, so the
// cascade as a whole cannot fail for text-classified input.
func decodeCandidates(detected string) []decodeCandidate {
	var out []decodeCandidate
	if detected != "" {
		if c, ok := charsetCandidate(detected); ok {
			out = append(out, c)
		}
	}
	out = append(out,
		decodeCandidate{name: "utf-8", decode: decodeUTF8},
		decodeCandidate{name: "ascii", decode: decodeASCII},
		decodeCandidate{name: "latin-1", decode: decodeLatin1},
	)
	return out
}

// decodeBytes runs the cascade and returns the first successful decode.
// Exhausting every candidate signals a defect in the cascade itself, not
// a legitimate input condition.
func decodeBytes(data []byte, detected string) (string, error) {
	for _, c := range decodeCandidates(detected) {
		if s, err := c.decode(data); err == nil {
			return s, nil
		}
	}
	return "", ErrUnreadableEncoding
}

// charsetCandidate resolves an IANA charset name reported by the
// detector. Unresolvable names drop out of the cascade rather than
// failing it.
func charsetCandidate(name string) (decodeCandidate, bool) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return decodeCandidate{}, false
	}
	return decodeCandidate{
		name: name,
		decode: func(data []byte) (string, error) {
			out, err := enc.NewDecoder().Bytes(data)
			if err != nil {
				return "", err
			}
			// x/text decoders substitute U+FFFD instead of failing on
			// unmappable input; a substitution the input did not carry
			// means this candidate cannot represent the file.
			if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(data, utf8.RuneError) {
				return "", ErrUnreadableEncoding
			}
			return string(out), nil
		},
	}, true
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrUnreadableEncoding
	}
	return string(data), nil
}

func decodeASCII(data []byte) (string, error) {
	for _, b := range data {
		if b >= 0x80 {
			return "", ErrUnreadableEncoding
		}
	}
	return string(data), nil
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
