package slycat

const (
	// headerMarker opens a record header line.
	headerMarker = "###"

	// pathDelim wraps the path inside a record header. A path containing
	// this character cannot be expressed by the format.
	pathDelim = '`'

	// fenceToken opens and closes a fenced record body. The open form
	// carries the language tag immediately after it, no space.
	fenceToken = "```"
)

// Record is one encode-side unit of the archive: a file's relative path,
// its decoded content, and the fence decision derived from its extension.
type Record struct {
	// Path is forward-slash normalized and relative to the archive root.
	Path string
	// Tag is the language label for the fence; empty for unknown
	// extensions.
	Tag string
	// Body is the file's decoded text, unmodified.
	Body string
	// Fenced is false for markdown-family prose, true otherwise.
	Fenced bool
}

// RawRecord is the decode-side counterpart, captured verbatim from a
// document before fragment grouping. Several RawRecords may claim the
// same logical file, across one or many documents.
type RawRecord struct {
	// Path is the header path as written, numeric fragment suffix and
	// all.
	Path string
	// Tag is the fence tag if the body was fenced, else empty.
	Tag string
	// Body is the captured content between the header and the record's
	// end.
	Body string
}

// MergedFile is the result of grouping and overlap-merging all fragments
// of one logical file.
type MergedFile struct {
	// Path is the sanitized, suffix-stripped relative output path.
	Path string
	// Content is the merged text. Merging never drops non-overlapping
	// text.
	Content string
}

// Summary reports what a pack or unpack run did.
type Summary struct {
	// Processed counts files written to the archive (pack) or to the
	// tree (unpack).
	Processed int
	// SkippedNonText counts inputs rejected by the text sniff.
	SkippedNonText int
	// Excluded counts paths dropped by exclude patterns.
	Excluded int
	// Unreadable counts text-classified files no candidate encoding
	// could decode, and files lost to per-file I/O errors.
	Unreadable int
	// Records counts raw records parsed across all input documents
	// (unpack only).
	Records int
}
