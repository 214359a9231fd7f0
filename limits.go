package slycat

// Limits bounds resource use while reading archive documents. Zero fields
// take the defaults.
type Limits struct {
	// MaxDocumentSize caps the bytes read from one document after any
	// decompression. This is the decompression-bomb guard for .gz/.zst/
	// .lz4/.br inputs.
	MaxDocumentSize int64
	// MaxRecords caps records parsed per document.
	MaxRecords int
	// MaxRecordSize caps one record's body in bytes.
	MaxRecordSize int64
	// MaxFileSize caps a source file's size on the pack side; larger
	// files are reported unreadable and skipped.
	MaxFileSize int64
}

func defaultLimits() Limits {
	return Limits{
		MaxDocumentSize: 1 << 30,  // 1 GiB
		MaxRecords:      100_000,
		MaxRecordSize:   256 << 20, // 256 MiB
		MaxFileSize:     256 << 20,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxDocumentSize == 0 {
		l.MaxDocumentSize = d.MaxDocumentSize
	}
	if l.MaxRecords == 0 {
		l.MaxRecords = d.MaxRecords
	}
	if l.MaxRecordSize == 0 {
		l.MaxRecordSize = d.MaxRecordSize
	}
	if l.MaxFileSize == 0 {
		l.MaxFileSize = d.MaxFileSize
	}
	return l
}
