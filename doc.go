// Package slycat packs a tree of text files into a single markdown-flavored
// archive document and unpacks such documents back into files.
//
// The archive is plain text and survives any channel that carries text: a
// chat window, an email body, a gist. Each file becomes one record:
//
//	### **`src/main.py`**
//
//	```python
//	print(1)
//	```
//
// A record is a header line naming the file's relative path (backtick
// delimited, bold decorated), a blank line, and the file body. Bodies are
// wrapped in a triple-backtick fence tagged with a language label derived
// from the file extension; markdown-family files are emitted unfenced so
// the archive stays readable as a document.
//
// # Fragments
//
// A path carrying a trailing numeric suffix, such as "notes.txt.1", marks
// the record as the N-th fragment of "notes.txt". Unpacking groups records
// by that base path, orders fragments by suffix (no suffix sorts first),
// and joins adjacent fragments by eliding the longest run of text that is
// both a suffix of the accumulated content and a prefix of the next
// fragment. A file archived once in full and again as a continuation that
// repeats some trailing context therefore reassembles without duplication.
// Fragments of one file may be spread across several input documents.
//
// # Basic usage
//
// To pack a directory:
//
//	sum, err := slycat.Pack("archive.md", []string{"./project"}, slycat.WithForce(true))
//
// To unpack one or more documents:
//
//	sum, err := slycat.Unpack([]string{"archive.md"}, "./restored")
//
// # Compression
//
// An output path ending in .gz, .zst, .lz4 or .br is compressed with the
// matching codec; Unpack detects the same extensions. The payload inside
// is the identical textual grammar.
//
// # Limitations
//
// The format is text only: files with binary extensions, or whose bytes
// fail the text sniff, are skipped. A path cannot contain a backtick. A
// line inside unfenced content that itself matches the header grammar
// starts a new record; this ambiguity is inherent to unfenced bodies and
// is deliberately not special-cased. Markdown-family records are always
// unfenced, on both sides: the parser never treats a fence-looking line
// in them as a fence opener, so a README that begins with a code block
// survives intact.
package slycat
