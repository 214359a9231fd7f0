package slycat

import (
	"path"
	"strings"
)

// extToTag maps file extensions to fence language tags. The table is
// fixed at build time and queried in both directions.
var extToTag = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".html": "html",
	".css":  "css",
	".sh":   "bash",
	".java": "java",
	".cpp":  "c++",
	".c":    "c",
	".json": "json",
	".yml":  "yaml",
	".yaml": "yaml",
	".toml": "toml",
	".xml":  "xml",
	".rb":   "ruby",
	".rs":   "rust",
	".go":   "go",
	".md":   "md",
}

// tagToExt is the reverse lookup. Where several extensions share a tag
// the canonical extension wins.
var tagToExt = func() map[string]string {
	canonical := map[string]string{"yaml": ".yaml"}
	m := make(map[string]string, len(extToTag))
	for ext, tag := range extToTag {
		if c, ok := canonical[tag]; ok {
			m[tag] = c
			continue
		}
		m[tag] = ext
	}
	return m
}()

// proseTags name content that reads as a document on its own; such
// bodies are emitted without a fence.
var proseTags = map[string]bool{
	"md": true,
}

// TagForExtension returns the fence tag for a file extension (including
// the leading dot), or "" when the extension is unknown.
func TagForExtension(ext string) string {
	return extToTag[ext]
}

// ExtensionForTag returns the canonical extension for a fence tag, or ""
// when the tag is unknown.
func ExtensionForTag(tag string) string {
	return tagToExt[tag]
}

// prosePath reports whether records for p carry an unfenced body. The
// writer and the parser must agree on this, or a body whose first line
// looks like a fence opener would reparse fenced and lose everything
// after the first fence-close line.
func prosePath(p string) bool {
	return proseTags[TagForExtension(strings.ToLower(path.Ext(p)))]
}
