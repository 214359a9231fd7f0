package slycat

import (
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// splitFragment splits a record path into its logical file key and
// fragment order. A trailing all-digit dotted suffix is the fragment
// number; its absence means order 0, so a full file sorts ahead of its
// continuations.
func splitFragment(p string) (string, int) {
	i := strings.LastIndexByte(p, '.')
	if i <= 0 || i == len(p)-1 {
		return p, 0
	}
	suffix := p[i+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return p, 0
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return p, 0
	}
	return p[:i], n
}

// overlap returns the greatest k (in bytes) such that the last k bytes
// of a equal the first k bytes of b, with the cut landing on a rune
// boundary so the overlap is a run of whole characters. Candidates are
// tried longest first, so ties always go to the longest overlap; 0
// means plain concatenation.
func overlap(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for k := max; k > 0; k-- {
		if k < len(b) && !utf8.RuneStart(b[k]) {
			continue
		}
		if strings.HasSuffix(a, b[:k]) {
			return k
		}
	}
	return 0
}

type fragment struct {
	order int
	body  string
}

// Merge groups records by logical file key, orders each group's
// fragments by numeric key (stable on ties, so document order decides),
// and reduces left to right with overlap elision. Output files appear in
// first-seen key order.
func Merge(records []RawRecord) []MergedFile {
	groups := make(map[string][]fragment)
	var keys []string
	for _, rec := range records {
		key, order := splitFragment(rec.Path)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], fragment{order: order, body: rec.Body})
	}
	out := make([]MergedFile, 0, len(keys))
	for _, key := range keys {
		frags := groups[key]
		sort.SliceStable(frags, func(i, j int) bool { return frags[i].order < frags[j].order })
		content := frags[0].body
		for _, f := range frags[1:] {
			k := overlap(content, f.body)
			content += f.body[k:]
		}
		out = append(out, MergedFile{Path: sanitizePath(key), Content: content})
	}
	return out
}

// sanitizePath turns a logical file key into a safe relative path: slash
// form, cleaned, no absolute or escaping segments, and characters a
// filesystem rejects replaced with an underscore. The mapping is pure,
// so one logical key always lands on one output path.
func sanitizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	var b strings.Builder
	for _, r := range p {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		case strings.ContainsRune(`<>:"|?*`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	clean := path.Clean(b.String())
	clean = strings.TrimPrefix(clean, "/")
	for strings.HasPrefix(clean, "../") {
		clean = clean[3:]
	}
	if clean == ".." || clean == "." || clean == "" {
		return "_"
	}
	return clean
}
