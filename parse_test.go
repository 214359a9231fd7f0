package slycat

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		line string
		path string
		ok   bool
	}{
		{"### **`main.py`**", "main.py", true},
		{"  ### **`a/b c.txt`**  ", "a/b c.txt", true},
		{"###**`tight.go`**", "tight.go", true},
		{"### **``**", "", false},
		{"### `no-bold.py`", "", false},
		{"#### **`h4.py`**", "", false},
		{"## **`h2.py`**", "", false},
		{"plain text line", "", false},
		{"### **`bad`tick`**", "", false},
	}
	for _, c := range cases {
		path, ok := parseHeader(c.line)
		if ok != c.ok || path != c.path {
			t.Errorf("parseHeader(%q) = (%q, %v), want (%q, %v)", c.line, path, ok, c.path, c.ok)
		}
	}
}

func TestParseFenceOpen(t *testing.T) {
	cases := []struct {
		line string
		tag  string
		ok   bool
	}{
		{"```python", "python", true},
		{"```", "", true},
		{"``` python", "", false},
		{"`` not a fence", "", false},
		{"text", "", false},
	}
	for _, c := range cases {
		tag, ok := parseFenceOpen(c.line)
		if ok != c.ok || tag != c.tag {
			t.Errorf("parseFenceOpen(%q) = (%q, %v), want (%q, %v)", c.line, tag, ok, c.tag, c.ok)
		}
	}
}

func TestScannerFencedRecord(t *testing.T) {
	doc := "### **`main.py`**\n\n```python\nprint(1)\n```\n\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	want := []RawRecord{{Path: "main.py", Tag: "python", Body: "print(1)\n"}}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("got %#v, want %#v", recs, want)
	}
}

func TestScannerPlainBodyEndsAtNextHeader(t *testing.T) {
	doc := "### **`README.md`**\n\nHello\n\n### **`other.md`**\n\nWorld\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	want := []RawRecord{
		{Path: "README.md", Body: "Hello\n"},
		{Path: "other.md", Body: "World\n"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("got %#v, want %#v", recs, want)
	}
}

// A line inside unfenced content that matches the header grammar starts a
// new record. This is the documented grammar ambiguity of plain bodies,
// preserved rather than special-cased.
func TestScannerPlainBodyHeaderAmbiguity(t *testing.T) {
	doc := "### **`notes.md`**\n\nbefore\n### **`looks-like-a-path`**\nafter\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %#v", len(recs), recs)
	}
	if recs[0].Body != "before\n" {
		t.Errorf("first body = %q, want %q", recs[0].Body, "before\n")
	}
	if recs[1].Path != "looks-like-a-path" || recs[1].Body != "after\n" {
		t.Errorf("second record = %#v", recs[1])
	}
}

// A markdown body that opens with a code block must not reparse as a
// fenced record, which would silently drop everything after the first
// fence-close line.
func TestScannerProseBodyOpeningFenceIsContent(t *testing.T) {
	body := "```go\npackage main\n```\n\nThis prose follows the fence.\n"
	doc := "### **`README.md`**\n\n" + body + "\n### **`main.py`**\n\n```python\nprint(1)\n```\n\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	want := []RawRecord{
		{Path: "README.md", Body: body},
		{Path: "main.py", Tag: "python", Body: "print(1)\n"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("got %#v, want %#v", recs, want)
	}
}

func TestScannerHeaderInsideFenceIsContent(t *testing.T) {
	doc := "### **`gen.sh`**\n\n```bash\necho '### **`fake.md`**'\n```\n\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if !strings.Contains(recs[0].Body, "fake.md") {
		t.Fatalf("fenced body lost content: %q", recs[0].Body)
	}
}

func TestScannerUnterminatedFenceRunsToEnd(t *testing.T) {
	doc := "### **`x.go`**\n\n```go\npackage x\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Body != "package x\n" {
		t.Fatalf("body = %q", recs[0].Body)
	}
}

func TestScannerAdjacentHeadersYieldEmptyBody(t *testing.T) {
	doc := "### **`a.txt`**\n### **`b.txt`**\n\ncontent\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	want := []RawRecord{
		{Path: "a.txt"},
		{Path: "b.txt", Body: "content\n"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("got %#v, want %#v", recs, want)
	}
}

func TestScannerIgnoresProseBetweenRecords(t *testing.T) {
	doc := "intro chatter\n\n### **`a.txt`**\n\nA\n\ntrailing chatter without header\n"
	recs, err := ParseDocument(strings.NewReader(doc), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Path != "a.txt" {
		t.Fatalf("got %#v", recs)
	}
	// Chatter after the record is part of its plain body; surrounding
	// whitespace is the materializer's problem.
	if !strings.HasPrefix(recs[0].Body, "A\n") {
		t.Fatalf("body = %q", recs[0].Body)
	}
}

func TestParseDocumentNoRecords(t *testing.T) {
	_, err := ParseDocument(strings.NewReader("just some text\nno records here\n"), Limits{})
	if !errors.Is(err, ErrMalformedArchive) {
		t.Fatalf("err = %v, want ErrMalformedArchive", err)
	}
}

func TestScannerMaxRecords(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("### **`f.txt`**\n\nx\n\n")
	}
	_, err := ParseDocument(strings.NewReader(b.String()), Limits{MaxRecords: 3})
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
}

func TestScannerMaxRecordSize(t *testing.T) {
	doc := "### **`f.txt`**\n\n```\n" + strings.Repeat("a", 100) + "\n```\n"
	_, err := ParseDocument(strings.NewReader(doc), Limits{MaxRecordSize: 10})
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
}

func TestScannerIsLazy(t *testing.T) {
	doc := "### **`a.txt`**\n\nA\n\n### **`b.txt`**\n\nB\n"
	s := NewScanner(strings.NewReader(doc), Limits{})
	if !s.Scan() {
		t.Fatal("first Scan failed")
	}
	if s.Record().Path != "a.txt" {
		t.Fatalf("first record = %#v", s.Record())
	}
	if !s.Scan() {
		t.Fatal("second Scan failed")
	}
	if s.Record().Path != "b.txt" {
		t.Fatalf("second record = %#v", s.Record())
	}
	if s.Scan() {
		t.Fatal("expected end of document")
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
}
