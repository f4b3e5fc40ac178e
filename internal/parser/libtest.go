package parser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// Line grammar of a captured libtest run:
//
//	running N tests
//	test [category] path ... status
//	failures:
//	result: ok|FAILED. X passed; Y failed; Z ignored
var (
	bannerRegex = regexp.MustCompile(`^running \d+ tests$`)
	resultRegex = regexp.MustCompile(`^result: (\w+)\. (\d+) passed; (\d+) failed; (\d+) ignored$`)
	entryRegex  = regexp.MustCompile(`^test \[([\w\-]+)\] ([\w\-/.:]+) \.\.\. (\w*)$`)
)

const (
	failuresMarker = "failures:"
	failedTrailer  = "FAILED"
)

// Chunk is one element of a category's entry list. Header chunks hold a
// single entry line; the others hold the free text between entry lines.
type Chunk struct {
	Text   string
	Header bool
}

// Category is the parsed content of one "running N tests" block.
type Category struct {
	Entries []models.TestEntry
	Result  models.ResultSummary
}

// Name returns the category tag shared by the entries, or "" if there are none.
func (c Category) Name() string {
	if len(c.Entries) == 0 {
		return ""
	}
	return c.Entries[0].Category
}

// LibtestParser parses text logs captured from libtest-style test runs.
type LibtestParser struct{}

// Parse reads and parses a log file. The path "-" reads standard input.
func (p *LibtestParser) Parse(path string) ([]Category, error) {
	text, err := ReadLog(path)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text), nil
}

// ParseBytes parses a log held in memory.
func (p *LibtestParser) ParseBytes(data []byte) []Category {
	return p.ParseText(string(data))
}

// ParseText runs the category and entry splitters over the whole log.
func (p *LibtestParser) ParseText(text string) []Category {
	segments := SplitCategories(text)
	categories := make([]Category, 0, len(segments))
	for _, segment := range segments {
		chunks, result := SplitEntries(segment)
		categories = append(categories, Category{
			Entries: ParseEntries(chunks),
			Result:  result,
		})
	}
	return categories
}

// ReadLog reads the whole log into memory.
func ReadLog(path string) (string, error) {
	if path == "-" {
		return Read(os.Stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read reads everything from r; name labels errors.
func Read(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// SplitCategories splits the log on banner lines. The banners are dropped;
// the newlines around them stay with the neighbouring segments. A log with
// no banner is returned as a single segment.
func SplitCategories(text string) []string {
	var segments []string
	prev := 0
	for _, l := range scanLines(text) {
		if bannerRegex.MatchString(l.in(text)) {
			segments = append(segments, text[prev:l.start])
			prev = l.end
		}
	}
	return append(segments, text[prev:])
}

// SplitEntries strips the result line and the failures listing from a
// category segment and splits what remains on entry lines.
func SplitEntries(segment string) ([]Chunk, models.ResultSummary) {
	body, result := cutResult(segment)
	body = cutFailures(body)

	var chunks []Chunk
	prev := 0
	for _, l := range scanLines(body) {
		if entryRegex.MatchString(l.in(body)) {
			chunks = append(chunks,
				Chunk{Text: body[prev:l.start]},
				Chunk{Text: l.in(body), Header: true})
			prev = l.end
		}
	}
	return append(chunks, Chunk{Text: body[prev:]}), result
}

// cutResult finds the last result line and returns the text before it.
func cutResult(segment string) (string, models.ResultSummary) {
	var result models.ResultSummary
	cut := -1
	for _, l := range scanLines(segment) {
		m := resultRegex.FindStringSubmatch(l.in(segment))
		if m == nil {
			continue
		}
		cut = l.start
		result = models.ResultSummary{
			Declared: true,
			Status:   m[1],
			Passed:   atoi(m[2]),
			Failed:   atoi(m[3]),
			Ignored:  atoi(m[4]),
		}
	}
	if cut < 0 {
		return segment, models.ResultSummary{}
	}
	return segment[:cut], result
}

// cutFailures drops the last "failures:" line and everything after it.
func cutFailures(body string) string {
	cut := -1
	for _, l := range scanLines(body) {
		if l.in(body) == failuresMarker {
			cut = l.start
		}
	}
	if cut < 0 {
		return body
	}
	return body[:cut]
}

// ParseEntries turns an entry list into test entries. An entry line with an
// empty status whose output ends in a lone FAILED line is recorded as failed,
// with that trailing line removed from the output.
func ParseEntries(chunks []Chunk) []models.TestEntry {
	var entries []models.TestEntry
	for i := 0; i < len(chunks); i++ {
		if !chunks[i].Header {
			continue
		}
		m := entryRegex.FindStringSubmatch(chunks[i].Text)
		if m == nil {
			continue
		}
		entry := models.TestEntry{
			Category: m[1],
			Path:     m[2],
			Status:   models.Status(m[3]),
		}
		if i+1 < len(chunks) && !chunks[i+1].Header {
			entry.Output = chunks[i+1].Text
			i++
		}
		if entry.Status == models.StatusNone {
			if output, ok := cutFailedTrailer(entry.Output); ok {
				entry.Output = output
				entry.Status = models.StatusFailed
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// cutFailedTrailer matches output whose last non-blank line is exactly
// FAILED and returns the text before that line.
func cutFailedTrailer(output string) (string, bool) {
	lines := scanLines(output)
	for i := len(lines) - 1; i >= 0; i-- {
		content := lines[i].in(output)
		if content == failedTrailer {
			return output[:lines[i].start], true
		}
		if !isBlank(content) {
			break
		}
	}
	return output, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
