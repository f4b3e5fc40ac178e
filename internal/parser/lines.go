package parser

import "strings"

// span is one line of a text, [start, end) with the newline excluded.
type span struct {
	start, end int
}

// scanLines splits text into line spans. A text ending in a newline yields a
// final empty line, matching how line anchors see the end of input.
func scanLines(text string) []span {
	spans := make([]span, 0, strings.Count(text, "\n")+1)
	start := 0
	for {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return append(spans, span{start, len(text)})
		}
		spans = append(spans, span{start, start + i})
		start += i + 1
	}
}

func (s span) in(text string) string {
	return text[s.start:s.end]
}

const asciiSpace = " \t\n\r\f\v"

func isBlank(s string) bool {
	return strings.TrimLeft(s, asciiSpace) == ""
}
