// Package query splits raw launcher input into a routing keyword and the
// free text that follows it.
package query

import "strings"

// Query is parsed launcher input. Keyword is meaningful only when
// HasKeyword is true.
type Query struct {
	Keyword    string
	HasKeyword bool
	SearchText string
}

// Parse scans input once. Everything before the first space is the
// keyword and everything after it is the search text. Input without a
// space has no keyword and is used whole as the search text. The search
// text is trimmed; the keyword is not, so input starting with a space
// yields an empty keyword.
func Parse(input string) Query {
	keyword, text, found := strings.Cut(input, " ")
	if !found {
		return Query{SearchText: strings.TrimSpace(input)}
	}
	return Query{
		Keyword:    keyword,
		HasKeyword: true,
		SearchText: strings.TrimSpace(text),
	}
}

// String renders the query back into launcher input.
func (q Query) String() string {
	if !q.HasKeyword {
		return q.SearchText
	}
	if q.SearchText == "" {
		return q.Keyword + " "
	}
	return q.Keyword + " " + q.SearchText
}
