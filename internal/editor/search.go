package editor

import "bytes"

// SearchResult locates one match in render coordinates.
type SearchResult struct {
	Line   int
	Offset int
	Length int
}

// SimpleSearch scans every row's render string for occurrences of
// query, stepping one column past each hit's start, so overlapping
// occurrences are all reported. Results live until
// the next edit; callers re-run as needed. An empty query clears them.
func (e *Editor) SimpleSearch(query string) {
	e.searchResults = e.searchResults[:0]
	if query == "" {
		return
	}
	q := []byte(query)
	for line, row := range e.rows {
		off := 0
		for {
			m := bytes.Index(row.render[off:], q)
			if m < 0 {
				break
			}
			m += off
			e.searchResults = append(e.searchResults, SearchResult{
				Line:   line,
				Offset: m,
				Length: len(q),
			})
			off = m + 1
		}
	}
}

// SearchResults exposes the current match list.
func (e *Editor) SearchResults() []SearchResult {
	return e.searchResults
}
