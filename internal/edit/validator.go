package edit

import "sort"

// Span is the start/end view shared by patches and delete ranges. Start is
// 1-based and inclusive; a nil End means through the last line.
type Span struct {
	Start int
	End   *int
}

// ValidateSpans checks spans for bounds and mutual overlap against the
// current line count. Spans are ordered by start; a span starting at or
// before the previous span's end counts as overlapping, so touching spans
// are rejected. Only range-consuming operations use this check; insertion
// mode patches never do. An empty list is trivially valid.
func ValidateSpans(spans []Span, totalLines int) bool {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	prevEnd := 0
	for _, s := range sorted {
		if s.Start < 1 {
			return false
		}
		end := totalLines
		if s.End != nil {
			end = *s.End
		}
		if end > totalLines {
			return false
		}
		if s.Start <= prevEnd {
			return false
		}
		prevEnd = end
	}
	return true
}
