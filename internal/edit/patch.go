package edit

import (
	"fmt"
	"sort"
	"strings"

	"text-editor-server/internal/models"
	"text-editor-server/internal/text"
)

// RangeHashError reports a sub-range whose current content no longer
// matches the fingerprint the caller captured. Start and End are the
// resolved 1-based bounds of the offending range.
type RangeHashError struct {
	Start int
	End   int
}

func (e *RangeHashError) Error() string {
	return fmt.Sprintf("Range hash mismatch for range %d-%d", e.Start, e.End)
}

// InvalidRangeError reports an out-of-bounds or inverted range.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("Invalid range: %d-%d", e.Start, e.End)
}

// ApplyPatches applies patches to lines and returns the new line sequence.
// Patches need not arrive sorted; they are applied in descending start
// order so that a patch never shifts the line numbers of the patches still
// to come. End bounds resolve against the line count at read time, not the
// working buffer. All range hashes are verified against the buffer as read,
// before any mutation, so a failed patch leaves nothing applied.
func ApplyPatches(lines []string, patches []models.EditPatch) ([]string, error) {
	totalLines := len(lines)

	for _, p := range patches {
		if p.RangeHash == "" {
			continue
		}
		start, end := resolveSpan(p.Start, p.End, totalLines)
		selected := text.Join(sliceLines(lines, start, end))
		if text.Fingerprint(selected) != p.RangeHash {
			return nil, &RangeHashError{Start: p.Start, End: end}
		}
	}

	sorted := make([]models.EditPatch, len(patches))
	copy(sorted, patches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	working := make([]string, len(lines))
	copy(working, lines)

	for _, p := range sorted {
		start, end := resolveSpan(p.Start, p.End, totalLines)
		contents := p.Contents
		if p.RangeHash == "" {
			// Insertion mode: nothing is consumed. A start past the last
			// line appends at EOF instead.
			if p.Start > totalLines {
				start = len(working)
			}
			end = start
			if contents != "" && !strings.HasSuffix(contents, "\n") {
				contents += "\n"
			}
		}
		working = splice(working, start, end, text.SplitLines(contents))
	}

	return working, nil
}

// InsertLines inserts contents as whole lines at the 0-based position pos.
// Contents are normalized to end with a newline.
func InsertLines(lines []string, contents string, pos int) []string {
	if !strings.HasSuffix(contents, "\n") {
		contents += "\n"
	}
	working := make([]string, len(lines))
	copy(working, lines)
	return splice(working, pos, pos, text.SplitLines(contents))
}

// DeleteRanges removes the given ranges from lines. Ranges are processed in
// descending start order against the live line array, and each range's
// fingerprint is re-verified immediately before its lines are removed.
func DeleteRanges(lines []string, ranges []models.LineRange) ([]string, error) {
	sorted := make([]models.LineRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	working := make([]string, len(lines))
	copy(working, lines)

	for _, r := range sorted {
		start, end := resolveSpan(r.Start, r.End, len(working))
		if start < 0 || end > len(working) || start >= end {
			return nil, &InvalidRangeError{Start: r.Start, End: end}
		}
		if r.RangeHash != "" {
			selected := text.Join(working[start:end])
			if text.Fingerprint(selected) != r.RangeHash {
				return nil, &RangeHashError{Start: r.Start, End: end}
			}
		}
		working = append(working[:start], working[end:]...)
	}

	return working, nil
}

// resolveSpan converts a 1-based inclusive span to 0-based half-open
// indices. A nil end means through totalLines.
func resolveSpan(start int, end *int, totalLines int) (int, int) {
	resolvedEnd := totalLines
	if end != nil {
		resolvedEnd = *end
	}
	return start - 1, resolvedEnd
}

func sliceLines(lines []string, start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return nil
	}
	return lines[start:end]
}

func splice(lines []string, start, end int, replacement []string) []string {
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	if end < start {
		end = start
	}
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]string, 0, len(lines)-(end-start)+len(replacement))
	out = append(out, lines[:start]...)
	out = append(out, replacement...)
	out = append(out, lines[end:]...)
	return out
}
