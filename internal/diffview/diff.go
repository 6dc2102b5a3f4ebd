// Package diffview renders the original and tailored resume texts as an
// ordered list of line-level segments for side-by-side display.
package diffview

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Segment is one run of text in the rendered diff. Additions are
// highlighted by the client; everything else, including text only
// present in the original, renders as plain context.
type Segment struct {
	Text       string `json:"text"`
	IsAddition bool   `json:"isAddition"`
}

// Render diffs the two texts line by line. If the diff cannot be
// computed the whole tailored text comes back as a single addition, so
// the caller always has something to show.
func Render(original, tailored string) (segments []Segment) {
	defer func() {
		if r := recover(); r != nil {
			segments = []Segment{{Text: tailored, IsAddition: true}}
		}
	}()
	segments = lineDiff(original, tailored)
	return segments
}

func lineDiff(original, tailored string) []Segment {
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(original, tailored)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	out := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		seg := Segment{Text: d.Text, IsAddition: d.Type == diffmatchpatch.DiffInsert}
		// Deletions render like context, so runs of equal and deleted
		// text collapse into one segment.
		if n := len(out); n > 0 && out[n-1].IsAddition == seg.IsAddition {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}
