package diffview

import (
	"strings"
	"testing"
)

func TestRenderIdenticalTexts(t *testing.T) {
	text := "line one\nline two\nline three\n"
	segments := Render(text, text)
	if len(segments) != 1 {
		t.Fatalf("expected one segment, got %d: %+v", len(segments), segments)
	}
	if segments[0].IsAddition {
		t.Fatalf("identical text must not be marked as addition")
	}
	if segments[0].Text != text {
		t.Fatalf("expected full text back, got %q", segments[0].Text)
	}
}

func TestRenderEmptyOriginalIsAllAddition(t *testing.T) {
	tailored := "brand new resume\nwith two lines\n"
	segments := Render("", tailored)
	if len(segments) != 1 {
		t.Fatalf("expected one segment, got %d: %+v", len(segments), segments)
	}
	if !segments[0].IsAddition {
		t.Fatalf("new text must be marked as addition")
	}
	if segments[0].Text != tailored {
		t.Fatalf("expected full tailored text, got %q", segments[0].Text)
	}
}

func TestRenderMarksChangedLines(t *testing.T) {
	original := "header\nold skills line\nfooter\n"
	tailored := "header\nnew skills line\nfooter\n"
	segments := Render(original, tailored)

	var added, plain strings.Builder
	for _, seg := range segments {
		if seg.IsAddition {
			added.WriteString(seg.Text)
		} else {
			plain.WriteString(seg.Text)
		}
	}

	if !strings.Contains(added.String(), "new skills line") {
		t.Fatalf("expected new line marked as addition, segments: %+v", segments)
	}
	if strings.Contains(added.String(), "header") || strings.Contains(added.String(), "footer") {
		t.Fatalf("unchanged lines must not be additions, segments: %+v", segments)
	}
	if !strings.Contains(plain.String(), "old skills line") {
		t.Fatalf("removed line should render as plain context, segments: %+v", segments)
	}
}

func TestRenderMergesAdjacentSameKindSegments(t *testing.T) {
	original := "keep\ndrop one\ndrop two\nkeep too\n"
	tailored := "keep\nkeep too\nadd one\nadd two\n"
	segments := Render(original, tailored)

	for i := 1; i < len(segments); i++ {
		if segments[i].IsAddition == segments[i-1].IsAddition {
			t.Fatalf("adjacent segments with the same kind must merge: %+v", segments)
		}
	}
}

func TestRenderReassemblesTailoredText(t *testing.T) {
	original := "alpha\nbeta\ngamma\n"
	tailored := "alpha\ndelta\ngamma\nepsilon\n"
	segments := Render(original, tailored)

	var rebuilt strings.Builder
	for _, seg := range segments {
		rebuilt.WriteString(seg.Text)
	}
	// Concatenating all segments yields the tailored text interleaved
	// with the original-only lines rendered as context.
	for _, line := range strings.Split(strings.TrimSpace(tailored), "\n") {
		if !strings.Contains(rebuilt.String(), line) {
			t.Fatalf("segment stream lost tailored line %q: %+v", line, segments)
		}
	}
}
