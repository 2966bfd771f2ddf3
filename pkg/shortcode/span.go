// span.go provides byte-range arithmetic for placeholder re-anchoring.
package shortcode

import "fmt"

// Span is a half-open byte range [Start, End) into a specific string.
// A span produced by Locate indexes the rewritten output string; spans
// produced by the tokenizer index the source string. The two are never
// interchangeable without translation.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Relation classifies a byte position against a span.
type Relation int

const (
	Before Relation = iota // position < Start
	Within                 // Start <= position < End
	After                  // position >= End
)

func (r Relation) String() string {
	switch r {
	case Before:
		return "before"
	case Within:
		return "within"
	default:
		return "after"
	}
}

// Classify reports where pos falls relative to the span.
func (s Span) Classify(pos int) Relation {
	switch {
	case pos < s.Start:
		return Before
	case pos >= s.End:
		return After
	default:
		return Within
	}
}

// Shift returns the span moved by delta bytes. A negative delta moves the
// span left; it is an error for the start to underflow zero, since byte
// offsets cannot be negative.
func (s Span) Shift(delta int) (Span, error) {
	if s.Start+delta < 0 {
		return Span{}, fmt.Errorf("shift underflows span [%d, %d) by %d", s.Start, s.End, delta)
	}
	return Span{Start: s.Start + delta, End: s.End + delta}, nil
}

// UpdateOnEdit re-anchors the directive's span after an edit elsewhere in
// the rewritten string: a region of oldLen bytes at editPos was replaced by
// newLen bytes. Only edits strictly before the span move it; edits within
// or after the span leave it untouched. Editing inside the span itself is
// outside this contract: the span goes stale and the caller must re-scan.
func (d *Directive) UpdateOnEdit(editPos, oldLen, newLen int) error {
	if d.Span.Classify(editPos) != Before {
		return nil
	}
	shifted, err := d.Span.Shift(newLen - oldLen)
	if err != nil {
		return err
	}
	d.Span = shifted
	return nil
}
