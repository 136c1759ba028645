package rewrite

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type ChangeKind int

const (
	Equal ChangeKind = iota
	Insert
	Delete
)

// Change is one span of a diff between the input and the output
type Change struct {
	Kind ChangeKind
	Text string
}

// Diff compares original with rewritten and returns semantically cleaned up
// spans in order.
func Diff(original, rewritten string) []Change {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, rewritten, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	changes := make([]Change, 0, len(diffs))
	for _, d := range diffs {
		var kind ChangeKind
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Insert
		case diffmatchpatch.DiffDelete:
			kind = Delete
		default:
			kind = Equal
		}
		changes = append(changes, Change{Kind: kind, Text: d.Text})
	}
	return changes
}

// Stats counts inserted and deleted runes
func Stats(changes []Change) (inserted, deleted int) {
	for _, c := range changes {
		switch c.Kind {
		case Insert:
			inserted += utf8.RuneCountInString(c.Text)
		case Delete:
			deleted += utf8.RuneCountInString(c.Text)
		}
	}
	return inserted, deleted
}
