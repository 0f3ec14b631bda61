package ui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff produces a character-level diff of before and after with
// insertions in green and deletions struck through in red. Semantic cleanup
// merges noisy single-character edits into readable spans.
func renderDiff(before, after string) string {
	if before == after {
		return after
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString(diffDeleteStyle.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(diffInsertStyle.Render(d.Text))
		}
	}
	return sb.String()
}
