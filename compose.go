package teaoverlay

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// DefaultCompose stacks every content block top to bottom in list order.
// A block's slot is its position in the current list, so dismissing an
// interior item shifts the blocks below it up by one. Non-string content
// renders through fmt.Sprint.
func DefaultCompose[T any](contents []T) string {
	if len(contents) == 0 {
		return ""
	}
	blocks := make([]string, len(contents))
	for i, c := range contents {
		blocks[i] = fmt.Sprint(c)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
