package teaoverlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Corner names where CompositeAnchor places an overlay on the base frame.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
	Center
)

// ParseCorner maps a config string ("top-left", "bottom-right", "center",
// ...) to a Corner. Unknown strings fall back to BottomRight.
func ParseCorner(s string) Corner {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left":
		return TopLeft
	case "top-right":
		return TopRight
	case "bottom-left":
		return BottomLeft
	case "center":
		return Center
	default:
		return BottomRight
	}
}

// Composite paints overlay on top of base at character position (x, y).
// Both are treated as line-based grids; styling in either survives because
// all slicing is ANSI-aware. Rows falling outside base or the height bound
// are skipped.
func Composite(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			rightWidth := ansi.StringWidth(right)
			gap := width - pos - rightWidth
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// CompositeAnchor fits base to a width x height canvas and paints overlay
// in the named corner, inset by margin. An empty overlay returns the fitted
// canvas unchanged.
func CompositeAnchor(base, overlay string, corner Corner, margin, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitCanvas(base, width, height)
	lines := splitLines(overlay)
	ow := maxLineWidth(lines)
	oh := len(lines)
	if ow <= 0 {
		return canvas
	}

	var x, y int
	switch corner {
	case TopLeft:
		x, y = margin, margin
	case TopRight:
		x, y = width-ow-margin, margin
	case BottomLeft:
		x, y = margin, height-oh-margin
	case Center:
		x, y = (width-ow)/2, (height-oh)/2
	default: // BottomRight
		x, y = width-ow-margin, height-oh-margin
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Composite(canvas, overlay, x, y, width, height)
}

// splitLines splits on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fitCanvas trims or extends s to exactly height lines of width columns.
func fitCanvas(s string, width, height int) string {
	lines := splitLines(s)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
