package render

const (
	parentsPercent = 20
	previewPercent = 50

	// Below this width only the current listing is drawn.
	minSplitWidth = 30
)

// column is a horizontal slice of the body area.
type column struct {
	x, width int
}

type layoutMetrics struct {
	parents []column
	current column
	preview column
	split   bool
}

// computeLayout splits width w into ancestor columns, the current listing
// and the preview, 20/30/50, with one separator cell between neighbours.
func computeLayout(w, parentCount int) layoutMetrics {
	if w < 0 {
		w = 0
	}
	if w < minSplitWidth {
		return layoutMetrics{current: column{x: 0, width: w}}
	}

	metrics := layoutMetrics{split: true}
	parentsWidth := 0
	if parentCount > 0 {
		parentsWidth = w * parentsPercent / 100
		if parentsWidth < parentCount*2 {
			parentCount = 0
			parentsWidth = 0
		}
	}
	previewWidth := w * previewPercent / 100
	currentWidth := w - parentsWidth - previewWidth

	x := 0
	if parentCount > 0 {
		each := parentsWidth / parentCount
		for i := 0; i < parentCount; i++ {
			width := each
			if i == parentCount-1 {
				width = parentsWidth - each*(parentCount-1)
			}
			metrics.parents = append(metrics.parents, column{x: x, width: width - 1})
			x += width
		}
	}
	metrics.current = column{x: x, width: currentWidth - 1}
	x += currentWidth
	metrics.preview = column{x: x, width: previewWidth}
	return metrics
}

// scrollOffset keeps selected visible in a pane of the given height.
func scrollOffset(selected, height int) int {
	if height <= 0 || selected < height {
		return 0
	}
	return selected - height + 1
}
