package layout

import "github.com/matzehuels/umlgraph/pkg/diagram"

// assign computes top-left positions. Slot i of a rank with k classes,
// under a widest rank of w classes, is centered at
//
//	x = ((w-k)/2 + i) * (NodeWidth+NodeSep) + NodeWidth/2
//	y = rank * (NodeHeight+RankSep) + NodeHeight/2
//
// and the returned corner is the center minus half the box.
func assign(orders map[int][]string) map[string]diagram.Position {
	widest := widestRank(orders)
	pos := make(map[string]diagram.Position)
	for r, ids := range orders {
		offset := float64(widest-len(ids)) / 2
		for i, id := range ids {
			cx := (offset+float64(i))*(NodeWidth+NodeSep) + NodeWidth/2
			cy := float64(r)*(NodeHeight+RankSep) + NodeHeight/2
			pos[id] = diagram.Position{X: cx - NodeWidth/2, Y: cy - NodeHeight/2}
		}
	}
	return pos
}

func widestRank(orders map[int][]string) int {
	widest := 0
	for _, ids := range orders {
		widest = max(widest, len(ids))
	}
	return widest
}

// extent returns the size of the drawing's bounding box.
func extent(orders map[int][]string) (width, height float64) {
	widest := widestRank(orders)
	if widest == 0 {
		return 0, 0
	}
	lowest := 0
	for r := range orders {
		lowest = max(lowest, r)
	}
	width = float64(widest)*(NodeWidth+NodeSep) - NodeSep
	height = float64(lowest+1)*(NodeHeight+RankSep) - RankSep
	return width, height
}
