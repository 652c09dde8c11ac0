package compiler

// Astar is the frontier ordering heuristic: 10·distance + depth. The
// constants matter only in that the distance term dominates until depth
// has accumulated enough weight to prefer a shallower alternative.
func Astar(distance float64, depth int) float64 {
	return 10*distance + float64(depth)
}
