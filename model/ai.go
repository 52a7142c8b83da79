package model

import "math"

const (
	floodBudget   = 600
	centerWeight  = 0.2
	straightBonus = 1.05
)

// ChooseHeading picks the computer's heading for the coming step. It only
// reads the grid and gives the same answer for the same state.
func ChooseHeading(g *Grid, a Agent) Heading {
	candidates := [3]Heading{a.Heading, a.Heading.Right(), a.Heading.Left()}
	budget := FloodBudget(g)
	cx, cy := g.Cols/2, g.Rows/2

	best := a.Heading
	bestScore := math.Inf(-1)
	for i, h := range candidates {
		to := a.Pos.Add(h)
		if !g.Free(to) {
			continue
		}
		score := float64(FloodFill(g, to, budget))
		score *= 1 / (1 + float64(abs(to.X-cx)+abs(to.Y-cy))*centerWeight)
		if i == 0 {
			score *= straightBonus
		}
		if score > bestScore {
			best, bestScore = h, score
		}
	}
	if !math.IsInf(bestScore, -1) {
		return best
	}

	// emergency scan
	for _, h := range Headings {
		if h == a.Heading.Reverse() {
			continue
		}
		if g.Free(a.Pos.Add(h)) {
			return h
		}
	}
	return a.Heading
}

func FloodBudget(g *Grid) int {
	if n := g.Cols * g.Rows; n < floodBudget {
		return n
	}
	return floodBudget
}

// FloodFill counts free cells 4-connected to start, stopping once budget
// cells were visited. start itself is counted and walked through even if it
// is occupied.
func FloodFill(g *Grid, start Point, budget int) int {
	if budget <= 0 || !g.In(start) {
		return 0
	}
	visited := make(map[Point]struct{}, budget)
	frontier := make([]Point, 0, budget)
	visited[start] = struct{}{}
	frontier = append(frontier, start)

	for len(frontier) > 0 && len(visited) < budget {
		p := frontier[0]
		frontier = frontier[1:]
		for _, h := range Headings {
			n := p.Add(h)
			if !g.Free(n) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			frontier = append(frontier, n)
			if len(visited) >= budget {
				break
			}
		}
	}
	return len(visited)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
