package match3

// Refill gives every empty cell a fresh token chosen by p.
//
// Columns are filled left to right, each from its bottom-most empty slot
// upward, the same direction gravity compacts toward. Every placement is
// checked against the neighbors already filled at that moment. It returns
// the spawned positions in fill order.
func Refill(g *Grid, p *Picker) []Position {
	var spawned []Position

	for c := 0; c < g.W; c++ {
		for r := g.H - 1; r >= 0; r-- {
			pos := P(r, c)
			if !g.At(pos).IsEmpty() {
				continue
			}
			g.Spawn(pos, p.PickColor(g, r, c))
			spawned = append(spawned, pos)
		}
	}

	return spawned
}

// fillRowMajor fills every empty cell top to bottom, left to right. Used
// for fresh boards, where only left and upper neighbors exist yet.
func fillRowMajor(g *Grid, p *Picker) {
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			pos := P(r, c)
			if g.At(pos).IsEmpty() {
				g.Spawn(pos, p.PickColor(g, r, c))
			}
		}
	}
}
