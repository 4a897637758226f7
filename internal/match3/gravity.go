package match3

// Drop records a token that fell during gravity.
type Drop struct {
	ID   TokenID
	From Position
	To   Position
}

// ApplyGravity compacts every column toward the bottom row in place.
// Surviving tokens keep their relative order and their IDs; the cells
// vacated at the top of each column are left empty. It returns the moves
// made, column by column, bottom-up.
func ApplyGravity(g *Grid) []Drop {
	var drops []Drop

	for c := 0; c < g.W; c++ {
		write := g.H - 1 // write cursor, starts at the bottom row

		for r := g.H - 1; r >= 0; r-- {
			from := P(r, c)
			cell := g.At(from)
			if cell.IsEmpty() {
				continue
			}
			if r != write {
				to := P(write, c)
				g.Set(to, cell)
				g.Clear(from)
				drops = append(drops, Drop{ID: cell.ID, From: from, To: to})
			}
			write--
		}

		for r := write; r >= 0; r-- {
			g.Clear(P(r, c))
		}
	}

	return drops
}
