package mines

import "github.com/sirupsen/logrus"

// RevealFrom opens the cell at row, col. A numbered cell or a mine is opened
// alone; an empty cell also opens every closed, unflagged cell reachable
// through empty cells, stopping at the numbered border. Nothing happens to a
// cell that is already open or flagged.
//
// The returned points are the cells opened by this call.
func RevealFrom(g *Grid, row, col int) ([]Point, error) {
	start, err := g.At(row, col)
	if err != nil {
		return nil, err
	}
	if start.revealed || start.flagged {
		return nil, nil
	}

	start.Reveal()
	opened := []Point{start.Point()}
	if !start.IsEmpty() {
		return opened, nil
	}

	/*
	 * Every queued cell is already open, so it can never be queued again
	 * and the walk visits each cell at most once.
	 */
	todo := newCellTodo(g.Size())
	todo.add(row*g.width + col)
	for i, ok := todo.pop(); ok; i, ok = todo.pop() {
		for j := range g.neighbours(i) {
			c := &g.cells[j]
			if c.revealed || c.flagged || c.mine {
				continue
			}
			c.Reveal()
			opened = append(opened, c.Point())
			if c.IsEmpty() {
				todo.add(j)
			}
		}
	}

	Log.WithFields(logrus.Fields{
		"start":  start.Point(),
		"opened": len(opened),
	}).Debug("flood fill")

	return opened, nil
}
