// Package inspection evaluates fitted classifiers over regular grids in
// feature space.
//
// The grids implement gonum.org/v1/plot/plotter.GridXYZ, so a caller can
// pass them straight to plotter.NewHeatMap (decision regions) or
// plotter.NewContour (the separating line). Nothing here renders.
//
//	grid, err := inspection.NewDecisionGrid(X, y, discriminant_analysis.NewDLDA(), [2]int{0, 1}, 0.1)
//	if err != nil {
//	    return err
//	}
//	p := plot.New()
//	p.Add(plotter.NewHeatMap(grid, palette.Heat(len(grid.Classes()), 1)))
package inspection
