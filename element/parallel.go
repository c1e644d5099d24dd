package element

import (
	"runtime"

	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// TabulateParallel splits the points into parallelDegree contiguous
// buckets, tabulates each bucket concurrently and stitches the tables back
// together. A parallelDegree below one uses one bucket per CPU.
func TabulateParallel(el Element, order int, pts [][]float64, entity *reference.Entity,
	parallelDegree int) (tab polyset.Tabulation, err error) {
	if parallelDegree < 1 {
		parallelDegree = runtime.NumCPU()
	}
	if parallelDegree > len(pts) {
		parallelDegree = len(pts)
	}
	if parallelDegree <= 1 {
		return el.Tabulate(order, pts, entity)
	}
	var (
		pm     = utils.NewPartitionMap(parallelDegree, len(pts))
		pieces = make([]polyset.Tabulation, parallelDegree)
	)
	err = pm.Run(func(bn, kMin, kMax int) (err error) {
		pieces[bn], err = el.Tabulate(order, pts[kMin:kMax], entity)
		return
	})
	if err != nil {
		return
	}
	tab = make(polyset.Tabulation)
	for alpha := range pieces[0] {
		members, ncomp, _ := pieces[0][alpha].Dims()
		T := polyset.NewTable(members, ncomp, len(pts))
		for bn, piece := range pieces {
			if pm.GetBucketDimension(bn) == 0 {
				continue
			}
			kMin, _ := pm.GetBucketRange(bn)
			T.AssignPoints(kMin, piece[alpha])
		}
		tab[alpha] = T
	}
	return
}
