// ABOUTME: Small 1-D k-nearest-neighbor regressor for bedtime prediction.
// ABOUTME: Uniform-weight mean over the k closest training inputs.
package forecast

import "sort"

// knnRegressor predicts a target from the k training inputs nearest to the
// query. Ties break on training order, so predictions are deterministic.
type knnRegressor struct {
	k  int
	xs []float64
	ys []float64
}

func fitKNN(xs, ys []float64, k int) *knnRegressor {
	if k > len(xs) {
		k = len(xs)
	}
	return &knnRegressor{k: k, xs: xs, ys: ys}
}

func (m *knnRegressor) predict(x float64) float64 {
	type neighbor struct {
		dist float64
		idx  int
	}
	neighbors := make([]neighbor, len(m.xs))
	for i, xi := range m.xs {
		d := x - xi
		if d < 0 {
			d = -d
		}
		neighbors[i] = neighbor{dist: d, idx: i}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].dist < neighbors[j].dist
	})

	sum := 0.0
	for _, n := range neighbors[:m.k] {
		sum += m.ys[n.idx]
	}
	return sum / float64(m.k)
}
