package trajectory

import "github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/dynamics"

// #region point
// Point is one recorded sample of the simulation state.
type Point struct {
	Step  int     `json:"step"`
	Omega float64 `json:"omega"`
	H     float64 `json:"h"`
}

// #endregion point

// #region trajectory
// Trajectory is the append-only ordered record of a single run. Index 0 is
// the initial state; a completed run holds steps+1 points.
type Trajectory struct {
	points []Point
}

// New creates a recorder with capacity for steps+1 points.
func New(steps int) *Trajectory {
	return &Trajectory{points: make([]Point, 0, steps+1)}
}

// Record appends the current state as the next point.
func (tr *Trajectory) Record(st dynamics.State) {
	tr.points = append(tr.points, Point{Step: st.StepIndex, Omega: st.Omega, H: st.H})
}

// Len returns the number of recorded points.
func (tr *Trajectory) Len() int {
	return len(tr.points)
}

// At returns the point at index i.
func (tr *Trajectory) At(i int) Point {
	return tr.points[i]
}

// Points returns the backing slice. Callers treat it as read-only.
func (tr *Trajectory) Points() []Point {
	return tr.points
}

// Omega returns the dense Omega series, index = step.
func (tr *Trajectory) Omega() []float64 {
	out := make([]float64, len(tr.points))
	for i, pt := range tr.points {
		out[i] = pt.Omega
	}
	return out
}

// H returns the dense H series, index = step.
func (tr *Trajectory) H() []float64 {
	out := make([]float64, len(tr.points))
	for i, pt := range tr.points {
		out[i] = pt.H
	}
	return out
}

// FromSeries rebuilds a Trajectory from dense omega and h series. Used when
// loading persisted runs; series must have equal length.
func FromSeries(omega, h []float64) *Trajectory {
	n := len(omega)
	if len(h) < n {
		n = len(h)
	}
	tr := &Trajectory{points: make([]Point, n)}
	for i := 0; i < n; i++ {
		tr.points[i] = Point{Step: i, Omega: omega[i], H: h[i]}
	}
	return tr
}

// #endregion trajectory
