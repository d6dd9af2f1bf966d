package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/neuralbg/internal/sim"
)

// Series is a metric that keeps one value per frame.
type Series interface {
	sim.Metric
	Series() []float64
}

type series struct {
	name   string
	values []float64
}

func (s *series) Name() string      { return s.name }
func (s *series) Series() []float64 { return s.values }
func (s *series) Reset()            { s.values = s.values[:0] }
func (s *series) push(v float64)    { s.values = append(s.values, v) }
func (s *series) Value() float64    { return Summarize(s.values).Mean }

func (s *series) Last() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}

// Summary describes the distribution of a series.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P90    float64
}

// Summarize computes a Summary; an empty series yields the zero value.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := Summary{
		N:    len(sorted),
		Mean: stat.Mean(sorted, nil),
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Row is one frame of a run record.
type Row struct {
	Frame      int     `csv:"frame" json:"frame"`
	Time       float64 `csv:"time" json:"time"`
	Population int     `csv:"population" json:"population"`
	Edges      int     `csv:"edges" json:"edges"`
	MeanSpeed  float64 `csv:"mean_speed" json:"mean_speed"`
	Energy     float64 `csv:"energy" json:"energy"`
	Reach      float64 `csv:"pointer_reach" json:"pointer_reach"`
}

// Recorder is an observer that turns every frame into a Row.
type Recorder struct {
	Rows []Row
}

func (r *Recorder) OnFrame(f sim.Frame) {
	r.Rows = append(r.Rows, Row{
		Frame:      f.Index,
		Time:       f.Time,
		Population: len(f.Particles),
		Edges:      f.Edges,
		MeanSpeed:  meanSpeed(f),
		Energy:     kineticEnergy(f),
		Reach:      pointerReach(f),
	})
}

// Column extracts one numeric column from rows by its csv name.
func Column(rows []Row, name string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		switch name {
		case "population":
			out = append(out, float64(r.Population))
		case "edges":
			out = append(out, float64(r.Edges))
		case "mean_speed":
			out = append(out, r.MeanSpeed)
		case "energy":
			out = append(out, r.Energy)
		case "pointer_reach":
			out = append(out, r.Reach)
		default:
			return nil
		}
	}
	return out
}

// Columns lists the names accepted by Column.
func Columns() []string {
	return []string{"population", "edges", "mean_speed", "energy", "pointer_reach"}
}

// Default returns the standard metric set for a run.
func Default() []Series {
	return []Series{
		NewPopulation(),
		NewEdges(),
		NewSpeed(),
		NewKineticEnergy(),
		NewPointerReach(),
	}
}
