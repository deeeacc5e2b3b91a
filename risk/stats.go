package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes a sampled field for the run log. NaN samples are
// counted separately and excluded from the statistics.
type FieldStats struct {
	Min, Max, Mean float64
	NumNaN, NumOK  int
}

func Summarize(vals []float64) (s FieldStats) {
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) {
			s.NumNaN++
			continue
		}
		finite = append(finite, v)
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.NumOK = len(finite)
	if s.NumOK > 0 {
		s.Mean = stat.Mean(finite, nil)
	}
	return
}

func (s FieldStats) String() string {
	return fmt.Sprintf("min,max,mean = %8.5f,%8.5f,%8.5f over %d samples (%d undefined)",
		s.Min, s.Max, s.Mean, s.NumOK+s.NumNaN, s.NumNaN)
}
