package solver

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// summary holds the aggregates the evaluator weighs.
type summary struct {
	mean   float64
	meanSq float64
	max    float64
}

func summarize[T number](xs []T) summary {
	if len(xs) == 0 {
		return summary{}
	}
	var s summary
	for _, x := range xs {
		f := float64(x)
		s.mean += f
		s.meanSq += f * f
		s.max = max(s.max, f)
	}
	n := float64(len(xs))
	s.mean /= n
	s.meanSq /= n
	return s
}
