package ports

import "context"

// Classifier scores text against a requested attribute set, returning a
// per-attribute confidence in [0,1]. Implementations make exactly one attempt;
// any transport or payload failure is an error the pipeline treats as "no
// verdict", never as a flag.
type Classifier interface {
	Score(ctx context.Context, text string, attributes []string) (map[string]float64, error)
}
