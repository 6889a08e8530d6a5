package pi

import (
	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/foundation/utils/mathx"
)

// DefaultMaxIterations is the iteration bound applied when none is given.
// The series for b >= 2 needs fewer than 2*scale iterations, so hitting
// the bound means the loop is not converging.
func DefaultMaxIterations(scale int) int {
	return 4*scale + 64
}

type arctanConfig struct {
	maxIterations int
	observer      func(iter int)
}

// Option configures ArctanInverse
type Option func(*arctanConfig)

// WithMaxIterations overrides the iteration bound. Values <= 0 keep the default.
func WithMaxIterations(n int) Option {
	return func(c *arctanConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithTermObserver registers a callback invoked once per series iteration
func WithTermObserver(fn func(iter int)) Option {
	return func(c *arctanConfig) {
		c.observer = fn
	}
}

// ArctanInverse computes arctan(1/b) with the Taylor series
//
//	x - x^3/3 + x^5/5 - x^7/7 + ...
//
// where x = 1/b. All arithmetic runs at scale significant digits. The sum
// stops at the first term whose magnitude is below 10^-scale; that term is
// not added.
func ArctanInverse(b, scale int, opts ...Option) (mathx.Decimal, error) {
	if b < 2 {
		return mathx.Decimal{}, pberror.Newf("arctan base must be at least 2, got %d", b).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("pi.ArctanInverse").
			WithDetail("base", b)
	}
	ctx, err := mathx.NewContext(scale)
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "invalid arctan scale").
			WithOperation("pi.ArctanInverse").
			WithDetail("scale", scale)
	}

	cfg := arctanConfig{maxIterations: DefaultMaxIterations(scale)}
	for _, opt := range opts {
		opt(&cfg)
	}

	x, err := ctx.Quo(mathx.One(), mathx.NewFromInt(int64(b)))
	if err != nil {
		return mathx.Decimal{}, err
	}
	xSquared, err := ctx.Mul(x, x)
	if err != nil {
		return mathx.Decimal{}, err
	}
	factor := xSquared.Neg()
	threshold := mathx.Pow10(-scale)

	term := x
	result := x
	divisor := int64(1)

	for iter := 1; ; iter++ {
		if iter > cfg.maxIterations {
			return mathx.Decimal{}, pberror.Newf("arctan(1/%d) did not converge within %d iterations", b, cfg.maxIterations).
				WithCode(pberror.CodeNoConvergence).
				WithOperation("pi.ArctanInverse").
				WithDetails(map[string]interface{}{
					"base":           b,
					"scale":          scale,
					"max_iterations": cfg.maxIterations,
				})
		}
		if cfg.observer != nil {
			cfg.observer(iter)
		}

		divisor += 2
		if term, err = ctx.Mul(term, factor); err != nil {
			return mathx.Decimal{}, err
		}
		termToAdd, err := ctx.Quo(term, mathx.NewFromInt(divisor))
		if err != nil {
			return mathx.Decimal{}, err
		}
		if termToAdd.Abs().LessThan(threshold) {
			return result, nil
		}
		if result, err = ctx.Add(result, termToAdd); err != nil {
			return mathx.Decimal{}, err
		}
	}
}
