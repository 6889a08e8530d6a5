package pi

import (
	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/foundation/utils/mathx"
)

// Verification describes how a computed value compares with the reference
type Verification struct {
	Digits   int    // requested significant digits
	Actual   string // computed value
	Expected string // reference rounded to Digits significant digits
	Correct  int    // leading significant digits that agree with Expected
	Match    bool   // Actual equals Expected
}

// Expected returns the reference value of Pi rounded to digits significant
// digits, the value Compute(digits) must produce
func Expected(digits int) (mathx.Decimal, error) {
	if digits < 1 {
		return mathx.Decimal{}, pberror.Newf("digits must be positive, got %d", digits).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("pi.Expected")
	}
	ref, err := mathx.NewFromString(ReferenceDigits(digits + referenceGuard))
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "reference digits unparsable").WithCode(pberror.CodeInternal)
	}
	ctx, err := mathx.NewContext(digits)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return ctx.Round(ref)
}

// Verify compares result against the reference value for digits
func Verify(result mathx.Decimal, digits int) (Verification, error) {
	expected, err := Expected(digits)
	if err != nil {
		return Verification{}, pberror.Wrap(err, "verification failed").WithOperation("pi.Verify")
	}

	actual := result.SignificantDigits(digits)
	truth := expected.SignificantDigits(digits)
	correct := 0
	for correct < len(actual) && correct < len(truth) && actual[correct] == truth[correct] {
		correct++
	}

	return Verification{
		Digits:   digits,
		Actual:   result.String(),
		Expected: expected.String(),
		Correct:  correct,
		Match:    result.Equal(expected),
	}, nil
}
