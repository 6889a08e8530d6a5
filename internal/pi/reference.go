package pi

import (
	"math/big"
	"strings"
	"sync"
)

const referenceGuard = 10

var reference struct {
	sync.Mutex
	digits string // "31415..." without the decimal point
}

// ReferenceDigits returns "3." followed by the first n decimals of Pi,
// truncated. The digits come from the Chudnovsky series in fixed-point
// integer arithmetic, independent of the decimal engine. Results are cached
// so repeated calls for smaller n are free.
func ReferenceDigits(n int) string {
	if n < 0 {
		n = 0
	}

	reference.Lock()
	defer reference.Unlock()

	if len(reference.digits) < n+1+referenceGuard {
		reference.digits = chudnovsky(n + referenceGuard).String()
	}
	if n == 0 {
		return "3"
	}
	var b strings.Builder
	b.Grow(n + 2)
	b.WriteString(reference.digits[:1])
	b.WriteByte('.')
	b.WriteString(reference.digits[1 : n+1])
	return b.String()
}

// chudnovsky returns Pi * 10^n as an integer. The last few digits may be
// off by truncation error, so callers keep a guard.
func chudnovsky(n int) *big.Int {
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)

	c3Over24 := new(big.Int).Exp(big.NewInt(640320), big.NewInt(3), nil)
	c3Over24.Quo(c3Over24, big.NewInt(24))

	k := big.NewInt(1)
	aK := new(big.Int).Set(one)
	aSum := new(big.Int).Set(one)
	bSum := new(big.Int)

	sixK, t1, t2, t3, kCubed, tmp := new(big.Int), new(big.Int), new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	one64, two, five, six := big.NewInt(1), big.NewInt(2), big.NewInt(5), big.NewInt(6)

	for {
		// a_k *= -(6k-5)(2k-1)(6k-1) / (k^3 * C^3/24)
		sixK.Mul(k, six)
		t1.Sub(sixK, five)
		t2.Mul(k, two)
		t2.Sub(t2, one64)
		t3.Sub(sixK, one64)
		t1.Mul(t1, t2)
		t1.Mul(t1, t3)
		aK.Mul(aK, t1.Neg(t1))
		kCubed.Mul(k, k)
		kCubed.Mul(kCubed, k)
		aK.Quo(aK, kCubed.Mul(kCubed, c3Over24))

		if aK.Sign() == 0 {
			break
		}
		aSum.Add(aSum, aK)
		bSum.Add(bSum, tmp.Mul(aK, k))
		k.Add(k, one64)
	}

	total := new(big.Int).Mul(big.NewInt(13591409), aSum)
	total.Add(total, tmp.Mul(big.NewInt(545140134), bSum))

	// sqrt(10005 * one^2) = sqrt(10005) * one
	root := new(big.Int).Mul(big.NewInt(10005), one)
	root.Mul(root, one)
	root.Sqrt(root)

	root.Mul(root, big.NewInt(426880))
	root.Mul(root, one)
	return root.Quo(root, total)
}
