package jsonvalue

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxExactExponent bounds the decimal exponent Rat expands. Comparisons and
// multipleOf never expand, so a hostile "1e999999999" costs no more than its
// text.
const maxExactExponent = 4096

// decimal is a JSON number as ±coef × 10^exp with no trailing zeros in
// coef. Zero has coef 0 and exp 0.
type decimal struct {
	neg    bool
	coef   *big.Int
	digits int // decimal digits in coef
	exp    *big.Int
}

func parseDecimal(s string) (decimal, bool) {
	if !ValidNumber(s) {
		return decimal{}, false
	}
	d := decimal{coef: new(big.Int), exp: new(big.Int)}
	if s[0] == '-' {
		d.neg = true
		s = s[1:]
	}
	mant := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant = s[:i]
		if _, ok := d.exp.SetString(s[i+1:], 10); !ok {
			return decimal{}, false
		}
	}
	intPart, frac, _ := strings.Cut(mant, ".")
	d.exp.Sub(d.exp, big.NewInt(int64(len(frac))))
	digits := strings.TrimLeft(intPart+frac, "0")
	if digits == "" {
		return decimal{coef: new(big.Int), exp: new(big.Int)}, true
	}
	trimmed := strings.TrimRight(digits, "0")
	d.exp.Add(d.exp, big.NewInt(int64(len(digits)-len(trimmed))))
	d.coef.SetString(trimmed, 10)
	d.digits = len(trimmed)
	return d, true
}

func (d decimal) sign() int {
	switch {
	case d.coef.Sign() == 0:
		return 0
	case d.neg:
		return -1
	default:
		return 1
	}
}

// cmpMagnitude compares |a| and |b| for non-zero values: first by the
// exponent of the leading digit, then digit by digit.
func cmpMagnitude(a, b decimal) int {
	adjA := new(big.Int).Add(a.exp, big.NewInt(int64(a.digits)))
	adjB := new(big.Int).Add(b.exp, big.NewInt(int64(b.digits)))
	if c := adjA.Cmp(adjB); c != 0 {
		return c
	}
	// Equal leading exponents: the exponent gap is bounded by the digit counts.
	ca, cb := a.coef, b.coef
	switch shift := new(big.Int).Sub(a.exp, b.exp); shift.Sign() {
	case 1:
		ca = new(big.Int).Mul(ca, pow10(shift.Int64()))
	case -1:
		cb = new(big.Int).Mul(cb, pow10(-shift.Int64()))
	}
	return ca.Cmp(cb)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// Rat converts a JSON number into an exact rational. ok is false when the
// text is not a JSON number or its exponent is beyond maxExactExponent.
func Rat(n json.Number) (*big.Rat, bool) {
	d, ok := parseDecimal(string(n))
	if !ok || !d.exp.IsInt64() {
		return nil, false
	}
	e := d.exp.Int64()
	if e > maxExactExponent || e < -maxExactExponent {
		return nil, false
	}
	r := new(big.Rat).SetInt(d.coef)
	if d.neg {
		r.Neg(r)
	}
	if e >= 0 {
		return r.Mul(r, new(big.Rat).SetInt(pow10(e))), true
	}
	return r.Quo(r, new(big.Rat).SetInt(pow10(-e))), true
}

// Sign returns -1, 0 or +1. ok is false when n is not a valid number.
func Sign(n json.Number) (int, bool) {
	d, ok := parseDecimal(string(n))
	if !ok {
		return 0, false
	}
	return d.sign(), true
}

// IsInteger reports whether n has no fractional part ("1.0", "1e2" and
// "1e5000" are integers).
func IsInteger(n json.Number) bool {
	d, ok := parseDecimal(string(n))
	return ok && (d.coef.Sign() == 0 || d.exp.Sign() >= 0)
}

// Compare returns -1, 0 or +1 comparing a and b exactly, whatever their
// exponents. ok is false only when either side is not a valid number.
func Compare(a, b json.Number) (int, bool) {
	da, ok := parseDecimal(string(a))
	if !ok {
		return 0, false
	}
	db, ok := parseDecimal(string(b))
	if !ok {
		return 0, false
	}
	sa, sb := da.sign(), db.sign()
	switch {
	case sa < sb:
		return -1, true
	case sa > sb:
		return 1, true
	case sa == 0:
		return 0, true
	}
	return sa * cmpMagnitude(da, db), true
}

// IsMultipleOf reports whether v / m is an integer, using exact arithmetic
// over the decimal text. The second result is false when either side is not
// a valid number or m is not positive.
func IsMultipleOf(v, m json.Number) (bool, bool) {
	dv, ok := parseDecimal(string(v))
	if !ok {
		return false, false
	}
	dm, ok := parseDecimal(string(m))
	if !ok || dm.sign() <= 0 {
		return false, false
	}
	if dv.sign() == 0 {
		return true, true
	}
	// v/m = (cv/cm) × 10^d
	d := new(big.Int).Sub(dv.exp, dm.exp)
	if d.Sign() >= 0 {
		// Beyond the bit length of cm, more factors of ten cannot change
		// whether cm divides cv × 10^d.
		k := int64(dm.coef.BitLen())
		if d.IsInt64() && d.Int64() < k {
			k = d.Int64()
		}
		num := new(big.Int).Mul(dv.coef, pow10(k))
		return new(big.Int).Mod(num, dm.coef).Sign() == 0, true
	}
	// cm × 10^-d would have to divide cv, which has no trailing zeros.
	return false, true
}

// FromFloat renders a float64 as a JSON number. NaN and infinities have no
// JSON form and report false.
func FromFloat(f float64) (json.Number, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), true
}

// ValidNumber reports whether s follows the JSON number grammar
// (-?int frac? exp?).
func ValidNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
