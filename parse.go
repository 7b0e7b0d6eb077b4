package polyterm

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Canonical-form parser
// ============================================================

// Parse reads the canonical rendering back into an expression:
// terms joined by +, factors joined by *, powers written sym^n.
// Whitespace around tokens is ignored. An empty or all-blank input
// parses as the empty expression.
func Parse(s string) (Expression, error) {
	if strings.TrimSpace(s) == "" {
		return Expression{}, nil
	}
	chunks := strings.Split(s, "+")
	terms := make([]Term, len(chunks))
	for i, chunk := range chunks {
		t, err := ParseTerm(chunk)
		if err != nil {
			return Expression{}, fmt.Errorf("term %d: %w", i, err)
		}
		terms[i] = t
	}
	return Expression{terms: terms}, nil
}

// ParseTerm reads a single term such as "5*x^2*y", "x", or "3/2".
// Numeric factors multiply into the coefficient wherever they appear.
func ParseTerm(s string) (Term, error) {
	if strings.TrimSpace(s) == "" {
		return Term{}, fmt.Errorf("%w: empty term", ErrUnsupportedOperand)
	}
	coeff := C(1)
	var mono Monomial
	for _, factor := range strings.Split(s, "*") {
		factor = strings.TrimSpace(factor)
		if factor == "" {
			return Term{}, fmt.Errorf("%w: empty factor in %q", ErrUnsupportedOperand, s)
		}
		if isNumericStart(factor[0]) {
			r, ok := new(big.Rat).SetString(factor)
			if !ok {
				return Term{}, fmt.Errorf("%w: bad number %q", ErrUnsupportedOperand, factor)
			}
			coeff = coeff.Mul(Coeff{val: r})
			continue
		}
		sym, power, err := parseFactor(factor)
		if err != nil {
			return Term{}, err
		}
		if power > 0 {
			mono.add(sym, power)
		}
	}
	return Term{coeff: coeff, mono: mono}, nil
}

func isNumericStart(b byte) bool {
	return b == '-' || b == '.' || (b >= '0' && b <= '9')
}

func parseFactor(factor string) (sym string, power int, err error) {
	sym, powStr, found := strings.Cut(factor, "^")
	power = 1
	if found {
		power, err = strconv.Atoi(strings.TrimSpace(powStr))
		if err != nil {
			return "", 0, fmt.Errorf("%w: bad power %q", ErrUnsupportedOperand, powStr)
		}
	}
	sym = strings.TrimSpace(sym)
	if !isSymbol(sym) {
		return "", 0, fmt.Errorf("%w: bad symbol %q", ErrUnsupportedOperand, sym)
	}
	if err := checkFactor(sym, power); err != nil {
		return "", 0, err
	}
	return sym, power, nil
}

func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if i == 0 && !letter {
			return false
		}
		if !letter && !digit {
			return false
		}
	}
	return true
}
