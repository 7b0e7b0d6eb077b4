// Package polyterm provides immutable polynomial term and expression
// values: a Term is a coefficient times a monomial, an Expression is an
// ordered sum of terms.
//
// Design goals:
//   - Exact rational coefficients (math/big.Rat)
//   - Immutable values: every operation returns a fresh Term or Expression
//   - Insertion-ordered, deterministic text rendering
//   - Embeddable in Go services, CLI tools, and agent backends
//
// Expressions are structural sums. Like terms are never collected, so
// x + x stays a two-term expression. Expression-by-expression
// multiplication is not implemented and always fails with
// ErrNotImplemented.
package polyterm

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrShapeMismatch reports parallel symbol and power slices of
	// different lengths.
	ErrShapeMismatch = errors.New("polyterm: symbols and powers have different lengths")

	// ErrUnsupportedOperand reports a construction or arithmetic
	// argument outside the supported operand kinds.
	ErrUnsupportedOperand = errors.New("polyterm: unsupported operand")

	// ErrNotImplemented reports a call to Expression.Mul. The
	// distributive product is deliberately absent.
	ErrNotImplemented = errors.New("polyterm: expression multiplication is not implemented")
)

// ============================================================
// Coeff — exact rational coefficient
// ============================================================

// Coeff is an exact rational coefficient. The zero value is 0.
type Coeff struct{ val *big.Rat }

func C(n int64) Coeff { return Coeff{val: new(big.Rat).SetInt64(n)} }
func CF(p, q int64) Coeff {
	if q == 0 {
		panic("polyterm: denominator is zero")
	}
	return Coeff{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func CFloat(f float64) Coeff { return Coeff{val: new(big.Rat).SetFloat64(f)} }

func (c Coeff) ref() *big.Rat {
	if c.val == nil {
		return new(big.Rat)
	}
	return c.val
}

func (c Coeff) Mul(o Coeff) Coeff    { return Coeff{val: new(big.Rat).Mul(c.ref(), o.ref())} }
func (c Coeff) IsZero() bool         { return c.ref().Sign() == 0 }
func (c Coeff) IsOne() bool          { return c.ref().Cmp(big.NewRat(1, 1)) == 0 }
func (c Coeff) IsInteger() bool      { return c.ref().IsInt() }
func (c Coeff) Equal(o Coeff) bool   { return c.ref().Cmp(o.ref()) == 0 }
func (c Coeff) Rat() *big.Rat        { return new(big.Rat).Set(c.ref()) }
func (c Coeff) Float64() float64     { f, _ := c.ref().Float64(); return f }
func (c Coeff) clone() Coeff         { return Coeff{val: new(big.Rat).Set(c.ref())} }

func (c Coeff) String() string {
	if c.ref().IsInt() {
		return c.ref().Num().String()
	}
	return c.ref().RatString()
}

// ============================================================
// Sym — symbol operand
// ============================================================

// Sym is a bare variable symbol, usable wherever a Term operand is
// expected. S("x") beside a term behaves as Var("x").
type Sym string

func S(name string) Sym       { return Sym(name) }
func (s Sym) String() string  { return string(s) }

// ============================================================
// Monomial — ordered symbol→power mapping
// ============================================================

// Monomial is a product of symbols raised to positive integer powers,
// such as x^2*y. First-insertion order is preserved and affects only
// rendering; equality ignores it. No symbol ever maps to power zero.
// The zero value is the empty monomial.
type Monomial struct {
	order []string
	exps  map[string]int
}

// add accumulates a factor. Callers validate power > 0 first.
func (m *Monomial) add(sym string, power int) {
	if m.exps == nil {
		m.exps = make(map[string]int)
	}
	if _, ok := m.exps[sym]; !ok {
		m.order = append(m.order, sym)
	}
	m.exps[sym] += power
}

func checkFactor(sym string, power int) error {
	if sym == "" {
		return fmt.Errorf("%w: empty symbol", ErrUnsupportedOperand)
	}
	if power < 0 {
		return fmt.Errorf("%w: negative power %d for %q", ErrUnsupportedOperand, power, sym)
	}
	return nil
}

// MonomialOf zips parallel symbol and power slices into a monomial.
// Zero powers are dropped; a repeated symbol accumulates its powers.
func MonomialOf(syms []string, powers []int) (Monomial, error) {
	if len(syms) != len(powers) {
		return Monomial{}, fmt.Errorf("%w: %d symbols, %d powers", ErrShapeMismatch, len(syms), len(powers))
	}
	var m Monomial
	for i, s := range syms {
		if err := checkFactor(s, powers[i]); err != nil {
			return Monomial{}, err
		}
		if powers[i] == 0 {
			continue
		}
		m.add(s, powers[i])
	}
	return m, nil
}

// MonomialFromMap builds a monomial from an explicit mapping. Go maps
// carry no order, so symbols are rendered in sorted order.
func MonomialFromMap(exps map[string]int) (Monomial, error) {
	syms := make([]string, 0, len(exps))
	for s := range exps {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	powers := make([]int, len(syms))
	for i, s := range syms {
		powers[i] = exps[s]
	}
	return MonomialOf(syms, powers)
}

// Merge multiplies two monomials: for every symbol in either operand
// the result power is the sum of the powers each side contributes.
// Merge is commutative and associative and never mutates an operand.
func (m Monomial) Merge(o Monomial) Monomial {
	var r Monomial
	for _, s := range m.order {
		r.add(s, m.exps[s])
	}
	for _, s := range o.order {
		r.add(s, o.exps[s])
	}
	return r
}

func (m Monomial) Equal(o Monomial) bool {
	if len(m.exps) != len(o.exps) {
		return false
	}
	for s, e := range m.exps {
		if o.exps[s] != e {
			return false
		}
	}
	return true
}

func (m Monomial) Exponent(sym string) int { return m.exps[sym] }
func (m Monomial) Len() int                { return len(m.order) }
func (m Monomial) IsEmpty() bool           { return len(m.order) == 0 }

// Symbols returns the symbols in rendering order.
func (m Monomial) Symbols() []string {
	return append([]string(nil), m.order...)
}

// Degree is the total degree, the sum of all powers.
func (m Monomial) Degree() int {
	d := 0
	for _, e := range m.exps {
		d += e
	}
	return d
}

func (m Monomial) clone() Monomial {
	var r Monomial
	for _, s := range m.order {
		r.add(s, m.exps[s])
	}
	return r
}

func (m Monomial) String() string {
	parts := make([]string, len(m.order))
	for i, s := range m.order {
		if e := m.exps[s]; e == 1 {
			parts[i] = s
		} else {
			parts[i] = s + "^" + strconv.Itoa(e)
		}
	}
	return strings.Join(parts, "*")
}

func (m Monomial) LaTeX() string {
	parts := make([]string, len(m.order))
	for i, s := range m.order {
		if e := m.exps[s]; e == 1 {
			parts[i] = s
		} else {
			parts[i] = s + "^{" + strconv.Itoa(e) + "}"
		}
	}
	return strings.Join(parts, " ")
}

// ============================================================
// Term — coefficient * monomial
// ============================================================

// Term is an immutable coefficient-monomial pair. The zero value is
// the constant term 0. Terms embedded in expressions are shared, not
// copied, which is safe because no operation mutates a term in place.
type Term struct {
	coeff Coeff
	mono  Monomial
}

// Constant builds a term with an empty monomial.
func Constant(c Coeff) Term { return Term{coeff: c.clone()} }

// Var builds the term 1*sym.
func Var(sym string) Term {
	var m Monomial
	m.add(sym, 1)
	return Term{coeff: C(1), mono: m}
}

// VarN builds coeff*sym^power. A zero power yields a constant term.
func VarN(sym string, coeff Coeff, power int) (Term, error) {
	if err := checkFactor(sym, power); err != nil {
		return Term{}, err
	}
	var m Monomial
	if power > 0 {
		m.add(sym, power)
	}
	return Term{coeff: coeff.clone(), mono: m}, nil
}

// FromMonomial builds coeff times an explicit monomial.
func FromMonomial(coeff Coeff, m Monomial) Term {
	return Term{coeff: coeff.clone(), mono: m.clone()}
}

// FromLists zips parallel symbol and power slices into a term.
func FromLists(coeff Coeff, syms []string, powers []int) (Term, error) {
	m, err := MonomialOf(syms, powers)
	if err != nil {
		return Term{}, err
	}
	return Term{coeff: coeff.clone(), mono: m}, nil
}

// FromTerm is the copy constructor: the result shares nothing with t.
func FromTerm(t Term) Term { return t.clone() }

func (t Term) clone() Term {
	return Term{coeff: t.coeff.clone(), mono: t.mono.clone()}
}

func (t Term) Coeff() Coeff       { return t.coeff.clone() }
func (t Term) Monomial() Monomial { return t.mono.clone() }
func (t Term) Degree() int        { return t.mono.Degree() }
func (t Term) IsConstant() bool   { return t.mono.IsEmpty() }

func (t Term) Equal(o Term) bool {
	return t.coeff.Equal(o.coeff) && t.mono.Equal(o.mono)
}

// Mul multiplies t by each operand in argument order: monomials merge,
// coefficients multiply. With no operands it returns a copy of t.
func (t Term) Mul(others ...Operand) (Term, error) {
	result := t.clone()
	for i, op := range others {
		f, err := coerceTerm(op)
		if err != nil {
			return Term{}, fmt.Errorf("operand %d: %w", i, err)
		}
		result.mono = result.mono.Merge(f.mono)
		result.coeff = result.coeff.Mul(f.coeff)
	}
	return result, nil
}

// Add wraps t followed by each operand, in order, into a new
// expression. No merging or simplification happens.
func (t Term) Add(others ...Operand) (Expression, error) {
	return Expression{terms: []Term{t.clone()}}.Add(others...)
}

func (t Term) String() string {
	prod := t.mono.String()
	if prod == "" {
		return t.coeff.String()
	}
	if t.coeff.IsOne() {
		return prod
	}
	return t.coeff.String() + "*" + prod
}

func (t Term) LaTeX() string {
	prod := t.mono.LaTeX()
	if prod == "" {
		return t.coeff.String()
	}
	if t.coeff.IsOne() {
		return prod
	}
	return t.coeff.String() + " " + prod
}

// ============================================================
// Operand — closed operand union
// ============================================================

// Operand is the closed set of kinds that can appear beside a Term or
// Expression in an addition or multiplication: Term, Coeff, Sym, and
// Expression (addition only). The set is sealed; there is no fallback
// branch for unknown kinds.
type Operand interface{ operand() }

func (Term) operand()       {}
func (Coeff) operand()      {}
func (Sym) operand()        {}
func (Expression) operand() {}

func coerceTerm(op Operand) (Term, error) {
	switch v := op.(type) {
	case Term:
		return v.clone(), nil
	case Coeff:
		return Constant(v), nil
	case Sym:
		return Var(string(v)), nil
	case Expression:
		return Term{}, fmt.Errorf("%w: expression used as a term factor", ErrUnsupportedOperand)
	}
	return Term{}, fmt.Errorf("%w: %T", ErrUnsupportedOperand, op)
}

// Mul multiplies any mix of terms, constants, and symbols. The product
// is defined once over the whole operand list, so Mul(C(5), Var("x"))
// and Mul(Var("x"), C(5)) produce the same term.
func Mul(operands ...Operand) (Term, error) {
	if len(operands) == 0 {
		return Constant(C(1)), nil
	}
	first, err := coerceTerm(operands[0])
	if err != nil {
		return Term{}, fmt.Errorf("operand 0: %w", err)
	}
	return first.Mul(operands[1:]...)
}

// Sum adds any mix of terms, constants, symbols, and expressions into
// one flat expression, preserving operand order. Both operand orders
// of a mixed pair route here, so C(5) + Var("x") and Var("x") + C(5)
// yield the same terms up to position.
func Sum(operands ...Operand) (Expression, error) {
	return Expression{}.Add(operands...)
}

// ============================================================
// Expression — ordered sum of terms
// ============================================================

// Expression is an immutable ordered sum of terms. Duplicates and like
// terms are kept as-is. The zero value is the empty sum, which renders
// as the empty string.
type Expression struct {
	terms []Term
}

// ExprOf builds an expression from terms in the given order.
func ExprOf(terms ...Term) Expression {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t.clone()
	}
	return Expression{terms: out}
}

// Add returns a new expression holding e's terms followed by each
// operand in order. Expression operands are flattened, term-like
// operands appended. Neither e nor any operand is mutated.
func (e Expression) Add(others ...Operand) (Expression, error) {
	out := make([]Term, len(e.terms), len(e.terms)+len(others))
	copy(out, e.terms)
	for i, op := range others {
		if inner, ok := op.(Expression); ok {
			out = append(out, inner.terms...)
			continue
		}
		t, err := coerceTerm(op)
		if err != nil {
			return Expression{}, fmt.Errorf("operand %d: %w", i, err)
		}
		out = append(out, t)
	}
	return Expression{terms: out}, nil
}

// Mul is the expression product. Distribution over sums is not
// implemented; the call always fails with ErrNotImplemented.
func (e Expression) Mul(other Operand) (Expression, error) {
	return Expression{}, ErrNotImplemented
}

// Terms returns the terms in order. The slice is a copy; the terms are
// shared immutable values.
func (e Expression) Terms() []Term {
	return append([]Term(nil), e.terms...)
}

func (e Expression) Len() int { return len(e.terms) }

func (e Expression) Equal(o Expression) bool {
	if len(e.terms) != len(o.terms) {
		return false
	}
	for i := range e.terms {
		if !e.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (e Expression) String() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, "+")
}

func (e Expression) LaTeX() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

// ============================================================
// Package helpers and queries
// ============================================================

// String renders any operand in the canonical text form.
func String(op Operand) string {
	switch v := op.(type) {
	case Term:
		return v.String()
	case Coeff:
		return v.String()
	case Sym:
		return v.String()
	case Expression:
		return v.String()
	}
	return ""
}

// LaTeX renders any operand as LaTeX source.
func LaTeX(op Operand) string {
	switch v := op.(type) {
	case Term:
		return v.LaTeX()
	case Coeff:
		return v.String()
	case Sym:
		return v.String()
	case Expression:
		return v.LaTeX()
	}
	return ""
}

// FreeSymbols returns the set of symbols appearing in op.
func FreeSymbols(op Operand) map[string]struct{} {
	syms := map[string]struct{}{}
	switch v := op.(type) {
	case Term:
		for _, s := range v.mono.order {
			syms[s] = struct{}{}
		}
	case Sym:
		syms[string(v)] = struct{}{}
	case Expression:
		for _, t := range v.terms {
			for _, s := range t.mono.order {
				syms[s] = struct{}{}
			}
		}
	}
	return syms
}

// Degree returns the total degree of op: the sum of powers for a term,
// the maximum term degree for an expression, 0 for a constant or an
// empty expression, 1 for a bare symbol.
func Degree(op Operand) int {
	switch v := op.(type) {
	case Term:
		return v.Degree()
	case Sym:
		return 1
	case Expression:
		max := 0
		for _, t := range v.terms {
			if d := t.Degree(); d > max {
				max = d
			}
		}
		return max
	}
	return 0
}
