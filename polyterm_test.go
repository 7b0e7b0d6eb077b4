package polyterm_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/njchilds90/polyterm"
)

// ============================================================
// Monomial tests
// ============================================================

func mono(t *testing.T, syms []string, powers []int) polyterm.Monomial {
	t.Helper()
	m, err := polyterm.MonomialOf(syms, powers)
	if err != nil {
		t.Fatalf("MonomialOf(%v, %v): %v", syms, powers, err)
	}
	return m
}

func TestMonomial_Merge_SumsPowers(t *testing.T) {
	a := mono(t, []string{"x", "y"}, []int{2, 1})
	b := mono(t, []string{"x"}, []int{1})
	got := a.Merge(b)
	if got.Exponent("x") != 3 || got.Exponent("y") != 1 {
		t.Errorf("merge of x^2*y and x should be x^3*y, got %s", got)
	}
}

func TestMonomial_Merge_Commutative(t *testing.T) {
	a := mono(t, []string{"x", "y"}, []int{2, 1})
	b := mono(t, []string{"y", "z"}, []int{3, 4})
	if !a.Merge(b).Equal(b.Merge(a)) {
		t.Errorf("merge(a,b) != merge(b,a): %s vs %s", a.Merge(b), b.Merge(a))
	}
}

func TestMonomial_Merge_Associative(t *testing.T) {
	a := mono(t, []string{"x"}, []int{1})
	b := mono(t, []string{"x", "y"}, []int{2, 5})
	c := mono(t, []string{"z"}, []int{1})
	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))
	if !left.Equal(right) {
		t.Errorf("merge not associative: %s vs %s", left, right)
	}
}

func TestMonomial_Merge_DoesNotMutateOperands(t *testing.T) {
	a := mono(t, []string{"x"}, []int{2})
	b := mono(t, []string{"x"}, []int{3})
	_ = a.Merge(b)
	if a.Exponent("x") != 2 || b.Exponent("x") != 3 {
		t.Errorf("merge mutated an operand: a=%s b=%s", a, b)
	}
}

func TestMonomial_ZeroPowerOmitted(t *testing.T) {
	m := mono(t, []string{"x", "y"}, []int{2, 0})
	if m.Exponent("y") != 0 || m.Len() != 1 {
		t.Errorf("zero power should leave the symbol absent, got %s", m)
	}
}

func TestMonomial_NegativePowerRejected(t *testing.T) {
	_, err := polyterm.MonomialOf([]string{"x"}, []int{-1})
	if !errors.Is(err, polyterm.ErrUnsupportedOperand) {
		t.Errorf("want ErrUnsupportedOperand for negative power, got %v", err)
	}
}

func TestMonomial_ShapeMismatch(t *testing.T) {
	_, err := polyterm.MonomialOf([]string{"x", "y"}, []int{1})
	if !errors.Is(err, polyterm.ErrShapeMismatch) {
		t.Errorf("want ErrShapeMismatch, got %v", err)
	}
}

func TestMonomial_EqualIgnoresOrder(t *testing.T) {
	a := mono(t, []string{"x", "y"}, []int{1, 2})
	b := mono(t, []string{"y", "x"}, []int{2, 1})
	if !a.Equal(b) {
		t.Errorf("equality should ignore insertion order: %s vs %s", a, b)
	}
	if a.String() == b.String() {
		t.Errorf("rendering should follow insertion order: both %q", a.String())
	}
}

func TestMonomial_Degree(t *testing.T) {
	m := mono(t, []string{"x", "y"}, []int{2, 1})
	if m.Degree() != 3 {
		t.Errorf("degree of x^2*y should be 3, got %d", m.Degree())
	}
}

func TestMonomialFromMap_SortedOrder(t *testing.T) {
	m, err := polyterm.MonomialFromMap(map[string]int{"y": 1, "x": 2})
	if err != nil {
		t.Fatalf("MonomialFromMap: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, m.Symbols()); diff != "" {
		t.Errorf("symbol order mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================
// Term construction tests
// ============================================================

func TestConstant_RendersCoefficientOnly(t *testing.T) {
	c := polyterm.Constant(polyterm.C(3))
	if c.String() != "3" {
		t.Errorf("want 3, got %s", c.String())
	}
	if !c.IsConstant() {
		t.Error("constant term should report IsConstant")
	}
}

func TestVar_UnitCoefficientOmitted(t *testing.T) {
	x := polyterm.Var("x")
	if x.String() != "x" {
		t.Errorf("want x, got %s", x.String())
	}
}

func TestVarN(t *testing.T) {
	got, err := polyterm.VarN("x", polyterm.C(7), 2)
	if err != nil {
		t.Fatalf("VarN: %v", err)
	}
	if got.String() != "7*x^2" {
		t.Errorf("want 7*x^2, got %s", got.String())
	}
}

func TestFromLists_ShapeMismatch(t *testing.T) {
	_, err := polyterm.FromLists(polyterm.C(1), []string{"x"}, []int{1, 2})
	if !errors.Is(err, polyterm.ErrShapeMismatch) {
		t.Errorf("want ErrShapeMismatch, got %v", err)
	}
}

func TestFromTerm_IsIndependentCopy(t *testing.T) {
	orig, err := polyterm.FromLists(polyterm.C(5), []string{"x"}, []int{2})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	dup := polyterm.FromTerm(orig)
	if !dup.Equal(orig) {
		t.Errorf("copy should equal original: %s vs %s", dup, orig)
	}
	prod, err := dup.Mul(polyterm.Var("x"))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if orig.String() != "5*x^2" || prod.String() != "5*x^3" {
		t.Errorf("original changed after multiplying the copy: %s, %s", orig, prod)
	}
}

// ============================================================
// Term.Mul tests
// ============================================================

func TestTermMul_MergesMonomialsAndCoefficients(t *testing.T) {
	base, err := polyterm.FromLists(polyterm.C(5), []string{"x", "y"}, []int{2, 1})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	got, err := base.Mul(polyterm.Var("x"))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	m := got.Monomial()
	if m.Exponent("x") != 3 || m.Exponent("y") != 1 {
		t.Errorf("want monomial x^3*y, got %s", m)
	}
	if !got.Coeff().Equal(polyterm.C(5)) {
		t.Errorf("want coefficient 5, got %s", got.Coeff())
	}
}

func TestTermMul_NoOperands_ReturnsCopy(t *testing.T) {
	x := polyterm.Var("x")
	got, err := x.Mul()
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !got.Equal(x) {
		t.Errorf("Mul() should copy the receiver, got %s", got)
	}
}

func TestTermMul_CoercesConstantsAndSymbols(t *testing.T) {
	got, err := polyterm.Var("x").Mul(polyterm.C(5), polyterm.S("y"), polyterm.S("y"))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if got.String() != "5*x*y^2" {
		t.Errorf("x * 5 * y * y should be 5*x*y^2, got %s", got)
	}
}

func TestTermMul_ExpressionOperandRejected(t *testing.T) {
	e, err := polyterm.Var("x").Add(polyterm.Var("y"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err = polyterm.Var("x").Mul(e)
	if !errors.Is(err, polyterm.ErrUnsupportedOperand) {
		t.Errorf("want ErrUnsupportedOperand, got %v", err)
	}
}

func TestMul_Symmetric(t *testing.T) {
	left, err := polyterm.Mul(polyterm.C(5), polyterm.Var("x"))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	right, err := polyterm.Mul(polyterm.Var("x"), polyterm.C(5))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	want, err := polyterm.VarN("x", polyterm.C(5), 1)
	if err != nil {
		t.Fatalf("VarN: %v", err)
	}
	if !left.Equal(right) || !left.Equal(want) {
		t.Errorf("5*x and x*5 should both be %s, got %s and %s", want, left, right)
	}
}

// ============================================================
// Addition and flattening tests
// ============================================================

func TestTermAdd_WrapsInOrder(t *testing.T) {
	e, err := polyterm.Var("x").Add(polyterm.Var("y"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	terms := e.Terms()
	if len(terms) != 2 {
		t.Fatalf("want 2 terms, got %d", len(terms))
	}
	if terms[0].String() != "x" || terms[1].String() != "y" {
		t.Errorf("want [x y], got [%s %s]", terms[0], terms[1])
	}
	if e.String() != "x+y" {
		t.Errorf("want x+y, got %s", e.String())
	}
}

func TestTermAdd_CoercesSymbolOperand(t *testing.T) {
	e, err := polyterm.Var("x").Add(polyterm.S("y"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if e.String() != "x+y" {
		t.Errorf("want x+y, got %s", e.String())
	}
}

func TestExpressionAdd_Flattens(t *testing.T) {
	left := polyterm.ExprOf(polyterm.Var("x"))
	right := polyterm.ExprOf(polyterm.Var("y"), polyterm.Constant(polyterm.C(2)))
	got, err := left.Add(right)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("want 3 terms, got %d", got.Len())
	}
	if got.String() != "x+y+2" {
		t.Errorf("want x+y+2, got %s", got.String())
	}
}

func TestExpressionAdd_DoesNotMutateOperands(t *testing.T) {
	left := polyterm.ExprOf(polyterm.Var("x"))
	right := polyterm.ExprOf(polyterm.Var("y"))
	if _, err := left.Add(right, polyterm.C(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if left.Len() != 1 || right.Len() != 1 {
		t.Errorf("operands mutated: left=%d right=%d terms", left.Len(), right.Len())
	}
}

func TestExpressionAdd_KeepsLikeTerms(t *testing.T) {
	e, err := polyterm.Var("x").Add(polyterm.Var("x"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if e.Len() != 2 || e.String() != "x+x" {
		t.Errorf("x + x must stay two terms, got %s", e.String())
	}
}

func TestSum_Symmetric(t *testing.T) {
	a, err := polyterm.Sum(polyterm.C(5), polyterm.Var("x"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	b, err := polyterm.Sum(polyterm.Var("x"), polyterm.C(5))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Fatalf("want 2 terms each, got %d and %d", a.Len(), b.Len())
	}
	if a.String() != "5+x" || b.String() != "x+5" {
		t.Errorf("order must follow arguments: got %q and %q", a.String(), b.String())
	}
}

func TestEmptyExpression_RendersEmpty(t *testing.T) {
	var e polyterm.Expression
	if e.String() != "" {
		t.Errorf("empty expression should render as empty string, got %q", e.String())
	}
	if e.Len() != 0 {
		t.Errorf("empty expression should have no terms, got %d", e.Len())
	}
}

// ============================================================
// Expression.Mul contract
// ============================================================

func TestExpressionMul_NotImplemented(t *testing.T) {
	e := polyterm.ExprOf(polyterm.Var("x"))
	_, err := e.Mul(polyterm.ExprOf(polyterm.Var("y")))
	if !errors.Is(err, polyterm.ErrNotImplemented) {
		t.Errorf("want ErrNotImplemented, got %v", err)
	}
}

// ============================================================
// Rendering tests
// ============================================================

func TestRendering(t *testing.T) {
	fiveX2Y, err := polyterm.FromLists(polyterm.C(5), []string{"x", "y"}, []int{2, 1})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	half, err := polyterm.VarN("x", polyterm.CF(1, 2), 1)
	if err != nil {
		t.Fatalf("VarN: %v", err)
	}
	tests := []struct {
		name string
		op   polyterm.Operand
		want string
	}{
		{"coefficient and powers", fiveX2Y, "5*x^2*y"},
		{"unit coefficient omitted", polyterm.Var("x"), "x"},
		{"empty monomial", polyterm.Constant(polyterm.C(3)), "3"},
		{"rational coefficient", half, "1/2*x"},
		{"bare symbol", polyterm.S("x"), "x"},
		{"constant operand", polyterm.C(7), "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := polyterm.String(tt.op); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLaTeX(t *testing.T) {
	term, err := polyterm.FromLists(polyterm.C(5), []string{"x", "y"}, []int{2, 1})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	if got := polyterm.LaTeX(term); got != "5 x^{2} y" {
		t.Errorf("want '5 x^{2} y', got %q", got)
	}
	e, err := term.Add(polyterm.C(2))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := polyterm.LaTeX(e); got != "5 x^{2} y + 2" {
		t.Errorf("want '5 x^{2} y + 2', got %q", got)
	}
}

// ============================================================
// Query tests
// ============================================================

func TestFreeSymbols(t *testing.T) {
	term, err := polyterm.FromLists(polyterm.C(5), []string{"x", "y"}, []int{2, 1})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	e, err := term.Add(polyterm.S("z"), polyterm.C(2))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := map[string]struct{}{"x": {}, "y": {}, "z": {}}
	if diff := cmp.Diff(want, polyterm.FreeSymbols(e)); diff != "" {
		t.Errorf("free symbols mismatch (-want +got):\n%s", diff)
	}
}

func TestFreeSymbols_Constant(t *testing.T) {
	if n := len(polyterm.FreeSymbols(polyterm.C(5))); n != 0 {
		t.Errorf("constant should have no free symbols, got %d", n)
	}
}

func TestDegree(t *testing.T) {
	term, err := polyterm.FromLists(polyterm.C(5), []string{"x", "y"}, []int{2, 1})
	if err != nil {
		t.Fatalf("FromLists: %v", err)
	}
	if d := polyterm.Degree(term); d != 3 {
		t.Errorf("degree of 5*x^2*y should be 3, got %d", d)
	}
	e, err := term.Add(polyterm.Var("x"), polyterm.C(2))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if d := polyterm.Degree(e); d != 3 {
		t.Errorf("max degree of 5*x^2*y+x+2 should be 3, got %d", d)
	}
	var empty polyterm.Expression
	if d := polyterm.Degree(empty); d != 0 {
		t.Errorf("degree of empty expression should be 0, got %d", d)
	}
}

// ============================================================
// Determinism test
// ============================================================

func TestDeterminism(t *testing.T) {
	for i := 0; i < 10; i++ {
		term, err := polyterm.FromLists(polyterm.C(5), []string{"z", "a", "m"}, []int{1, 2, 3})
		if err != nil {
			t.Fatalf("FromLists: %v", err)
		}
		if got := term.String(); got != "5*z*a^2*m^3" {
			t.Errorf("iteration %d: want 5*z*a^2*m^3, got %s", i, got)
		}
	}
}
