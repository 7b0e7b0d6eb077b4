package polyterm

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================
//
// Terms serialize with an ordered factor array rather than an object,
// so the insertion order of the monomial survives a round trip:
//
//	{"type":"term","coefficient":"5",
//	 "factors":[{"symbol":"x","power":2},{"symbol":"y","power":1}]}
//	{"type":"expr","terms":[...]}

// ToJSON serializes a term or expression. Coeff and Sym operands are
// serialized as the terms they coerce to.
func ToJSON(op Operand) (string, error) {
	m, err := toJSON(op)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func toJSON(op Operand) (map[string]interface{}, error) {
	if e, ok := op.(Expression); ok {
		terms := make([]map[string]interface{}, len(e.terms))
		for i, t := range e.terms {
			terms[i] = termJSON(t)
		}
		return map[string]interface{}{"type": "expr", "terms": terms}, nil
	}
	t, err := coerceTerm(op)
	if err != nil {
		return nil, err
	}
	return termJSON(t), nil
}

func termJSON(t Term) map[string]interface{} {
	factors := make([]map[string]interface{}, len(t.mono.order))
	for i, s := range t.mono.order {
		factors[i] = map[string]interface{}{"symbol": s, "power": t.mono.exps[s]}
	}
	return map[string]interface{}{
		"type":        "term",
		"coefficient": t.coeff.String(),
		"factors":     factors,
	}
}

// FromJSON rebuilds a Term or Expression from its serialized form.
func FromJSON(data map[string]interface{}) (Operand, error) {
	if data == nil {
		return nil, fmt.Errorf("value must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObjArray := func(field string) ([]map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]map[string]interface{}, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			out[i] = m
		}
		return out, nil
	}

	switch typ {
	case "term":
		coeffAny, ok := data["coefficient"]
		if !ok {
			return nil, fmt.Errorf("term: missing 'coefficient'")
		}
		coeffStr, ok := coeffAny.(string)
		if !ok || coeffStr == "" {
			return nil, fmt.Errorf("term: 'coefficient' must be a non-empty string")
		}
		r, ok := new(big.Rat).SetString(coeffStr)
		if !ok {
			return nil, fmt.Errorf("term: invalid coefficient %q", coeffStr)
		}
		factors, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		t := Term{coeff: Coeff{val: r}}
		for i, f := range factors {
			sym, ok := f["symbol"].(string)
			if !ok || sym == "" {
				return nil, fmt.Errorf("term: factors[%d]: 'symbol' must be a non-empty string", i)
			}
			powF, ok := f["power"].(float64)
			if !ok {
				return nil, fmt.Errorf("term: factors[%d]: 'power' must be a number", i)
			}
			if powF != math.Trunc(powF) {
				return nil, fmt.Errorf("term: factors[%d]: 'power' must be an integer, got %v", i, powF)
			}
			power := int(powF)
			if err := checkFactor(sym, power); err != nil {
				return nil, fmt.Errorf("term: factors[%d]: %w", i, err)
			}
			if power > 0 {
				t.mono.add(sym, power)
			}
		}
		return t, nil

	case "expr":
		objs, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		terms := make([]Term, len(objs))
		for i, o := range objs {
			op, err := FromJSON(o)
			if err != nil {
				return nil, fmt.Errorf("expr: terms[%d]: %w", i, err)
			}
			t, ok := op.(Term)
			if !ok {
				return nil, fmt.Errorf("expr: terms[%d]: nested expressions are not allowed", i)
			}
			terms[i] = t
		}
		return Expression{terms: terms}, nil
	}
	return nil, fmt.Errorf("unknown value type: %s", typ)
}
