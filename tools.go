package polyterm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
)

// ============================================================
// Tool Interface
// ============================================================

// ToolRequest is a single tool invocation, suitable for JSON transport.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries the result of a tool call. Exactly one of
// Result/Error is meaningful; String and LaTeX hold renderings of the
// result value when there is one.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches a tool request against the library.
func HandleToolCall(req ToolRequest) ToolResponse {
	getValue := func(key string) (Operand, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be a value object", key)
		}
		return FromJSON(m)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getValues := func(key string) ([]Operand, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be an array", key)
		}
		out := make([]Operand, len(raw))
		for i, r := range raw {
			m, ok := r.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be a value object", key, i)
			}
			op, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			out[i] = op
		}
		return out, nil
	}
	respond := func(op Operand) ToolResponse {
		m, err := toJSON(op)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: m, String: String(op), LaTeX: LaTeX(op)}
	}

	switch req.Tool {
	case "term":
		coeffStr := "1"
		if v, ok := req.Params["coefficient"]; ok {
			s, ok := v.(string)
			if !ok {
				return ToolResponse{Error: "param coefficient must be a string"}
			}
			coeffStr = s
		}
		r, ok := new(big.Rat).SetString(coeffStr)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("invalid coefficient %q", coeffStr)}
		}
		syms, powers, err := listParams(req.Params)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		t, err := FromLists(Coeff{val: r}, syms, powers)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(t)

	case "parse":
		text, err := getString("text")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := Parse(text)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e)

	case "render":
		op, err := getValue("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(op)

	case "multiply":
		ops, err := getValues("operands")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if len(ops) == 0 {
			return ToolResponse{Error: "multiply needs at least one operand"}
		}
		// Only a leading expression takes the Expression.Mul path and
		// its not-implemented contract. An expression in any later
		// position is not a valid term factor and fails coercion in
		// Mul below.
		if e, ok := ops[0].(Expression); ok {
			var rest Operand = Expression{}
			if len(ops) > 1 {
				rest = ops[1]
			}
			if _, err := e.Mul(rest); err != nil {
				return ToolResponse{Error: err.Error()}
			}
		}
		t, err := Mul(ops...)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(t)

	case "add":
		ops, err := getValues("operands")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := Sum(ops...)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e)

	case "free_symbols":
		op, err := getValue("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		set := FreeSymbols(op)
		syms := make([]string, 0, len(set))
		for s := range set {
			syms = append(syms, s)
		}
		sort.Strings(syms)
		return ToolResponse{Result: syms}

	case "degree":
		op, err := getValue("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: Degree(op)}

	case "spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func listParams(params map[string]interface{}) (syms []string, powers []int, err error) {
	if v, ok := params["symbols"]; ok {
		raw, ok := v.([]interface{})
		if !ok {
			return nil, nil, errors.New("param symbols must be an array of strings")
		}
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, nil, fmt.Errorf("param symbols[%d] must be a string", i)
			}
			syms = append(syms, s)
		}
	}
	if v, ok := params["powers"]; ok {
		raw, ok := v.([]interface{})
		if !ok {
			return nil, nil, errors.New("param powers must be an array of numbers")
		}
		for i, r := range raw {
			f, ok := r.(float64)
			if !ok {
				return nil, nil, fmt.Errorf("param powers[%d] must be a number", i)
			}
			powers = append(powers, int(f))
		}
	}
	return syms, powers, nil
}

// ============================================================
// Tool schema
// ============================================================

// ToolSpec returns the JSON tool schema for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("term", "Build a term from a coefficient plus parallel symbol and power arrays", []string{}, map[string]string{"coefficient": "string", "symbols": "array", "powers": "array"}),
		ts("parse", "Parse canonical text such as 5*x^2*y+7*x+2 into an expression", []string{"text"}, map[string]string{"text": "string"}),
		ts("render", "Render a term or expression as canonical text and LaTeX", []string{"value"}, map[string]string{"value": "object"}),
		ts("multiply", "Multiply term operands: monomials merge, coefficients multiply. Fails for expression operands", []string{"operands"}, map[string]string{"operands": "array"}),
		ts("add", "Add operands into one flat expression, preserving order; no like-term merging", []string{"operands"}, map[string]string{"operands": "array"}),
		ts("free_symbols", "Return the sorted symbol names appearing in a value", []string{"value"}, map[string]string{"value": "object"}),
		ts("degree", "Total degree of a term, or the maximum term degree of an expression", []string{"value"}, map[string]string{"value": "object"}),
		ts("spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
