package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/algebra"
)

// ============================================================
// Tool calls
// ============================================================

// ToolRequest is the body of POST /tool.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error. Result holds the
// expression tree or a plain value, String the informal notation and LaTeX
// the typeset form.
type ToolResponse struct {
	Result    interface{} `json:"result,omitempty"`
	LaTeX     string      `json:"latex,omitempty"`
	String    string      `json:"string,omitempty"`
	Message   string      `json:"message,omitempty"`
	Partials  []Partial   `json:"partials,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Position  *int        `json:"position,omitempty"`
}

// Partial is the derivative by a single variable.
type Partial struct {
	Var    string      `json:"var"`
	Result interface{} `json:"result"`
	LaTeX  string      `json:"latex"`
	String string      `json:"string"`
}

// Tool names.
const (
	ToolDerive    = "derive"
	ToolValidate  = "validate"
	ToolNormalize = "normalize"
	ToolVariables = "variables"
	ToolHelp      = "help"
	ToolSpec      = "mcp_spec"
)

func knownTool(name string) bool {
	switch name {
	case ToolDerive, ToolValidate, ToolNormalize, ToolVariables, ToolHelp, ToolSpec:
		return true
	}
	return false
}

// HandleToolCall runs one tool against p.
func HandleToolCall(p *symdiff.Pipeline, req ToolRequest) ToolResponse {
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
	fail := func(err error) ToolResponse {
		resp := ToolResponse{Error: err.Error()}
		var verr *symdiff.ValidationError
		if errors.As(err, &verr) {
			pos := verr.Position
			resp.ErrorKind = string(verr.Kind)
			resp.Position = &pos
			resp.Message = symdiff.Message(nil, err)
		}
		return resp
	}

	switch req.Tool {
	case ToolDerive:
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		res, err := p.Evaluate(expr)
		if err != nil {
			return fail(err)
		}
		d := res.Derivation
		resp := ToolResponse{
			Result:  algebra.Tree(d.Total),
			LaTeX:   algebra.LaTeX(d.Total),
			String:  res.Display,
			Message: symdiff.Message(res, nil),
		}
		for i, v := range d.Variables {
			resp.Partials = append(resp.Partials, Partial{
				Var:    v,
				Result: algebra.Tree(d.Partials[i]),
				LaTeX:  algebra.LaTeX(d.Partials[i]),
				String: symdiff.Format(d.Partials[i]),
			})
		}
		return resp

	case ToolValidate:
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		norm, err := p.Validate(expr)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: norm, String: norm}

	case ToolNormalize:
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		norm := symdiff.Normalize(expr)
		return ToolResponse{Result: norm, String: norm}

	case ToolVariables:
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: symdiff.Variables(expr)}

	case ToolHelp:
		return ToolResponse{String: symdiff.HelpText}

	case ToolSpec:
		var spec interface{}
		if err := json.Unmarshal([]byte(MCPToolSpec()), &spec); err != nil {
			return fail(err)
		}
		return ToolResponse{Result: spec}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %q", req.Tool)}
}

// MCPToolSpec describes the tools for agent registration.
func MCPToolSpec() string {
	expr := map[string]string{"expr": "string"}
	tools := []map[string]interface{}{
		ts(ToolDerive, "Total derivative of f(x, y) by every variable it contains, in informal notation (x^2, sin2x, lnx)", []string{"expr"}, expr),
		ts(ToolValidate, "Check an expression and return its normalised form, or the error kind and position", []string{"expr"}, expr),
		ts(ToolNormalize, "Rewrite informal notation into strict form without checking it", []string{"expr"}, expr),
		ts(ToolVariables, "Variables (x, y) the expression contains", []string{"expr"}, expr),
		ts(ToolHelp, "Input notation help", []string{}, map[string]string{}),
		ts(ToolSpec, "Return this tool schema", []string{}, map[string]string{}),
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
