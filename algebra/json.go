package algebra

import "encoding/json"

// ============================================================
// JSON Serialization
// ============================================================

// Tree returns the JSON-ready node tree of e.
func Tree(e Expr) map[string]interface{} { return e.toJSON() }

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}
