package symdiff

import (
	"regexp"
	"sort"
)

var variablePattern = regexp.MustCompile(`\b[xy]\b`)

// Variables returns the sorted, distinct variables that occur in expr. A
// constant expression yields an empty slice.
func Variables(expr string) []string {
	seen := map[string]struct{}{}
	for _, v := range variablePattern.FindAllString(Normalize(expr), -1) {
		seen[v] = struct{}{}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}
