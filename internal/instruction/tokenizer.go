package instruction

import "strings"

// Tokenize splits an instruction into its space-delimited tokens. It has no
// grammar awareness; empty pieces are dropped so repeated spaces are
// harmless.
func Tokenize(instruction string) []string {
	parts := strings.Split(instruction, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// tokenAt returns the token at idx, or "" when the sequence is too short.
func tokenAt(tokens []string, idx int) string {
	if idx < 0 || idx >= len(tokens) {
		return ""
	}
	return tokens[idx]
}
