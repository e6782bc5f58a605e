package ussd

import "strings"

// Delimiter separates the accumulated inputs the carrier gateway
// redelivers on every turn.
const Delimiter = "*"

// Tokenize splits the accumulated session text into its ordered inputs.
// Empty text means the session just started. No validation happens here;
// each step of the menu interprets its own token.
func Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parts := strings.Split(text, Delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
