package entities

import "strings"

// ParseName splits a real name as shown on vlr.gg into forename and surname.
//
// Trailing parenthesized tokens (usually the name in the player's native
// script) are dropped. The forename is the first remaining token and the
// surname is everything after it, so a single token yields no surname.
//
//	ParseName("Lee Jae-hyeok (이재혁)") == ("Lee", "Jae-hyeok")
func ParseName(full string) (forename, surname string) {
	tokens := strings.Fields(full)
	for len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if !strings.HasSuffix(last, ")") {
			break
		}
		// walk back to the token opening the parenthesis
		open := len(tokens) - 1
		for open >= 0 && !strings.HasPrefix(tokens[open], "(") {
			open--
		}
		if open < 0 {
			break
		}
		tokens = tokens[:open]
	}

	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

func joinName(forename, surname string) string {
	parts := make([]string, 0, 2)
	if forename != "" {
		parts = append(parts, forename)
	}
	if surname != "" {
		parts = append(parts, surname)
	}
	return strings.Join(parts, " ")
}
