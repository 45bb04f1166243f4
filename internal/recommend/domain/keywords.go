package domain

import "strings"

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '-', '_', '.', ',':
		return true
	}
	return false
}

// KeyWords extracts the tokens of a product name worth matching on:
// separators are space, hyphen, underscore, period and comma; tokens of one
// character and stop words are dropped. Token casing is preserved.
func KeyWords(name string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(name, isSeparator) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := stopWords[strings.ToLower(tok)]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
