package speller

import (
	"strings"

	"hfstspell/internal/symbols"
)

// stringify concatenates the printable form of each symbol in path,
// skipping any symbol number that has fallen out of range of the key
// table (which can't normally happen but is checked for safety exactly as
// the original does).
func stringify(keyTable []string, path []symbols.SymbolNumber) string {
	var b strings.Builder
	for _, sym := range path {
		if int(sym) < len(keyTable) {
			b.WriteString(keyTable[sym])
		}
	}
	return b.String()
}

// symbolify is stringify but keeps each symbol's string separate, for
// AnalyseSymbols.
func symbolify(keyTable []string, path []symbols.SymbolNumber) []string {
	out := make([]string, 0, len(path))
	for _, sym := range path {
		if int(sym) < len(keyTable) {
			out = append(out, keyTable[sym])
		}
	}
	return out
}
