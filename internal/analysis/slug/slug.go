package slug

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removedor de diacríticos: decompõe, descarta marcas e recompõe
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Derive monta o matchId determinístico de um confronto:
// "{home}-vs-{away}-{YYYY-MM-DD}", com a data no calendário UTC do kickoff.
// Nomes são normalizados (minúsculas, sem diacríticos, runs de não-alfanumérico
// viram um hífen). Não há garantia de unicidade: grafias diferentes que
// normalizam igual colidem no mesmo slot de cache — limitação aceita.
func Derive(home, away string, at time.Time) string {
	date := at.UTC().Format("2006-01-02")
	return Normalize(home) + "-vs-" + Normalize(away) + "-" + date
}

// Normalize reduz um nome de time à forma canônica usada nas chaves de cache
func Normalize(name string) string {
	lowered := strings.ToLower(name)

	if stripped, _, err := transform.String(stripAccents, lowered); err == nil {
		lowered = stripped
	}

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := true // suprime hífen inicial
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
