package validation

import (
	"regexp"
	"strings"
)

// MaxPromptLength максимальная длина запроса после очистки, в символах.
const MaxPromptLength = 2000

// injectionMarkers маркеры ролей, через которые пытаются подменить инструкции модели.
var injectionMarkers = regexp.MustCompile(`(?i)system:|assistant:|\[INST\]|\[/INST\]`)

// SanitizePrompt удаляет маркеры ролей, обрезает пробелы и длину до MaxPromptLength.
// Удаление повторяется, пока текст меняется: "sysSYSTEM:tem:" после одного прохода снова
// содержал бы "system:".
func SanitizePrompt(input string) string {
	out := input
	for {
		next := injectionMarkers.ReplaceAllString(out, "")
		if next == out {
			break
		}
		out = next
	}

	out = strings.TrimSpace(out)

	runes := []rune(out)
	if len(runes) > MaxPromptLength {
		out = strings.TrimSpace(string(runes[:MaxPromptLength]))
	}
	return out
}
