package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoJSON ответ модели не содержит JSON объекта.
	ErrNoJSON = errors.New("no JSON found in response")
	// ErrInvalidSections поле sections отсутствует или не является массивом.
	ErrInvalidSections = errors.New("invalid sections format")
)

// GeneratedSection секция в ответе модели.
type GeneratedSection struct {
	SectionType string  `json:"section_type"`
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url"`
}

// FindJSONObject ищет первый сбалансированный {...} объект, который является валидным JSON.
// Скобки внутри строк не учитываются. Поиск прекращается на первой незакрытой скобке:
// дальше сбалансированного объекта тоже нет.
func FindJSONObject(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end := matchBrace(text, start)
		if end < 0 {
			return "", false
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// matchBrace возвращает индекс скобки, закрывающей text[start], или -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseSections извлекает секции портфолио из ответа модели.
func ParseSections(text string) ([]GeneratedSection, error) {
	obj, ok := FindJSONObject(text)
	if !ok {
		return nil, ErrNoJSON
	}

	var envelope struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(obj), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	raw := bytes.TrimSpace(envelope.Sections)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidSections
	}

	var sections []GeneratedSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSections, err)
	}

	return sections, nil
}
