package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxStoryTitleLength = 200
	MaxImageURLLength   = 2048
	MaxImagesCount      = 20
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateStoryTitle проверяет заголовок сохраняемой истории. Пустой заголовок допустим.
func ValidateStoryTitle(title string) error {
	return ValidateLength("title", strings.TrimSpace(title), 0, MaxStoryTitleLength)
}

// ValidateLanguage допускает пустой код или короткий код языка вида "en", "es", "pt-BR".
func ValidateLanguage(lang string) error {
	if lang == "" {
		return nil
	}
	if len(lang) > 8 {
		return fmt.Errorf("language must be a short language code")
	}
	for _, r := range lang {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-') {
			return fmt.Errorf("language must be a short language code")
		}
	}
	return nil
}

// ValidateImageURLs проверяет ссылки на загруженные изображения.
// Пустые элементы допустимы: они означают "без изображения" для секции с тем же индексом.
func ValidateImageURLs(images []string) error {
	if len(images) > MaxImagesCount {
		return fmt.Errorf("at most %d images are allowed", MaxImagesCount)
	}
	for i, link := range images {
		if link == "" {
			continue
		}
		if err := ValidateExternalLink(link); err != nil {
			return fmt.Errorf("images[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateExternalLink проверяет внешнюю ссылку.
func ValidateExternalLink(link string) error {
	linkStr := strings.TrimSpace(link)

	if err := ValidateLength("link", linkStr, 0, MaxImageURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return fmt.Errorf("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("link must start with http:// or https://")
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("link must contain a host")
	}
	return nil
}
