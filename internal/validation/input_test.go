package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageURLs(t *testing.T) {
	assert.NoError(t, ValidateImageURLs(nil))
	assert.NoError(t, ValidateImageURLs([]string{"https://cdn.example.com/a.png", "", "http://x.io/b.jpg"}))

	assert.EqualError(t, ValidateImageURLs([]string{"", "javascript:alert(1)"}),
		"images[1]: link must start with http:// or https://")
	assert.EqualError(t, ValidateImageURLs([]string{"https://"}), "images[0]: link must contain a host")

	tooMany := make([]string, MaxImagesCount+1)
	assert.EqualError(t, ValidateImageURLs(tooMany), "at most 20 images are allowed")
}

func TestValidateLanguage(t *testing.T) {
	for _, ok := range []string{"", "en", "es", "pt-BR"} {
		assert.NoError(t, ValidateLanguage(ok), ok)
	}
	for _, bad := range []string{"english!", "en_US", "a-very-long-code"} {
		assert.Error(t, ValidateLanguage(bad), bad)
	}
}

func TestValidateStoryTitle(t *testing.T) {
	assert.NoError(t, ValidateStoryTitle(""))
	assert.NoError(t, ValidateStoryTitle(strings.Repeat("й", MaxStoryTitleLength)))
	assert.Error(t, ValidateStoryTitle(strings.Repeat("a", MaxStoryTitleLength+1)))
}
