package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeywordsEmptyPath(t *testing.T) {
	kw, err := LoadKeywords("")
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywords(), kw)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	kw, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywords(), kw)
}

func TestLoadKeywordsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	data := []byte(`
partnership_keywords:
  - franchise
welcome:
  ar:
    - "أهلا بك"
  en:
    - "custom welcome"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"franchise"}, kw.PartnershipKeywords)
	assert.Equal(t, []string{"custom welcome"}, kw.Welcome.EN)

	// untouched sections keep their defaults
	assert.Equal(t, DefaultKeywords().NewsletterKeywords, kw.NewsletterKeywords)
	assert.NotEmpty(t, kw.FixedReplies)
}

func TestLoadKeywordsRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("welcome: [unclosed"), 0o644))

	_, err := LoadKeywords(path)
	assert.Error(t, err)
}

func TestForLanguageFallsBackToArabic(t *testing.T) {
	pool := ReplyPool{AR: []string{"مرحبا"}}
	assert.Equal(t, []string{"مرحبا"}, pool.ForLanguage("en"))

	pool.EN = []string{"hello"}
	assert.Equal(t, []string{"hello"}, pool.ForLanguage("en"))
	assert.Equal(t, []string{"مرحبا"}, pool.ForLanguage("ar"))
}

func TestIsStopword(t *testing.T) {
	kw := DefaultKeywords()
	assert.True(t, kw.IsStopword("the", "en"))
	assert.True(t, kw.IsStopword("في", "ar"))
	assert.False(t, kw.IsStopword("chatbot", "en"))
	assert.False(t, kw.IsStopword("تسويق", "ar"))
}
