package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"novalink-bot/config"
)

func TestFormatReply(t *testing.T) {
	assert.Equal(t, "line one<br>line two", FormatReply("line one\nline two"))
	assert.Equal(t, "a<br><br>b", FormatReply("a\n\nb"))
	assert.Equal(t, "no breaks here", FormatReply("no breaks here"))
	assert.Equal(t, "", FormatReply(""))
}

func TestExtractConcepts(t *testing.T) {
	kw := config.DefaultKeywords()

	concepts := ExtractConcepts("the chatbot can automate the chatbot workflow", "en", kw)
	assert.Equal(t, []string{"chatbot", "automate", "workflow"}, concepts)
}

func TestExtractConceptsCap(t *testing.T) {
	kw := config.DefaultKeywords()

	concepts := ExtractConcepts(
		"alpha beta gamma delta epsilon zeta eta theta iota kappa", "en", kw)
	assert.Len(t, concepts, 8)
	assert.Equal(t, "alpha", concepts[0])
	assert.Equal(t, "theta", concepts[7])
}

func TestExtractConceptsArabicStopwords(t *testing.T) {
	kw := config.DefaultKeywords()

	concepts := ExtractConcepts("كيف يساعدني الذكاء الاصطناعي في التسويق", "ar", kw)
	assert.NotContains(t, concepts, "كيف")
	assert.NotContains(t, concepts, "في")
	assert.Contains(t, concepts, "التسويق")
}
