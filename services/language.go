package services

// DetectLanguage applies a script heuristic: any Arabic-script codepoint and
// no Latin letter means "ar", a Latin letter and no Arabic script means "en".
// Mixed-script and script-less messages (emoji, digits only) always hit the
// configured fallback.
func DetectLanguage(text, fallback string) string {
	hasArabic := false
	hasLatin := false

	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			hasArabic = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		}
	}

	switch {
	case hasArabic && !hasLatin:
		return "ar"
	case hasLatin && !hasArabic:
		return "en"
	default:
		return fallback
	}
}
