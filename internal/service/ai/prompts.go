package ai

import "fmt"

// TranslatePrompt returns the single user prompt sent for a translation. It is
// a pure function of its inputs so that every create and every edit of the
// same text and language pair asks the model the same question.
func TranslatePrompt(sourceText, sourceLang, targetLang string) string {
	return fmt.Sprintf(
		"Traduce el siguiente texto en %s a %s. Importante: responde únicamente con la traducción y nada más. Texto: %s",
		sourceLang, targetLang, sourceText,
	)
}
