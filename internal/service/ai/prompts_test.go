package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/service/ai"
)

func TestTranslatePrompt_Template(t *testing.T) {
	prompt := ai.TranslatePrompt("Hola", "Español", "Inglés")
	require.Equal(t,
		"Traduce el siguiente texto en Español a Inglés. Importante: responde únicamente con la traducción y nada más. Texto: Hola",
		prompt)
}

func TestTranslatePrompt_Deterministic(t *testing.T) {
	a := ai.TranslatePrompt("Adiós", "Español", "Francés")
	b := ai.TranslatePrompt("Adiós", "Español", "Francés")
	require.Equal(t, a, b)
	require.NotEqual(t, a, ai.TranslatePrompt("Adiós", "Español", "Inglés"))
}

func TestTranslatePrompt_FreeFormLanguages(t *testing.T) {
	prompt := ai.TranslatePrompt("text", "Klingon", "Quenya")
	require.Contains(t, prompt, "en Klingon a Quenya.")
	require.Contains(t, prompt, "Texto: text")
}
