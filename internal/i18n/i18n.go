// Package i18n renders user-facing error messages in the caller's language.
package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"alpine/translate/internal/logger"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message ids shared by every operation.
const (
	MsgNotFound = "not_found"
	MsgInternal = "internal"
)

// Kind suffixes combined with an operation name, e.g. "create_upstream".
const (
	KindInvalid     = "invalid"
	KindUpstream    = "upstream"
	KindPersistence = "persistence"
	KindOther       = "other"
)

// Messages is a thin wrapper around a go-i18n Bundle.
type Messages struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// New loads the embedded catalogs. An unparseable defaultLocale falls back to Spanish.
func New(defaultLocale string) *Messages {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.es.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error("i18n load failed", "module", "i18n", "action", "load", "resource", file, "result", "failed", "error", err)
		}
	}
	return &Messages{bundle: bundle, defaultLanguage: tag}
}

// Operation renders the message for op failing with kind. Unknown kinds use
// the operation's catch-all message.
func (m *Messages) Operation(acceptLanguage, op, kind string) string {
	switch kind {
	case KindInvalid, KindUpstream, KindPersistence:
	default:
		kind = KindOther
	}
	id := op + "_" + kind
	msg, err := m.localize(acceptLanguage, id)
	if err != nil && kind != KindOther {
		msg, err = m.localize(acceptLanguage, op+"_"+KindOther)
	}
	if err != nil {
		return m.T(acceptLanguage, MsgInternal)
	}
	return msg
}

// T renders the message id for the given Accept-Language value, falling back
// to the default locale and finally to the id itself.
func (m *Messages) T(acceptLanguage, id string) string {
	msg, err := m.localize(acceptLanguage, id)
	if err != nil {
		logger.Warn("i18n localize failed", "module", "i18n", "action", "localize", "resource", id, "result", "failed", "error", err)
		return id
	}
	return msg
}

func (m *Messages) localize(acceptLanguage, id string) (string, error) {
	langs := []string{}
	if acceptLanguage != "" {
		langs = append(langs, acceptLanguage)
	}
	langs = append(langs, m.defaultLanguage.String())

	localizer := i18n.NewLocalizer(m.bundle, langs...)
	return localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
}
