package client

import (
	"context"
	"strings"
	"time"

	"alpine/translate/internal/logger"
)

// Placeholders shown in place of a translation.
const (
	NoResult        = "Sin resultado."
	TranslateFailed = "⚠️ No se pudo traducir, intenta otra vez."
)

// Translator turns typing into debounced create calls and mirrors the
// results into the store.
type Translator struct {
	ctx       context.Context
	store     *Store
	api       Backend
	debouncer *Debouncer[string]
}

// NewTranslator binds store and api. ctx bounds every create call; delay <= 0
// uses DefaultDebounce.
func NewTranslator(ctx context.Context, store *Store, api Backend, delay time.Duration) *Translator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	t := &Translator{ctx: ctx, store: store, api: api}
	t.debouncer = NewDebouncer(delay, t.translate)
	return t
}

// Input records new prompt text and restarts the debounce window.
func (t *Translator) Input(text string) {
	t.store.Dispatch(SetPrompt(text))
	t.debouncer.Push(t.store.State().Prompt)
}

// SwapLanguages exchanges the pair. The cleared prompt supersedes any pending one.
func (t *Translator) SwapLanguages() {
	t.store.Dispatch(SwapLanguages{})
	t.debouncer.Push("")
}

// Flush sends a pending prompt without waiting for the quiet period.
func (t *Translator) Flush() bool {
	return t.debouncer.Flush()
}

// Wait blocks until a create call already in flight has been applied to the store.
func (t *Translator) Wait() {
	t.debouncer.Wait()
}

// Close drops any pending prompt and waits for a create already in flight.
func (t *Translator) Close() {
	t.debouncer.Stop()
	t.debouncer.Wait()
}

func (t *Translator) translate(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	state := t.store.State()
	t.store.Dispatch(SetFinalPrompt(prompt), SetLoading(true))
	defer t.store.Dispatch(SetLoading(false))

	record, err := t.api.Create(t.ctx, Input{
		SourceText: prompt,
		SourceLang: state.SourceLang,
		TargetLang: state.TargetLang,
	})
	if err != nil {
		logger.Warn("translate failed", "module", "client", "action", "create", "resource", "translation", "result", "failed", "error", err)
		t.store.Dispatch(SetTranslation(TranslateFailed))
		return
	}

	text := record.TranslatedText
	if text == "" {
		text = NoResult
	}
	actions := []Action{SetTranslation(text)}
	if record.ID != "" {
		actions = append(actions, AppendRecord(record))
	}
	t.store.Dispatch(actions...)
}
