package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"alpine/translate/internal/logger"
	"alpine/translate/internal/model"
	"alpine/translate/internal/repository"
	"alpine/translate/internal/service/ai"
)

//go:generate mockgen -source=translation_service.go -destination=mock/translation_service.go -package=mock

// MaxSourceLength bounds the source text in runes.
const MaxSourceLength = 500

var (
	errEmptyOutput = errors.New("model returned no translation")
	errTooLong     = errors.New("source text exceeds 500 characters")
	errMissing     = errors.New("source_text, source_lang and target_lang are required")
	errBadID       = errors.New("id must be positive")
)

// TranslationInput is the user-supplied part of a record.
type TranslationInput struct {
	SourceText string
	SourceLang string
	TargetLang string
}

type TranslationService interface {
	Create(ctx context.Context, in TranslationInput) (model.Translation, error)
	List(ctx context.Context) ([]model.Translation, error)
	// Update recomputes the translation for the new input and replaces the record.
	Update(ctx context.Context, id int64, in TranslationInput) (model.Translation, error)
	// Delete is idempotent: a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

type translationService struct {
	repo        repository.TranslationRepository
	provider    ai.Provider
	rateLimiter *ai.RateLimiter
}

// NewTranslationService wires the store and the model provider. rateLimiter may be nil.
func NewTranslationService(repo repository.TranslationRepository, provider ai.Provider, rateLimiter *ai.RateLimiter) TranslationService {
	return &translationService{repo: repo, provider: provider, rateLimiter: rateLimiter}
}

func (s *translationService) Create(ctx context.Context, in TranslationInput) (model.Translation, error) {
	if err := validateInput(in); err != nil {
		return model.Translation{}, opError(OpCreate, ErrInvalid, err)
	}

	translated, err := s.translate(ctx, in)
	if err != nil {
		return model.Translation{}, opError(OpCreate, ErrUpstream, err)
	}

	created, err := s.repo.Create(ctx, model.Translation{
		SourceText:     in.SourceText,
		TranslatedText: translated,
		SourceLang:     in.SourceLang,
		TargetLang:     in.TargetLang,
	})
	if err != nil {
		logger.Error("translation create failed", "module", "service", "action", "create", "resource", "translation", "result", "failed", "error", err)
		return model.Translation{}, opError(OpCreate, ErrPersistence, err)
	}
	logger.Info("translation created", "module", "service", "action", "create", "resource", "translation", "result", "ok", "translation_id", created.ID)
	return created, nil
}

func (s *translationService) List(ctx context.Context) ([]model.Translation, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("translation list failed", "module", "service", "action", "list", "resource", "translation", "result", "failed", "error", err)
		return nil, opError(OpList, ErrPersistence, err)
	}
	if items == nil {
		items = []model.Translation{}
	}
	return items, nil
}

func (s *translationService) Update(ctx context.Context, id int64, in TranslationInput) (model.Translation, error) {
	if id <= 0 {
		return model.Translation{}, opError(OpUpdate, ErrInvalid, errBadID)
	}
	if err := validateInput(in); err != nil {
		return model.Translation{}, opError(OpUpdate, ErrInvalid, err)
	}

	translated, err := s.translate(ctx, in)
	if err != nil {
		return model.Translation{}, opError(OpUpdate, ErrUpstream, err)
	}

	updated, err := s.repo.Update(ctx, model.Translation{
		ID:             id,
		SourceText:     in.SourceText,
		TranslatedText: translated,
		SourceLang:     in.SourceLang,
		TargetLang:     in.TargetLang,
	})
	if err != nil {
		// A missing row is a store-side failure here, not a 404.
		logger.Error("translation update failed", "module", "service", "action", "update", "resource", "translation", "result", "failed", "translation_id", id, "error", err)
		return model.Translation{}, opError(OpUpdate, ErrPersistence, err)
	}
	logger.Info("translation updated", "module", "service", "action", "update", "resource", "translation", "result", "ok", "translation_id", id)
	return updated, nil
}

func (s *translationService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return opError(OpDelete, ErrInvalid, errBadID)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("translation delete failed", "module", "service", "action", "delete", "resource", "translation", "result", "failed", "translation_id", id, "error", err)
		return opError(OpDelete, ErrPersistence, err)
	}
	logger.Info("translation deleted", "module", "service", "action", "delete", "resource", "translation", "result", "ok", "translation_id", id)
	return nil
}

func (s *translationService) translate(ctx context.Context, in TranslationInput) (string, error) {
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	prompt := ai.TranslatePrompt(in.SourceText, in.SourceLang, in.TargetLang)
	raw, err := s.provider.Complete(ctx, "", prompt)
	if err != nil {
		logger.Warn("ai translate failed", "module", "service", "action", "translate", "resource", "ai", "result", "failed", "provider", s.provider.Name(), "error", err)
		return "", err
	}
	out := ai.CleanOutput(raw)
	if out == "" {
		logger.Warn("ai translate empty", "module", "service", "action", "translate", "resource", "ai", "result", "failed", "provider", s.provider.Name())
		return "", errEmptyOutput
	}
	return out, nil
}

func validateInput(in TranslationInput) error {
	if strings.TrimSpace(in.SourceText) == "" || strings.TrimSpace(in.SourceLang) == "" || strings.TrimSpace(in.TargetLang) == "" {
		return errMissing
	}
	if utf8.RuneCountInString(in.SourceText) > MaxSourceLength {
		return errTooLong
	}
	return nil
}
