package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alpine/translate/internal/model"
	"alpine/translate/internal/snowflake"
)

//go:generate mockgen -source=translation_repository.go -destination=mock/translation_repository.go -package=mock

// TranslationRepository persists translation records.
type TranslationRepository interface {
	Create(ctx context.Context, t model.Translation) (model.Translation, error)
	List(ctx context.Context) ([]model.Translation, error)
	// Update replaces every field but ID and CreatedAt. Returns ErrNotFound
	// when no record has t.ID.
	Update(ctx context.Context, t model.Translation) (model.Translation, error)
	// Delete is idempotent: deleting a missing ID is not an error.
	Delete(ctx context.Context, id int64) error
}

type translationRepository struct {
	db dbtx
}

func NewTranslationRepository(db dbtx) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	t.ID = snowflake.NextID()
	t.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO translations (id, source_text, translated_text, source_lang, target_lang, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.SourceText,
		t.TranslatedText,
		t.SourceLang,
		t.TargetLang,
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return model.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	return t, nil
}

func (r *translationRepository) GetByID(ctx context.Context, id int64) (model.Translation, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, source_text, translated_text, source_lang, target_lang, created_at
		 FROM translations WHERE id = ?`,
		id,
	)
	t, err := scanTranslation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Translation{}, ErrNotFound
	}
	if err != nil {
		return model.Translation{}, fmt.Errorf("get translation: %w", err)
	}
	return t, nil
}

func (r *translationRepository) List(ctx context.Context) ([]model.Translation, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, source_text, translated_text, source_lang, target_lang, created_at
		 FROM translations ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	translations := []model.Translation{}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return translations, nil
}

func (r *translationRepository) Update(ctx context.Context, t model.Translation) (model.Translation, error) {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE translations
		 SET source_text = ?, translated_text = ?, source_lang = ?, target_lang = ?
		 WHERE id = ?`,
		t.SourceText,
		t.TranslatedText,
		t.SourceLang,
		t.TargetLang,
		t.ID,
	)
	if err != nil {
		return model.Translation{}, fmt.Errorf("update translation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.Translation{}, fmt.Errorf("update translation: %w", err)
	}
	if affected == 0 {
		return model.Translation{}, ErrNotFound
	}
	return r.GetByID(ctx, t.ID)
}

func (r *translationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranslation(row rowScanner) (model.Translation, error) {
	var t model.Translation
	var createdAt string
	if err := row.Scan(&t.ID, &t.SourceText, &t.TranslatedText, &t.SourceLang, &t.TargetLang, &createdAt); err != nil {
		return model.Translation{}, err
	}
	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Translation{}, fmt.Errorf("parse translation created_at: %w", err)
	}
	return t, nil
}
