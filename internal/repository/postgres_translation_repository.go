package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"alpine/translate/internal/model"
	"alpine/translate/internal/snowflake"
)

// pgxQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresTranslationRepository struct {
	db pgxQuerier
}

// NewPostgresTranslationRepository stores records in a hosted Postgres
// database through a pgx pool.
func NewPostgresTranslationRepository(db pgxQuerier) TranslationRepository {
	return &postgresTranslationRepository{db: db}
}

const pgTranslationColumns = `id, source_text, translated_text, source_lang, target_lang, created_at`

func (r *postgresTranslationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO translations (id, source_text, translated_text, source_lang, target_lang)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+pgTranslationColumns,
		snowflake.NextID(),
		t.SourceText,
		t.TranslatedText,
		t.SourceLang,
		t.TargetLang,
	)
	created, err := scanPgTranslation(row)
	if err != nil {
		return model.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	return created, nil
}

func (r *postgresTranslationRepository) List(ctx context.Context) ([]model.Translation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pgTranslationColumns+` FROM translations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	translations := []model.Translation{}
	for rows.Next() {
		t, err := scanPgTranslation(rows)
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

func (r *postgresTranslationRepository) Update(ctx context.Context, t model.Translation) (model.Translation, error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE translations
		 SET source_text = $1, translated_text = $2, source_lang = $3, target_lang = $4
		 WHERE id = $5
		 RETURNING `+pgTranslationColumns,
		t.SourceText,
		t.TranslatedText,
		t.SourceLang,
		t.TargetLang,
		t.ID,
	)
	updated, err := scanPgTranslation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Translation{}, ErrNotFound
	}
	if err != nil {
		return model.Translation{}, fmt.Errorf("update translation: %w", err)
	}
	return updated, nil
}

func (r *postgresTranslationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM translations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}

func scanPgTranslation(row pgx.Row) (model.Translation, error) {
	var t model.Translation
	if err := row.Scan(&t.ID, &t.SourceText, &t.TranslatedText, &t.SourceLang, &t.TargetLang, &t.CreatedAt); err != nil {
		return model.Translation{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
