package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/model"
	"alpine/translate/internal/repository"
	"alpine/translate/internal/repository/testutil"
)

func TestTranslationRepository_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTranslationRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Translation{
		SourceText:     "Hola",
		TranslatedText: "Hello",
		SourceLang:     "Español",
		TargetLang:     "Inglés",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, "Hola", list[0].SourceText)
	require.Equal(t, "Hello", list[0].TranslatedText)
	require.Equal(t, "Español", list[0].SourceLang)
	require.Equal(t, "Inglés", list[0].TargetLang)
	require.True(t, created.CreatedAt.Equal(list[0].CreatedAt))
}

func TestTranslationRepository_List_EmptyIsNotNil(t *testing.T) {
	repo := repository.NewTranslationRepository(testutil.NewTestDB(t))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestTranslationRepository_List_InsertionOrder(t *testing.T) {
	repo := repository.NewTranslationRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, text := range []string{"uno", "dos", "tres"} {
		_, err := repo.Create(ctx, model.Translation{SourceText: text, TranslatedText: text, SourceLang: "a", TargetLang: "b"})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "uno", list[0].SourceText)
	require.Equal(t, "tres", list[2].SourceText)
}

func TestTranslationRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTranslationRepository(db)
	ctx := context.Background()

	id := testutil.SeedTranslation(t, db, 42, "Hola", "Hello")

	updated, err := repo.Update(ctx, model.Translation{
		ID:             id,
		SourceText:     "Adiós",
		TranslatedText: "Goodbye",
		SourceLang:     "Español",
		TargetLang:     "Inglés",
	})
	require.NoError(t, err)
	require.Equal(t, id, updated.ID)
	require.Equal(t, "Adiós", updated.SourceText)
	require.Equal(t, "Goodbye", updated.TranslatedText)
	require.Equal(t, 2025, updated.CreatedAt.Year(), "created_at must survive updates")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Adiós", list[0].SourceText)
}

func TestTranslationRepository_Update_NotFound(t *testing.T) {
	repo := repository.NewTranslationRepository(testutil.NewTestDB(t))

	_, err := repo.Update(context.Background(), model.Translation{ID: 999, SourceText: "x", TranslatedText: "y", SourceLang: "a", TargetLang: "b"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTranslationRepository_Delete_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTranslationRepository(db)
	ctx := context.Background()

	id := testutil.SeedTranslation(t, db, 7, "Hola", "Hello")

	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.Delete(ctx, 123456))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestTranslationRepository_ClosedDB(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTranslationRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "list translations")
}
