package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/supabase-community/postgrest-go"

	"alpine/translate/internal/model"
)

const supabaseTable = "translations"

type supabaseRow struct {
	ID             int64      `json:"id,omitempty"`
	SourceText     string     `json:"source_text"`
	TranslatedText string     `json:"translated_text"`
	SourceLang     string     `json:"source_lang"`
	TargetLang     string     `json:"target_lang"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

type supabaseTranslationRepository struct {
	restURL string
	apiKey  string
	client  *http.Client
}

// NewSupabaseTranslationRepository talks to the hosted table through its
// PostgREST surface at <projectURL>/rest/v1. The client's transport and
// timeout apply to every call; a nil client uses http.DefaultClient.
func NewSupabaseTranslationRepository(projectURL, apiKey string, client *http.Client) TranslationRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &supabaseTranslationRepository{
		restURL: projectURL + "/rest/v1",
		apiKey:  apiKey,
		client:  client,
	}
}

func (r *supabaseTranslationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	var rows []supabaseRow
	err := r.run(ctx, func(c *postgrest.Client) error {
		_, err := c.From(supabaseTable).
			Insert(toSupabaseRow(t), false, "", "representation", "").
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return model.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	if len(rows) == 0 {
		return model.Translation{}, fmt.Errorf("create translation: empty representation")
	}
	return rows[0].toModel(), nil
}

func (r *supabaseTranslationRepository) List(ctx context.Context) ([]model.Translation, error) {
	var rows []supabaseRow
	err := r.run(ctx, func(c *postgrest.Client) error {
		_, err := c.From(supabaseTable).
			Select("*", "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	translations := make([]model.Translation, 0, len(rows))
	for _, row := range rows {
		translations = append(translations, row.toModel())
	}
	return translations, nil
}

func (r *supabaseTranslationRepository) Update(ctx context.Context, t model.Translation) (model.Translation, error) {
	body := toSupabaseRow(t)
	body.ID = 0

	var rows []supabaseRow
	err := r.run(ctx, func(c *postgrest.Client) error {
		_, err := c.From(supabaseTable).
			Update(body, "representation", "").
			Eq("id", strconv.FormatInt(t.ID, 10)).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return model.Translation{}, fmt.Errorf("update translation: %w", err)
	}
	if len(rows) == 0 {
		return model.Translation{}, ErrNotFound
	}
	return rows[0].toModel(), nil
}

func (r *supabaseTranslationRepository) Delete(ctx context.Context, id int64) error {
	err := r.run(ctx, func(c *postgrest.Client) error {
		_, _, err := c.From(supabaseTable).
			Delete("minimal", "").
			Eq("id", strconv.FormatInt(id, 10)).
			Execute()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}

// run executes one query on a client bound to ctx. postgrest-go builds its
// requests without a context, so cancellation and the client timeout are
// attached in the transport.
func (r *supabaseTranslationRepository) run(ctx context.Context, query func(*postgrest.Client) error) error {
	if r.client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.client.Timeout)
		defer cancel()
	}

	c := postgrest.NewClient(r.restURL, "public", nil)
	if c.ClientError != nil {
		return c.ClientError
	}
	c.SetApiKey(r.apiKey).SetAuthToken(r.apiKey)

	parent := r.client.Transport
	if parent == nil {
		parent = http.DefaultTransport
	}
	c.Transport.Parent = contextTransport{ctx: ctx, parent: parent}
	return query(c)
}

type contextTransport struct {
	ctx    context.Context
	parent http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.parent.RoundTrip(req.WithContext(t.ctx))
}

func toSupabaseRow(t model.Translation) supabaseRow {
	return supabaseRow{
		ID:             t.ID,
		SourceText:     t.SourceText,
		TranslatedText: t.TranslatedText,
		SourceLang:     t.SourceLang,
		TargetLang:     t.TargetLang,
	}
}

func (row supabaseRow) toModel() model.Translation {
	t := model.Translation{
		ID:             row.ID,
		SourceText:     row.SourceText,
		TranslatedText: row.TranslatedText,
		SourceLang:     row.SourceLang,
		TargetLang:     row.TargetLang,
	}
	if row.CreatedAt != nil {
		t.CreatedAt = row.CreatedAt.UTC()
	}
	return t
}
