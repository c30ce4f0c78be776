package client_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/client"
)

func seededHistory(t *testing.T, backend *fakeBackend) (*client.Store, *client.History) {
	t.Helper()
	backend.list = []client.Record{
		{ID: "1", SourceText: "Hola", TranslatedText: "Hello", SourceLang: "Español", TargetLang: "Inglés"},
		{ID: "2", SourceText: "Gato", TranslatedText: "Cat", SourceLang: "Español", TargetLang: "Inglés"},
		{ID: "3", SourceText: "Perro", TranslatedText: "Dog", SourceLang: "Español", TargetLang: "Inglés"},
	}
	store := client.NewStore()
	h := client.NewHistory(store, backend)
	require.NoError(t, h.Load(context.Background()))
	return store, h
}

func TestHistory_Load(t *testing.T) {
	backend := &fakeBackend{}
	store, _ := seededHistory(t, backend)
	require.Len(t, store.State().History, 3)

	backend.listErr = errors.New("down")
	h := client.NewHistory(store, backend)
	require.Error(t, h.Load(context.Background()))
	require.Len(t, store.State().History, 3)
}

func TestHistory_EditSave(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	require.Equal(t, client.Viewing, h.RowState("2"))
	require.NoError(t, h.Press(ctx, "2"))
	require.Equal(t, client.Editing, h.RowState("2"))
	require.Equal(t, "Gato", h.EditValue())

	release := make(chan struct{})
	backend.updateFn = func(id string, in client.Input) (client.Record, error) {
		<-release
		return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "Kitten", SourceLang: in.SourceLang, TargetLang: in.TargetLang}, nil
	}

	h.SetEditValue("Gatito")
	require.NoError(t, h.Press(ctx, "2"))

	// Optimistic source text, stale translation until the server answers.
	row := store.State().History[1]
	require.Equal(t, "Gatito", row.SourceText)
	require.Equal(t, "Cat", row.TranslatedText)
	require.Equal(t, client.Saving, h.RowState("2"))
	require.Empty(t, h.EditValue())

	close(release)
	h.Wait()
	require.Equal(t, client.Viewing, h.RowState("2"))
	require.Equal(t, "Kitten", store.State().History[1].TranslatedText)
}

func TestHistory_StaleSaveDiscarded(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	first := make(chan struct{})
	backend.updateFn = func(id string, in client.Input) (client.Record, error) {
		if in.SourceText == "uno" {
			<-first
		}
		return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "T(" + in.SourceText + ")"}, nil
	}

	require.NoError(t, h.Press(ctx, "1"))
	h.SetEditValue("uno")
	require.NoError(t, h.Press(ctx, "1"))

	require.NoError(t, h.Press(ctx, "1"))
	h.SetEditValue("dos")
	require.NoError(t, h.Press(ctx, "1"))

	// The second save resolves first; then the first one arrives late.
	require.Eventually(t, func() bool {
		return store.State().History[0].TranslatedText == "T(dos)"
	}, time.Second, time.Millisecond)
	close(first)
	h.Wait()

	row := store.State().History[0]
	require.Equal(t, "dos", row.SourceText)
	require.Equal(t, "T(dos)", row.TranslatedText)
}

func TestHistory_UpdateFailureReturnsToViewing(t *testing.T) {
	backend := &fakeBackend{updateFn: func(string, client.Input) (client.Record, error) {
		return client.Record{}, &client.NetworkError{Status: 500}
	}}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	require.NoError(t, h.Press(ctx, "3"))
	h.SetEditValue("Lobo")
	require.NoError(t, h.Press(ctx, "3"))
	h.Wait()

	require.Equal(t, client.Viewing, h.RowState("3"))
	require.Equal(t, "Lobo", store.State().History[2].SourceText)
}

func TestHistory_PressUnknown(t *testing.T) {
	_, h := seededHistory(t, &fakeBackend{})
	require.ErrorIs(t, h.Press(context.Background(), "nope"), client.ErrUnknownRecord)
}

func TestHistory_Delete(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)

	require.NoError(t, h.Delete(context.Background(), "2"))
	ids := []string{}
	for _, r := range store.State().History {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"1", "3"}, ids)
	require.Equal(t, []string{"2"}, backend.deletes)
}

func TestHistory_DeleteRollback(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	before := store.State().History

	removedDuringCall := false
	backend.deleteFn = func(id string) error {
		for _, r := range store.State().History {
			if r.ID == id {
				return errors.New("unexpected: row still present")
			}
		}
		removedDuringCall = true
		return &client.NetworkError{Status: 500, Message: "Ocurrió un error al borrar la traducción"}
	}

	err := h.Delete(context.Background(), "2")
	var netErr *client.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.True(t, removedDuringCall)
	require.Equal(t, before, store.State().History)
}

func TestHistory_DeleteRollbackKeepsSaveResult(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	release := make(chan struct{})
	backend.updateFn = func(id string, in client.Input) (client.Record, error) {
		<-release
		return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "Kitten", SourceLang: in.SourceLang, TargetLang: in.TargetLang}, nil
	}
	backend.deleteFn = func(string) error {
		close(release)
		h.Wait()
		return &client.NetworkError{Status: 500}
	}

	require.NoError(t, h.Press(ctx, "2"))
	h.SetEditValue("Gatito")
	require.NoError(t, h.Press(ctx, "2"))

	require.Error(t, h.Delete(ctx, "2"))
	h.Wait()

	row := store.State().History[1]
	require.Equal(t, "2", row.ID)
	require.Equal(t, "Gatito", row.SourceText)
	require.Equal(t, "Kitten", row.TranslatedText)
}

func TestHistory_SaveAfterFailedDeleteApplies(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	release := make(chan struct{})
	backend.updateFn = func(id string, in client.Input) (client.Record, error) {
		<-release
		return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "Kitten", SourceLang: in.SourceLang, TargetLang: in.TargetLang}, nil
	}
	backend.deleteFn = func(string) error { return &client.NetworkError{Status: 500} }

	require.NoError(t, h.Press(ctx, "2"))
	h.SetEditValue("Gatito")
	require.NoError(t, h.Press(ctx, "2"))
	require.Error(t, h.Delete(ctx, "2"))

	close(release)
	h.Wait()
	row := store.State().History[1]
	require.Equal(t, "Gatito", row.SourceText)
	require.Equal(t, "Kitten", row.TranslatedText)
}

func TestHistory_SaveAfterDeleteDoesNotResurrect(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	release := make(chan struct{})
	backend.updateFn = func(id string, in client.Input) (client.Record, error) {
		<-release
		return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "Kitten"}, nil
	}

	require.NoError(t, h.Press(ctx, "2"))
	h.SetEditValue("Gatito")
	require.NoError(t, h.Press(ctx, "2"))
	require.NoError(t, h.Delete(ctx, "2"))

	close(release)
	h.Wait()
	require.Len(t, store.State().History, 2)
	require.Equal(t, "3", store.State().History[1].ID)
}

func TestHistory_SubscriberCanReadRowState(t *testing.T) {
	backend := &fakeBackend{}
	store, h := seededHistory(t, backend)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []client.RowState
	unsubscribe := store.Subscribe(func(client.State) {
		state := h.RowState("1")
		_ = h.EditValue()
		mu.Lock()
		seen = append(seen, state)
		mu.Unlock()
	})
	defer unsubscribe()

	require.NoError(t, h.Press(ctx, "1"))
	h.SetEditValue("Buenas")
	require.NoError(t, h.Press(ctx, "1"))

	done := make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("save did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	require.Equal(t, "T(Buenas)", store.State().History[0].TranslatedText)
}
