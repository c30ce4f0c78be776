package client_test

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/client"
)

func TestStore_Defaults(t *testing.T) {
	s := client.NewStore().State()
	require.Equal(t, "Español", s.SourceLang)
	require.Equal(t, "Inglés", s.TargetLang)
	require.NotNil(t, s.History)
	require.False(t, s.Loading)
}

func TestStore_SetPromptTruncatesRunes(t *testing.T) {
	store := client.NewStore()
	store.Dispatch(client.SetPrompt(strings.Repeat("ñ", 600)))
	require.Equal(t, client.MaxPromptLength, len([]rune(store.State().Prompt)))
}

func TestStore_HistoryActions(t *testing.T) {
	store := client.NewStore()
	a := client.Record{ID: "a", SourceText: "uno"}
	b := client.Record{ID: "b", SourceText: "dos"}
	c := client.Record{ID: "c", SourceText: "tres"}

	store.Dispatch(client.SetHistory([]client.Record{a, b}), client.AppendRecord(c))
	require.Equal(t, []client.Record{a, b, c}, store.State().History)

	b2 := b
	b2.SourceText = "two"
	store.Dispatch(client.ReplaceRecord(b2), client.ReplaceRecord(client.Record{ID: "zzz"}))
	require.Equal(t, []client.Record{a, b2, c}, store.State().History)

	store.Dispatch(client.RemoveRecord("b"))
	require.Equal(t, []client.Record{a, c}, store.State().History)

	store.Dispatch(client.InsertRecord{Index: 1, Record: b})
	require.Equal(t, []client.Record{a, b, c}, store.State().History)

	store.Dispatch(client.InsertRecord{Index: 99, Record: client.Record{ID: "d"}})
	require.Equal(t, "d", store.State().History[3].ID)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := client.NewStore()
	store.Dispatch(client.SetHistory([]client.Record{{ID: "a"}}))

	snap := store.State()
	snap.History[0].ID = "mutated"
	require.Equal(t, "a", store.State().History[0].ID)
}

func TestStore_SwapLanguages(t *testing.T) {
	store := client.NewStore()
	store.Dispatch(client.SetPrompt("Hola"), client.SetTranslation("Hello"), client.SetTargetLang("Francés"))
	store.Dispatch(client.SwapLanguages{})

	s := store.State()
	require.Equal(t, "Francés", s.SourceLang)
	require.Equal(t, "Español", s.TargetLang)
	require.Empty(t, s.Prompt)
	require.Empty(t, s.Translation)
}

func TestStore_Subscribe(t *testing.T) {
	store := client.NewStore()
	var calls atomic.Int32
	var last client.State
	unsubscribe := store.Subscribe(func(s client.State) {
		calls.Add(1)
		last = s
	})

	store.Dispatch(client.SetLoading(true), client.SetFinalPrompt("Hola"))
	require.Equal(t, int32(1), calls.Load())
	require.True(t, last.Loading)
	require.Equal(t, "Hola", last.FinalPrompt)

	unsubscribe()
	store.Dispatch(client.SetLoading(false))
	require.Equal(t, int32(1), calls.Load())
}
