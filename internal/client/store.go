package client

import (
	"slices"
	"sync"
)

// Default language pair and prompt bound.
const (
	DefaultSourceLang = "Español"
	DefaultTargetLang = "Inglés"
	MaxPromptLength   = 500
)

// State is a snapshot of everything the UI renders.
type State struct {
	Prompt      string
	FinalPrompt string
	Translation string
	SourceLang  string
	TargetLang  string
	Loading     bool
	History     []Record
}

func (s State) clone() State {
	s.History = slices.Clone(s.History)
	return s
}

// Action is a synchronous state change applied by Store.Dispatch.
type Action interface {
	apply(*State)
}

type (
	// SetPrompt replaces the input text, truncated to MaxPromptLength runes.
	SetPrompt      string
	SetFinalPrompt string
	SetTranslation string
	SetSourceLang  string
	SetTargetLang  string
	SetLoading     bool
	SetHistory     []Record
	AppendRecord   Record
	// ReplaceRecord swaps the entry with the same ID; unknown IDs are ignored.
	ReplaceRecord Record
	RemoveRecord  string
	// InsertRecord puts a record back at Index, clamped to the list bounds.
	InsertRecord struct {
		Index  int
		Record Record
	}
	// SwapLanguages exchanges the pair and clears prompt and translation.
	SwapLanguages struct{}
)

func (a SetPrompt) apply(s *State) {
	r := []rune(string(a))
	if len(r) > MaxPromptLength {
		r = r[:MaxPromptLength]
	}
	s.Prompt = string(r)
}

func (a SetFinalPrompt) apply(s *State) { s.FinalPrompt = string(a) }
func (a SetTranslation) apply(s *State) { s.Translation = string(a) }
func (a SetSourceLang) apply(s *State) { s.SourceLang = string(a) }
func (a SetTargetLang) apply(s *State) { s.TargetLang = string(a) }
func (a SetLoading) apply(s *State) { s.Loading = bool(a) }
func (a SetHistory) apply(s *State) {
	s.History = slices.Clone([]Record(a))
	if s.History == nil {
		s.History = []Record{}
	}
}

func (a AppendRecord) apply(s *State) { s.History = append(slices.Clone(s.History), Record(a)) }

func (a ReplaceRecord) apply(s *State) {
	i := indexOf(s.History, a.ID)
	if i < 0 {
		return
	}
	s.History = slices.Clone(s.History)
	s.History[i] = Record(a)
}

func (a RemoveRecord) apply(s *State) {
	i := indexOf(s.History, string(a))
	if i < 0 {
		return
	}
	s.History = slices.Delete(slices.Clone(s.History), i, i+1)
}

func (a InsertRecord) apply(s *State) {
	i := min(max(a.Index, 0), len(s.History))
	s.History = slices.Insert(slices.Clone(s.History), i, a.Record)
}

func (SwapLanguages) apply(s *State) {
	s.SourceLang, s.TargetLang = s.TargetLang, s.SourceLang
	s.Prompt = ""
	s.Translation = ""
}

func indexOf(history []Record, id string) int {
	return slices.IndexFunc(history, func(r Record) bool { return r.ID == id })
}

// Store is the single client-side state container. Mutations are serialized;
// subscribers receive a snapshot after every dispatch.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewStore() *Store {
	return &Store{
		state: State{
			SourceLang: DefaultSourceLang,
			TargetLang: DefaultTargetLang,
			History:    []Record{},
		},
		subs: make(map[int]func(State)),
	}
}

// Dispatch applies actions in order as one change and notifies subscribers.
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	for _, a := range actions {
		a.apply(&s.state)
	}
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn and returns a func that removes it. Listeners run
// synchronously after each Dispatch, outside the store lock. They may read
// History state but must not start a History save or delete.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
