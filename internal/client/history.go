package client

import (
	"context"
	"errors"
	"sync"

	"alpine/translate/internal/logger"
)

// RowState is the edit lifecycle of one history row.
type RowState int

const (
	Viewing RowState = iota
	Editing
	Saving
)

func (s RowState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}

// ErrUnknownRecord is returned for ids not in the local history.
var ErrUnknownRecord = errors.New("record not in history")

// History drives inline edit and delete over the store's history list.
// Saves run in the background; each carries a per-row sequence number and
// only the latest save for a row may write its response into the store.
//
// writeMu orders History's writes to the store and is never held by the
// read accessors, so store subscribers may call RowState and EditValue.
type History struct {
	store *Store
	api   Backend

	writeMu sync.Mutex

	mu        sync.Mutex
	editingID string
	editValue string
	seq       map[string]uint64
	inFlight  map[string]int
	deleting  map[string]bool
	parked    map[string]Record
	wg        sync.WaitGroup
}

func NewHistory(store *Store, api Backend) *History {
	return &History{
		store:    store,
		api:      api,
		seq:      make(map[string]uint64),
		inFlight: make(map[string]int),
		deleting: make(map[string]bool),
		parked:   make(map[string]Record),
	}
}

// Load replaces the local history with the server's list.
func (h *History) Load(ctx context.Context) error {
	records, err := h.api.List(ctx)
	if err != nil {
		logger.Warn("history load failed", "module", "client", "action", "list", "resource", "translation", "result", "failed", "error", err)
		return err
	}
	h.store.Dispatch(SetHistory(records))
	return nil
}

// Press is the row's edit button: it starts editing, or saves when the row
// is already being edited.
func (h *History) Press(ctx context.Context, id string) error {
	h.mu.Lock()
	if h.editingID == id {
		h.mu.Unlock()
		return h.save(ctx, id)
	}
	state := h.store.State()
	i := indexOf(state.History, id)
	if i < 0 {
		h.mu.Unlock()
		return ErrUnknownRecord
	}
	h.editingID = id
	h.editValue = state.History[i].SourceText
	h.mu.Unlock()
	return nil
}

// SetEditValue updates the edit buffer.
func (h *History) SetEditValue(v string) {
	h.mu.Lock()
	h.editValue = v
	h.mu.Unlock()
}

// EditValue returns the edit buffer.
func (h *History) EditValue() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.editValue
}

// RowState reports where id is in its edit lifecycle.
func (h *History) RowState(id string) RowState {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.editingID == id:
		return Editing
	case h.inFlight[id] > 0:
		return Saving
	default:
		return Viewing
	}
}

// Wait blocks until all background saves have finished.
func (h *History) Wait() {
	h.wg.Wait()
}

// save applies the edit locally, clears edit state and sends the update.
func (h *History) save(ctx context.Context, id string) error {
	h.writeMu.Lock()
	h.mu.Lock()
	state := h.store.State()
	i := indexOf(state.History, id)
	if i < 0 {
		h.editingID, h.editValue = "", ""
		h.mu.Unlock()
		h.writeMu.Unlock()
		return ErrUnknownRecord
	}
	optimistic := state.History[i]
	optimistic.SourceText = h.editValue
	h.editingID, h.editValue = "", ""
	h.seq[id]++
	seq := h.seq[id]
	h.inFlight[id]++
	h.wg.Add(1)
	h.mu.Unlock()

	h.store.Dispatch(ReplaceRecord(optimistic))
	h.writeMu.Unlock()

	go func() {
		defer h.wg.Done()
		record, err := h.api.Update(ctx, id, Input{
			SourceText: optimistic.SourceText,
			SourceLang: optimistic.SourceLang,
			TargetLang: optimistic.TargetLang,
		})

		h.writeMu.Lock()
		defer h.writeMu.Unlock()
		h.mu.Lock()
		h.inFlight[id]--
		if h.inFlight[id] == 0 {
			delete(h.inFlight, id)
		}
		current := h.seq[id] == seq
		if err == nil && current && h.deleting[id] {
			// Row is out of the list until the delete resolves.
			h.parked[id] = record
		}
		deleting := h.deleting[id]
		h.mu.Unlock()

		switch {
		case err != nil:
			logger.Warn("history update failed", "module", "client", "action", "update", "resource", "translation", "result", "failed", "translation_id", id, "error", err)
		case !current:
			logger.Debug("stale update discarded", "module", "client", "action", "update", "resource", "translation", "result", "skipped", "translation_id", id)
		case !deleting:
			h.store.Dispatch(ReplaceRecord(record))
		}
	}()
	return nil
}

// Delete removes id locally, then awaits the server. On failure the entry is
// restored at its original position, carrying any save that completed while
// the delete was pending, and the error returned.
func (h *History) Delete(ctx context.Context, id string) error {
	h.writeMu.Lock()
	state := h.store.State()
	i := indexOf(state.History, id)
	if i < 0 {
		h.writeMu.Unlock()
		return ErrUnknownRecord
	}
	removed := state.History[i]

	h.mu.Lock()
	if h.editingID == id {
		h.editingID, h.editValue = "", ""
	}
	h.deleting[id] = true
	h.mu.Unlock()

	h.store.Dispatch(RemoveRecord(id))
	h.writeMu.Unlock()

	err := h.api.Delete(ctx, id)

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.mu.Lock()
	delete(h.deleting, id)
	saved, ok := h.parked[id]
	delete(h.parked, id)
	if err == nil {
		// Responses to earlier saves must not resurrect the row.
		h.seq[id]++
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	logger.Warn("history delete failed", "module", "client", "action", "delete", "resource", "translation", "result", "failed", "translation_id", id, "error", err)
	if ok {
		removed = saved
	}
	h.store.Dispatch(InsertRecord{Index: i, Record: removed})
	return err
}
