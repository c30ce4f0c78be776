package client_test

import (
	"context"
	"sync"

	"alpine/translate/internal/client"
)

// fakeBackend records calls; hooks override the default in-memory behavior.
type fakeBackend struct {
	mu      sync.Mutex
	creates []client.Input
	updates []client.Input
	deletes []string

	createFn func(client.Input) (client.Record, error)
	updateFn func(id string, in client.Input) (client.Record, error)
	deleteFn func(id string) error
	list     []client.Record
	listErr  error
}

func (f *fakeBackend) Create(_ context.Context, in client.Input) (client.Record, error) {
	f.mu.Lock()
	f.creates = append(f.creates, in)
	fn := f.createFn
	f.mu.Unlock()
	if fn != nil {
		return fn(in)
	}
	return client.Record{ID: "1", SourceText: in.SourceText, TranslatedText: "T(" + in.SourceText + ")", SourceLang: in.SourceLang, TargetLang: in.TargetLang}, nil
}

func (f *fakeBackend) List(context.Context) ([]client.Record, error) {
	return f.list, f.listErr
}

func (f *fakeBackend) Update(_ context.Context, id string, in client.Input) (client.Record, error) {
	f.mu.Lock()
	f.updates = append(f.updates, in)
	fn := f.updateFn
	f.mu.Unlock()
	if fn != nil {
		return fn(id, in)
	}
	return client.Record{ID: id, SourceText: in.SourceText, TranslatedText: "T(" + in.SourceText + ")", SourceLang: in.SourceLang, TargetLang: in.TargetLang}, nil
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	fn := f.deleteFn
	f.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil
}

func (f *fakeBackend) createCalls() []client.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Input(nil), f.creates...)
}
