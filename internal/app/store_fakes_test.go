package app

import (
	"context"
	"sort"
	"sync"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// fakeUserStore is a map-backed UserStore for tests.
type fakeUserStore struct {
	mu        sync.Mutex
	users     map[uint]*model.User
	nextID    uint
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeTodoStore is a map-backed TodoStore for tests.
type fakeTodoStore struct {
	mu     sync.Mutex
	todos  map[uint]*model.Todo
	nextID uint
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: make(map[uint]*model.Todo), nextID: 1}
}

func (f *fakeTodoStore) List(ctx context.Context) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Todo, 0, len(f.todos))
	for _, todo := range f.todos {
		out = append(out, *todo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTodoStore) Get(ctx context.Context, id uint) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo, ok := f.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *todo
	return &clone, nil
}

func (f *fakeTodoStore) Create(ctx context.Context, todo *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo.ID = f.nextID
	f.nextID++
	clone := *todo
	f.todos[todo.ID] = &clone
	return nil
}

func (f *fakeTodoStore) Update(ctx context.Context, todo *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.todos[todo.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = todo.Name
	*todo = *existing
	return nil
}

func (f *fakeTodoStore) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}

// recordingPublisher captures published audit events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event model.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}
