package handler

import (
	"context"
	"sort"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeTodoStore struct {
	todos  map[uint]*model.Todo
	nextID uint
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: make(map[uint]*model.Todo), nextID: 1}
}

func (f *fakeTodoStore) List(ctx context.Context) ([]model.Todo, error) {
	out := make([]model.Todo, 0, len(f.todos))
	for _, todo := range f.todos {
		out = append(out, *todo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTodoStore) Get(ctx context.Context, id uint) (*model.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return todo, nil
}

func (f *fakeTodoStore) Create(ctx context.Context, todo *model.Todo) error {
	todo.ID = f.nextID
	f.nextID++
	f.todos[todo.ID] = todo
	return nil
}

func (f *fakeTodoStore) Update(ctx context.Context, todo *model.Todo) error {
	existing, ok := f.todos[todo.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = todo.Name
	*todo = *existing
	return nil
}

func (f *fakeTodoStore) Delete(ctx context.Context, id uint) error {
	if _, ok := f.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}
