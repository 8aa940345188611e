package app

import (
	"context"
	"errors"
	"strings"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

type TodoStore interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id uint) (*model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id uint) error
}

type TodoService struct {
	todos  TodoStore
	events EventPublisher
}

func NewTodoService(todos TodoStore, events EventPublisher) *TodoService {
	return &TodoService{todos: todos, events: events}
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	return s.todos.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id uint) (*model.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, name string) (*model.Todo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	todo := &model.Todo{Name: name}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	s.publish(ctx, model.ActionTodoCreated, todo)
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id uint, name string) (*model.Todo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	todo := &model.Todo{ID: id, Name: name}
	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	s.publish(ctx, model.ActionTodoUpdated, todo)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}
	s.publish(ctx, model.ActionTodoDeleted, &model.Todo{ID: id})
	return nil
}

func (s *TodoService) publish(ctx context.Context, action string, todo *model.Todo) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, model.AuditEvent{
		Action:   action,
		EntityID: todo.ID,
		ActorID:  identityID(ctx),
		Detail:   todo.Name,
	})
}

// identityID reads the authenticated user id bound by the auth gate, if
// any. Todo routes are open, so zero is the common case.
func identityID(ctx context.Context) uint {
	if user, ok := IdentityFrom(ctx); ok {
		return user.ID
	}
	return 0
}
