package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns all todos ordered by id ascending. An empty table yields
// an empty slice, not an error.
func (r *TodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) Get(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query todo by id failed: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo failed: %w", err)
	}
	return nil
}

// Update replaces the name of an existing todo. Fetch-then-save rather
// than a bare UPDATE: MySQL reports zero affected rows when the new name
// equals the old one, which is indistinguishable from a missing row.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	var existing model.Todo
	if err := r.db.WithContext(ctx).First(&existing, todo.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("query todo for update failed: %w", err)
	}
	existing.Name = todo.Name
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("update todo failed: %w", err)
	}
	*todo = existing
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
