package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"todo-api/internal/domain"
)

// TodoFilter narrows a todo listing. Zero values mean "no filter" except
// OwnerID, which callers always set to scope results to one account.
type TodoFilter struct {
	OwnerID   string
	Completed *bool
	// Day restricts results to items created within [Day, Day+24h).
	Day *time.Time
}

// TodoRepository defines the data operations for todo items.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	List(ctx context.Context, filter TodoFilter) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id uint) error
}

// gormTodoRepository implements TodoRepository using GORM.
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List returns todos matching the filter, always ordered by id ascending.
func (r *gormTodoRepository) List(ctx context.Context, filter TodoFilter) ([]domain.Todo, error) {
	query := r.db.WithContext(ctx).Model(&domain.Todo{})
	if filter.OwnerID != "" {
		query = query.Where("created_by = ?", filter.OwnerID)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Day != nil {
		start := *filter.Day
		end := start.Add(24 * time.Hour)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var todos []domain.Todo
	if err := query.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	// Save writes every column and refreshes updated_at even when the
	// caller submitted values identical to what is stored.
	return r.db.WithContext(ctx).Save(todo).Error
}

func (r *gormTodoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Todo{}, id).Error
}
