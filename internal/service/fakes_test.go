package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository mirroring the gorm error
// contract (ErrRecordNotFound / ErrDuplicatedKey).
type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
	// hideFromLookup simulates the registration race: FindByEmail misses,
	// but the unique index still rejects the insert.
	hideFromLookup bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.hideFromLookup {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// fakeTodoRepo is an in-memory TodoRepository.
type fakeTodoRepo struct {
	todos  map[uint]*domain.Todo
	nextID uint
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[uint]*domain.Todo)}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	r.nextID++
	todo.ID = r.nextID
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *fakeTodoRepo) FindByID(_ context.Context, id uint) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *todo
	return &found, nil
}

func (r *fakeTodoRepo) List(_ context.Context, filter repository.TodoFilter) ([]domain.Todo, error) {
	var todos []domain.Todo
	for _, todo := range r.todos {
		if filter.OwnerID != "" && todo.CreatedBy != filter.OwnerID {
			continue
		}
		if filter.Completed != nil && todo.Completed != *filter.Completed {
			continue
		}
		if filter.Day != nil {
			start := *filter.Day
			end := start.Add(24 * time.Hour)
			if todo.CreatedAt.Before(start) || !todo.CreatedAt.Before(end) {
				continue
			}
		}
		todos = append(todos, *todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	todo.UpdatedAt = time.Now()
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id uint) error {
	delete(r.todos, id)
	return nil
}
