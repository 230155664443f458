package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/store"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeCategoryStore is an in-memory CategoryStore for service tests.
type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) GetByTitle(_ context.Context, userID uuid.UUID, title string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.UserID == userID && c.Title == title {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

func (f *fakeCategoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

// fakeGoalStore is an in-memory GoalStore for service tests.
type fakeGoalStore struct {
	mu    sync.Mutex
	goals map[uuid.UUID]*domain.Goal
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[uuid.UUID]*domain.Goal)}
}

func (f *fakeGoalStore) Create(_ context.Context, goal *domain.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *goal
	f.goals[goal.ID] = &cp
	return nil
}

func (f *fakeGoalStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[id]
	if !ok {
		return nil, store.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoalStore) GetByTitle(_ context.Context, userID uuid.UUID, title string) (*domain.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.goals {
		if g.UserID == userID && g.Title == title {
			cp := *g
			return &cp, nil
		}
	}
	return nil, store.ErrGoalNotFound
}

func (f *fakeGoalStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) Update(_ context.Context, goal *domain.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[goal.ID]; !ok {
		return store.ErrGoalNotFound
	}
	cp := *goal
	f.goals[goal.ID] = &cp
	return nil
}

func (f *fakeGoalStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[id]; !ok {
		return store.ErrGoalNotFound
	}
	delete(f.goals, id)
	return nil
}

// fakeTaskStore is an in-memory TaskStore for service tests.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func copyTask(t *domain.Task) *domain.Task {
	cp := *t
	if t.Notification != nil {
		n := *t.Notification
		cp.Notification = &n
	}
	return &cp
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(t), nil
}

func (f *fakeTaskStore) GetByTitle(
	_ context.Context,
	userID uuid.UUID,
	categoryID uuid.NullUUID,
	title string,
) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.UserID == userID && t.CategoryID == categoryID && t.Title == title {
			return copyTask(t), nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (f *fakeTaskStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskStore) ListWithNotifications(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		if t.UserID == userID && t.Notification != nil {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	f.tasks[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) StatsByCategory(_ context.Context, _ uuid.UUID) ([]*domain.TaskStatsByCategory, error) {
	return nil, nil
}

func (f *fakeTaskStore) FindDueUnsent(_ context.Context, lower, upper time.Time) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		n := t.Notification
		if n == nil || n.Sent {
			continue
		}
		if n.ScheduledTime.Before(lower) || n.ScheduledTime.After(upper) {
			continue
		}
		out = append(out, copyTask(t))
	}
	return out, nil
}

func (f *fakeTaskStore) MarkNotificationSent(_ context.Context, taskID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.Notification == nil || t.Notification.Sent {
		return false, nil
	}
	t.Notification.Sent = true
	return true, nil
}

var (
	_ store.UserStore     = (*fakeUserStore)(nil)
	_ store.CategoryStore = (*fakeCategoryStore)(nil)
	_ store.GoalStore     = (*fakeGoalStore)(nil)
	_ store.TaskStore     = (*fakeTaskStore)(nil)
)
