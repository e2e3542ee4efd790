package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/repository"
)

type fakeTasks struct {
	byID map[uuid.UUID]*model.Task

	lastFilter model.TaskFilter
}

var _ repository.TaskRepository = (*fakeTasks)(nil)

func newFakeTasks() *fakeTasks { return &fakeTasks{byID: map[uuid.UUID]*model.Task{}} }

func (f *fakeTasks) Create(_ context.Context, t *model.Task) error {
	cpy := *t
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTasks) GetByID(_ context.Context, userID, id uuid.UUID) (*model.Task, error) {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTasks) List(_ context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	f.lastFilter = filter
	var out []model.Task
	for _, t := range f.byID {
		if t.UserID != userID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, userID, id uuid.UUID, p model.TaskPatch) (*model.Task, error) {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	c := *t
	return &c, nil
}

func (f *fakeTasks) Delete(_ context.Context, userID, id uuid.UUID) error {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestTasks_Create_AssignsIDAndOwner(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	owner := uuid.Must(uuid.NewV4())

	created, err := s.Create(context.Background(), owner, model.Task{Title: "buy milk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil || created.UserID != owner {
		t.Fatalf("id/owner not assigned: %+v", created)
	}
	if _, ok := repo.byID[created.ID]; !ok {
		t.Fatalf("task not stored")
	}
}

func TestTasks_List_ClampsLimit(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	owner := uuid.Must(uuid.NewV4())

	cases := []struct {
		in   model.TaskFilter
		want model.TaskFilter
	}{
		{model.TaskFilter{}, model.TaskFilter{Skip: 0, Limit: 50}},
		{model.TaskFilter{Skip: -3, Limit: 0}, model.TaskFilter{Skip: 0, Limit: 50}},
		{model.TaskFilter{Limit: 1000}, model.TaskFilter{Limit: 100}},
		{model.TaskFilter{Skip: 7, Limit: 20}, model.TaskFilter{Skip: 7, Limit: 20}},
	}
	for _, c := range cases {
		if _, err := s.List(context.Background(), owner, c.in); err != nil {
			t.Fatalf("List: %v", err)
		}
		if repo.lastFilter.Skip != c.want.Skip || repo.lastFilter.Limit != c.want.Limit {
			t.Fatalf("filter %+v: got %+v want %+v", c.in, repo.lastFilter, c.want)
		}
	}
}

func TestTasks_OwnerIsolation(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	owner := uuid.Must(uuid.NewV4())
	stranger := uuid.Must(uuid.NewV4())

	created, err := s.Create(context.Background(), owner, model.Task{Title: "secret"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Get(context.Background(), stranger, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign get: want ErrNotFound, got %v", err)
	}
	title := "hijack"
	if _, err := s.Update(context.Background(), stranger, created.ID, model.TaskPatch{Title: &title}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign update: want ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), stranger, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign delete: want ErrNotFound, got %v", err)
	}

	if _, err := s.Get(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}
