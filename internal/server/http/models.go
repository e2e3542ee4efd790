package httpserver

import (
	"net/mail"
	"net/url"
	"strconv"
	"time"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) Validate() error {
	ve := &errs.ValidationError{}
	if n := len(r.Username); n < 3 || n > 32 {
		ve.Add("username", "must be 3-32 characters")
	}
	if !validEmail(r.Email) {
		ve.Add("email", "must be a valid email address")
	}
	if n := len(r.Password); n < 12 || n > 128 {
		ve.Add("password", "must be 12-128 characters")
	}
	return ve.OrNil()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	ve := &errs.ValidationError{}
	if !validEmail(r.Email) {
		ve.Add("email", "must be a valid email address")
	}
	if n := len(r.Password); n < 1 || n > 128 {
		ve.Add("password", "must be 1-128 characters")
	}
	return ve.OrNil()
}

type taskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

func (r *taskCreateRequest) Validate() (model.Task, error) {
	ve := &errs.ValidationError{}
	if n := len(r.Title); n < 1 || n > 200 {
		ve.Add("title", "must be 1-200 characters")
	}
	var t model.Task
	t.Title = r.Title
	if r.Description != nil {
		if len(*r.Description) > 5000 {
			ve.Add("description", "must be at most 5000 characters")
		}
		t.Description = *r.Description
	}
	if r.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *r.DueDate)
		if err != nil {
			ve.Add("dueDate", "must be an RFC 3339 datetime")
		}
		t.DueDate = &due
	}
	if r.Completed != nil {
		t.Completed = *r.Completed
	}
	return t, ve.OrNil()
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

func (r *taskUpdateRequest) Validate() (model.TaskPatch, error) {
	ve := &errs.ValidationError{}
	var p model.TaskPatch
	if r.Title != nil {
		if n := len(*r.Title); n < 1 || n > 200 {
			ve.Add("title", "must be 1-200 characters")
		}
		p.Title = r.Title
	}
	if r.Description != nil {
		if len(*r.Description) > 5000 {
			ve.Add("description", "must be at most 5000 characters")
		}
		p.Description = r.Description
	}
	if r.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *r.DueDate)
		if err != nil {
			ve.Add("dueDate", "must be an RFC 3339 datetime")
		}
		p.DueDate = &due
	}
	p.Completed = r.Completed
	return p, ve.OrNil()
}

// parseTaskFilter validates the list query parameters.
func parseTaskFilter(q url.Values) (model.TaskFilter, error) {
	ve := &errs.ValidationError{}
	var f model.TaskFilter
	switch v := q.Get("completed"); v {
	case "":
	case "true", "false":
		b := v == "true"
		f.Completed = &b
	default:
		ve.Add("completed", "must be true or false")
	}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			ve.Add("skip", "must be a non-negative integer")
		}
		f.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			ve.Add("limit", "must be an integer in 1-100")
		}
		f.Limit = n
	}
	return f, ve.OrNil()
}

func validEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

type userResponse struct {
	User model.PublicUser `json:"user"`
}

type loginResponse struct {
	AccessToken string           `json:"accessToken"`
	User        model.PublicUser `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type taskResponse struct {
	Task *model.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []model.Task `json:"tasks"`
}
