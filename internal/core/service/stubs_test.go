package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

type stubUserRepo struct {
	users       map[string]*domain.User
	calls       int
	findErr     error
	updateErr   error
	passwordSet map[string]string
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{
		users:       make(map[string]*domain.User),
		passwordSet: make(map[string]string),
	}
	for _, u := range users {
		r.users[u.EmployeeID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmployeeID(_ context.Context, employeeID string) (*domain.User, error) {
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[employeeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls++
	if _, exists := r.users[user.EmployeeID]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneUser(user)
	created.ID = "id-" + strconv.Itoa(len(r.users)+1)
	r.users[created.EmployeeID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string, at time.Time) error {
	r.calls++
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.UpdatedAt = at
			r.passwordSet[u.EmployeeID] = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	r.calls++
	for _, u := range r.users {
		if u.ID == id {
			u.Active = active
			u.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// plainHasher keeps tests fast; bcrypt itself is covered in the security package.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (plainHasher) Verify(plaintext, digest string) bool {
	return strings.HasPrefix(digest, "hashed:") && digest == "hashed:"+plaintext
}

type stubDenylist struct {
	used     map[string]time.Time
	released []string
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{used: make(map[string]time.Time)}
}

func (d *stubDenylist) Consume(_ context.Context, id string, expiresAt time.Time) (bool, error) {
	if _, ok := d.used[id]; ok {
		return false, nil
	}
	d.used[id] = expiresAt
	return true, nil
}

func (d *stubDenylist) Release(_ context.Context, id string) error {
	delete(d.used, id)
	d.released = append(d.released, id)
	return nil
}

type captureDelivery struct {
	notices []domain.ResetNotice
	err     error
}

func (c *captureDelivery) Deliver(_ context.Context, n domain.ResetNotice) error {
	if c.err != nil {
		return c.err
	}
	c.notices = append(c.notices, n)
	return nil
}

func activeUser(employeeID string, role domain.Role, password string) *domain.User {
	return &domain.User{
		ID:           "id-" + employeeID,
		EmployeeID:   employeeID,
		FirstName:    "Ada",
		LastName:     "Reyes",
		Role:         role,
		PasswordHash: "hashed:" + password,
		Active:       true,
	}
}
