package memory

import (
	"context"
	"time"

	"auracare/database/repository"
	"auracare/models"
)

type UserRepo struct{ t *table[models.User] }

func NewUserRepo() *UserRepo { return &UserRepo{t: newTable[models.User]()} }

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	if r.t.find(func(u *models.User) bool { return u.Email == user.Email }) != nil {
		return repository.ErrDuplicate
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.t.insert(user.ID, *user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.t.get(id), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	return r.t.find(func(u *models.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) List(_ context.Context, role string, q models.PageQuery) ([]models.User, int64, error) {
	users := r.t.filter(func(u *models.User) bool { return role == "" || u.Role == role })
	sortNewest(users, func(u *models.User) time.Time { return u.CreatedAt })
	items, total := page(users, q)
	return items, total, nil
}

func (r *UserRepo) UpdateFCMToken(_ context.Context, id, token string) error {
	if !r.t.mutate(id, func(u *models.User) bool { u.FCMToken = token; return true }) {
		return repository.ErrNotFound
	}
	return nil
}

type CustomerRepo struct{ t *table[models.Customer] }

func NewCustomerRepo() *CustomerRepo { return &CustomerRepo{t: newTable[models.Customer]()} }

func (r *CustomerRepo) Create(_ context.Context, c *models.Customer) error {
	if r.t.find(func(x *models.Customer) bool { return x.UserID == c.UserID }) != nil {
		return repository.ErrDuplicate
	}
	stamp(&c.CreatedAt, &c.UpdatedAt)
	r.t.insert(c.ID, *c)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*models.Customer, error) {
	return r.t.get(id), nil
}

func (r *CustomerRepo) GetByUserID(_ context.Context, userID string) (*models.Customer, error) {
	return r.t.find(func(c *models.Customer) bool { return c.UserID == userID }), nil
}
