package models

import "math"

// Roles a User can hold.
const (
	RoleCustomer = "customer"
	RoleSalon    = "salon"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit inside an int32.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// PageQuery is a 1-based page request.
type PageQuery struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps the page to [1, MaxPage] and the limit to [1, MaxPageLimit].
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

func (q PageQuery) Skip() int64 {
	q = q.Normalize()
	return int64((q.Page - 1) * q.Limit)
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Page is the paginated data shape: { items, pagination }.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPage[T any](items []T, total int64, q PageQuery) *Page[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}
}

// RoundMoney rounds to two decimals.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
