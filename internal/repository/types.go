package repository

import "time"

// ProductListFilter filters the product list query.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Brand        string
	Search       string
	PriceMin     *int64
	PriceMax     *int64
	OnlyActive   bool
	WithCategory bool
	OrderBy      string
}

// OrderListFilter filters the order list query.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filters the user list query.
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter filters the review list query.
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
	MinRating int
}
