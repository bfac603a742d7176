package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Introduction string  `json:"introduction"`
	Author       string  `json:"author"`
	ReleaseDate  string  `json:"release_date"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
}

// Cart is one line of a user's cart. Open lines carry uuid.Nil as CheckoutID.
type Cart struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	BookID     int64     `json:"book_id"`
	Amount     int       `json:"amount"`
	CheckoutID uuid.UUID `json:"checkout_id"`
}

func (c Cart) Open() bool {
	return c.CheckoutID == uuid.Nil
}

type Checkout struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	seq       uint64
}

type PaymentStatus int

const (
	PaymentPending   PaymentStatus = 0
	PaymentSuccess   PaymentStatus = 1
	PaymentDenied    PaymentStatus = 2
	PaymentCancelled PaymentStatus = 3
)

type Payment struct {
	ID         uuid.UUID     `json:"id"`
	CheckoutID uuid.UUID     `json:"checkout_id"`
	UserID     string        `json:"-"`
	TotalPrice float64       `json:"total_price"`
	StatusID   PaymentStatus `json:"status_id"`
	Token      string        `json:"token"`
}

type Comment struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
	BookID         int64     `json:"book_id"`
	Comment        string    `json:"comment"`
	Rating         int       `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	seq            uint64
}

// Author identifies who writes a comment. Name and picture are copied onto it.
type Author struct {
	UserID         string
	Username       string
	ProfilePicture string
	Admin          bool
}
