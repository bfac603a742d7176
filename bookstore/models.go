package bookstore

import "github.com/google/uuid"

type RoleID int

const (
	RoleAdmin    RoleID = 1
	RoleCustomer RoleID = 2
)

func (r RoleID) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

type User struct {
	ID             ID     `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	RoleID         RoleID `json:"roleId"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Book struct {
	ID           ID      `json:"id,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Introduction string  `json:"introduction"`
	Author       string  `json:"author"`
	ReleaseDate  string  `json:"release_date"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
}

type BookQuery struct {
	Search string
	Page   int
	Size   int
}

type BookPage struct {
	Books   []Book
	Page    int
	Size    int
	HasMore bool
}

// CartItem is a line in the user's cart. Items that were checked out keep their
// row but carry the checkout's id.
type CartItem struct {
	ID         ID     `json:"id"`
	UserID     ID     `json:"user_id,omitempty"`
	BookID     ID     `json:"book_id"`
	Amount     int    `json:"amount"`
	CheckoutID string `json:"checkout_id"`
	Book       *Book  `json:"book,omitempty"`
}

// CheckedOut reports whether the item belongs to a checkout. The API marks open
// items with the nil UUID.
func (c CartItem) CheckedOut() bool {
	if c.CheckoutID == "" {
		return false
	}
	id, err := uuid.Parse(c.CheckoutID)
	return err != nil || id != uuid.Nil
}

type Checkout struct {
	ID        ID     `json:"id"`
	UserID    ID     `json:"user_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CheckoutResult struct {
	RedirectURL string `json:"redirect_url"`
	Token       string `json:"token,omitempty"`
}

type PaymentStatus int

const (
	PaymentPending   PaymentStatus = 0
	PaymentSuccess   PaymentStatus = 1
	PaymentDenied    PaymentStatus = 2
	PaymentCancelled PaymentStatus = 3
)

// Settled reports whether the payment reached a final state.
func (s PaymentStatus) Settled() bool {
	return s == PaymentSuccess || s == PaymentDenied || s == PaymentCancelled
}

func (s PaymentStatus) String() string {
	switch s {
	case PaymentSuccess:
		return "success"
	case PaymentDenied, PaymentCancelled:
		return "denied or cancelled"
	default:
		return "waiting for payment"
	}
}

type Payment struct {
	ID         ID            `json:"id"`
	CheckoutID ID            `json:"checkout_id"`
	TotalPrice float64       `json:"total_price"`
	StatusID   PaymentStatus `json:"status_id"`
	Token      string        `json:"token"`
}

// CheckoutSummary joins a checkout with its items, their books and its payment.
type CheckoutSummary struct {
	Checkout   Checkout
	Items      []CartItem
	TotalPrice float64
	Status     PaymentStatus
	Token      string
}

type Comment struct {
	ID             ID     `json:"id"`
	UserID         ID     `json:"user_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	BookID         ID     `json:"book_id"`
	Comment        string `json:"comment"`
	Rating         Rating `json:"rating"`
	CreatedAt      string `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CanEdit reports whether user may edit comment: only its author can.
func CanEdit(user User, comment Comment) bool {
	return user.ID != "" && user.ID == comment.UserID
}

// CanDelete reports whether user may delete comment: its author or an admin.
func CanDelete(user User, comment Comment) bool {
	return CanEdit(user, comment) || user.RoleID == RoleAdmin
}
