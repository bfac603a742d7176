// Package catalog is the in-memory bookstore data behind the reference server:
// books, carts, checkouts, payments and comments.
package catalog

import (
	"cmp"
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const (
	minCommentLength = 5
	paymentTokenLen  = 16
)

type Store struct {
	clock clockwork.Clock

	mu        sync.RWMutex
	books     map[int64]Book
	carts     map[int64]Cart
	checkouts map[uuid.UUID]Checkout
	payments  map[uuid.UUID]Payment // by checkout id
	comments  map[uuid.UUID]Comment
	nextBook  int64
	nextCart  int64
	seq       uint64 // insertion order of checkouts and comments
}

func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:     clock,
		books:     make(map[int64]Book),
		carts:     make(map[int64]Cart),
		checkouts: make(map[uuid.UUID]Checkout),
		payments:  make(map[uuid.UUID]Payment),
		comments:  make(map[uuid.UUID]Comment),
		nextBook:  1,
		nextCart:  1,
	}
}

// ListBooks returns page (1 based) of size books whose title or author contains
// search, ordered by id.
func (s *Store) ListBooks(search string, page, size int) []Book {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	search = strings.ToLower(strings.TrimSpace(search))

	s.mu.RLock()
	matched := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		if search == "" ||
			strings.Contains(strings.ToLower(b.Title), search) ||
			strings.Contains(strings.ToLower(b.Author), search) {
			matched = append(matched, b)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b Book) int { return cmp.Compare(a.ID, b.ID) })

	start := (page - 1) * size
	if start >= len(matched) {
		return []Book{}
	}
	return matched[start:min(start+size, len(matched))]
}

func (s *Store) GetBook(id int64) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, apperrors.Wrapf(apperrors.ErrNotFound, "book %d", id)
	}
	return b, nil
}

func validateBook(b Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "title is required")
	}
	if b.Price < 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "price must not be negative")
	}
	return nil
}

func (s *Store) CreateBook(b Book) (Book, error) {
	if err := validateBook(b); err != nil {
		return Book{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextBook
	s.nextBook++
	s.books[b.ID] = b
	return b, nil
}

// UpdateBook replaces every field of the stored book with b's.
func (s *Store) UpdateBook(b Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[b.ID]; !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "book %d", b.ID)
	}
	s.books[b.ID] = b
	return nil
}

// DeleteBook removes the book and any open cart lines holding it.
func (s *Store) DeleteBook(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "book %d", id)
	}
	delete(s.books, id)
	for cid, c := range s.carts {
		if c.BookID == id && c.Open() {
			delete(s.carts, cid)
		}
	}
	return nil
}

// AddToCart adds amount copies of a book to the user's open cart, merging with an
// existing line for the same book.
func (s *Store) AddToCart(userID string, bookID int64, amount int) (Cart, error) {
	if amount < 1 {
		return Cart{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "amount must be at least 1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[bookID]; !ok {
		return Cart{}, apperrors.Wrapf(apperrors.ErrNotFound, "book %d", bookID)
	}
	for id, c := range s.carts {
		if c.UserID == userID && c.BookID == bookID && c.Open() {
			c.Amount += amount
			s.carts[id] = c
			return c, nil
		}
	}
	c := Cart{ID: s.nextCart, UserID: userID, BookID: bookID, Amount: amount}
	s.nextCart++
	s.carts[c.ID] = c
	return c, nil
}

// CartsByUser returns every cart line of the user, checked out or not, by id.
func (s *Store) CartsByUser(userID string) []Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	carts := make([]Cart, 0)
	for _, c := range s.carts {
		if c.UserID == userID {
			carts = append(carts, c)
		}
	}
	slices.SortFunc(carts, func(a, b Cart) int { return cmp.Compare(a.ID, b.ID) })
	return carts
}

// openCart returns the user's open line id. Lines of other users read as missing.
func (s *Store) openCart(userID string, id int64) (Cart, error) {
	c, ok := s.carts[id]
	if !ok || c.UserID != userID {
		return Cart{}, apperrors.Wrapf(apperrors.ErrNotFound, "cart %d", id)
	}
	if !c.Open() {
		return Cart{}, apperrors.Wrapf(apperrors.ErrConflict, "cart %d is checked out", id)
	}
	return c, nil
}

func (s *Store) UpdateCart(userID string, id int64, amount int) error {
	if amount < 1 {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "amount must be at least 1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.openCart(userID, id)
	if err != nil {
		return err
	}
	c.Amount = amount
	s.carts[id] = c
	return nil
}

func (s *Store) DeleteCart(userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.openCart(userID, id); err != nil {
		return err
	}
	delete(s.carts, id)
	return nil
}

// Checkout moves the given open lines into a new checkout with a pending payment.
func (s *Store) Checkout(userID string, cartIDs []int64) (Checkout, Payment, error) {
	if len(cartIDs) == 0 {
		return Checkout{}, Payment{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "no carts to check out")
	}
	token, err := paymentToken()
	if err != nil {
		return Checkout{}, Payment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	seen := make(map[int64]bool, len(cartIDs))
	for _, id := range cartIDs {
		if seen[id] {
			return Checkout{}, Payment{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "cart %d listed twice", id)
		}
		seen[id] = true
		c, err := s.openCart(userID, id)
		if err != nil {
			return Checkout{}, Payment{}, err
		}
		b, ok := s.books[c.BookID]
		if !ok {
			return Checkout{}, Payment{}, apperrors.Wrapf(apperrors.ErrNotFound, "book %d", c.BookID)
		}
		total += b.Price * float64(c.Amount)
	}

	s.seq++
	checkout := Checkout{ID: uuid.New(), UserID: userID, CreatedAt: s.clock.Now(), seq: s.seq}
	payment := Payment{
		ID:         uuid.New(),
		CheckoutID: checkout.ID,
		UserID:     userID,
		TotalPrice: total,
		StatusID:   PaymentPending,
		Token:      token,
	}
	for _, id := range cartIDs {
		c := s.carts[id]
		c.CheckoutID = checkout.ID
		s.carts[id] = c
	}
	s.checkouts[checkout.ID] = checkout
	s.payments[checkout.ID] = payment
	return checkout, payment, nil
}

func paymentToken() (string, error) {
	b := make([]byte, paymentTokenLen)
	if _, err := rand.Read(b); err != nil {
		return "", apperrors.Wrapf(err, "generating payment token")
	}
	return hex.EncodeToString(b), nil
}

func (s *Store) CheckoutsByUser(userID string) []Checkout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkouts := make([]Checkout, 0)
	for _, c := range s.checkouts {
		if c.UserID == userID {
			checkouts = append(checkouts, c)
		}
	}
	slices.SortFunc(checkouts, func(a, b Checkout) int { return cmp.Compare(a.seq, b.seq) })
	return checkouts
}

// CheckoutItems returns the cart lines of one of the user's checkouts.
func (s *Store) CheckoutItems(userID string, checkoutID uuid.UUID) ([]Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.checkouts[checkoutID]
	if !ok || c.UserID != userID {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "checkout %s", checkoutID)
	}
	items := make([]Cart, 0)
	for _, cart := range s.carts {
		if cart.CheckoutID == checkoutID {
			items = append(items, cart)
		}
	}
	slices.SortFunc(items, func(a, b Cart) int { return cmp.Compare(a.ID, b.ID) })
	return items, nil
}

func (s *Store) PaymentsByUser(userID string) []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]Payment, 0)
	for _, p := range s.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	slices.SortFunc(payments, func(a, b Payment) int {
		return cmp.Compare(s.checkouts[a.CheckoutID].seq, s.checkouts[b.CheckoutID].seq)
	})
	return payments
}

// SetPaymentStatus records the payment provider's verdict for a checkout.
func (s *Store) SetPaymentStatus(checkoutID uuid.UUID, status PaymentStatus) error {
	if status < PaymentPending || status > PaymentCancelled {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "payment status %d", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[checkoutID]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "payment for checkout %s", checkoutID)
	}
	p.StatusID = status
	s.payments[checkoutID] = p
	return nil
}

// HasPurchased reports whether the user holds a paid checkout containing the book.
func (s *Store) HasPurchased(userID string, bookID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPurchased(userID, bookID)
}

func (s *Store) hasPurchased(userID string, bookID int64) bool {
	for _, c := range s.carts {
		if c.UserID != userID || c.BookID != bookID || c.Open() {
			continue
		}
		if p, ok := s.payments[c.CheckoutID]; ok && p.StatusID == PaymentSuccess {
			return true
		}
	}
	return false
}

func validateComment(text string, rating int) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minCommentLength {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "comment must be at least %d characters", minCommentLength)
	}
	if rating < 1 || rating > 5 {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "rating must be between 1 and 5")
	}
	return nil
}

// Comments returns the book's comments, oldest first.
func (s *Store) Comments(bookID int64) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.books[bookID]; !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "book %d", bookID)
	}
	comments := make([]Comment, 0)
	for _, c := range s.comments {
		if c.BookID == bookID {
			comments = append(comments, c)
		}
	}
	slices.SortFunc(comments, func(a, b Comment) int { return cmp.Compare(a.seq, b.seq) })
	return comments, nil
}

// AddComment stores a review. Only buyers of the book may review it.
func (s *Store) AddComment(author Author, bookID int64, text string, rating int) (Comment, error) {
	if err := validateComment(text, rating); err != nil {
		return Comment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[bookID]; !ok {
		return Comment{}, apperrors.Wrapf(apperrors.ErrNotFound, "book %d", bookID)
	}
	if !s.hasPurchased(author.UserID, bookID) {
		return Comment{}, apperrors.Wrapf(apperrors.ErrForbidden, "book %d was not purchased", bookID)
	}
	s.seq++
	c := Comment{
		seq:            s.seq,
		ID:             uuid.New(),
		UserID:         author.UserID,
		Username:       author.Username,
		ProfilePicture: author.ProfilePicture,
		BookID:         bookID,
		Comment:        strings.TrimSpace(text),
		Rating:         rating,
		CreatedAt:      s.clock.Now(),
	}
	s.comments[c.ID] = c
	return c, nil
}

// EditComment rewrites a comment. Only its author may.
func (s *Store) EditComment(author Author, bookID int64, id uuid.UUID, text string, rating int) error {
	if err := validateComment(text, rating); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.BookID != bookID {
		return apperrors.Wrapf(apperrors.ErrNotFound, "comment %s", id)
	}
	if c.UserID != author.UserID {
		return apperrors.Wrapf(apperrors.ErrForbidden, "comment %s belongs to another user", id)
	}
	c.Comment = strings.TrimSpace(text)
	c.Rating = rating
	s.comments[id] = c
	return nil
}

// DeleteComment removes a comment. Its author and admins may.
func (s *Store) DeleteComment(author Author, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "comment %s", id)
	}
	if c.UserID != author.UserID && !author.Admin {
		return apperrors.Wrapf(apperrors.ErrForbidden, "comment %s belongs to another user", id)
	}
	delete(s.comments, id)
	return nil
}
