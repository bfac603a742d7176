package users

// UserRepo stores accounts. Implementations return copies; callers write changes
// back with Update.
type UserRepo interface {
	// Create assigns the next numeric id. ErrConflict when the email is taken.
	Create(user *User) error
	Update(user *User) error
	Delete(id string) error
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	List(offset, limit int) ([]*User, error)
	SetVerified(email string, verified bool) error
}
