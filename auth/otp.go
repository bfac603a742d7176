package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const (
	otpDigits = 6
	otpTTL    = 5 * time.Minute
)

type otpEntry struct {
	code    string
	expires time.Time
}

// OTPStore keeps the latest one time password per email. Codes are single use.
type OTPStore struct {
	clock clockwork.Clock
	mu    sync.Mutex
	codes map[string]otpEntry
}

func NewOTPStore(clock clockwork.Clock) *OTPStore {
	return &OTPStore{
		clock: clock,
		codes: make(map[string]otpEntry),
	}
}

// Issue replaces any outstanding code for email with a fresh six digit one.
func (s *OTPStore) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", apperrors.Wrapf(err, "generating otp")
	}
	code := fmt.Sprintf("%0*d", otpDigits, n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key(email)] = otpEntry{code: code, expires: s.clock.Now().Add(otpTTL)}
	return code, nil
}

func (s *OTPStore) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[key(email)]
	if !ok {
		return apperrors.ErrInvalidOTP
	}
	if s.clock.Now().After(entry.expires) {
		delete(s.codes, key(email))
		return apperrors.Wrapf(apperrors.ErrInvalidOTP, "expired")
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return apperrors.ErrInvalidOTP
	}
	delete(s.codes, key(email))
	return nil
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
