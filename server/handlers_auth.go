package server

import (
	"net/http"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginHandler checks credentials and sets the access and refresh cookies
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		session, err := s.auth.Login(body.Email, body.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.SetSessionCookies(w, r, session)
		writeJSON(w, http.StatusOK, "login success", session.User)
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registration
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		user, err := s.auth.Register(body.Username, body.Email, body.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "user registered, verify the otp sent to your email", user)
	}
}

// SendOTPHandler issues a verification code. There is no mailer; the code is logged.
func (s *Server) SendOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body otpRequest
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		code, err := s.auth.SendOTP(body.Email)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.logger.Info().Str("email", body.Email).Str("otp", code).Msg("otp issued")
		writeMessage(w, http.StatusOK, "otp sent")
	}
}

func (s *Server) VerifyOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body otpRequest
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.auth.VerifyOTP(body.Email, body.OTP); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "account verified")
	}
}

// RefreshHandler spends the refresh_token cookie and re-issues both cookies.
// Any failure answers 401 and clears the client's cookies.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.auth.Refresh(cookieValue(r, refreshTokenCookie))
		if err != nil {
			s.metrics.refreshes.WithLabelValues("rejected").Inc()
			if errorStatus(err) != http.StatusUnauthorized {
				s.writeError(w, r, err)
				return
			}
			s.ClearSessionCookies(w, r)
			writeMessage(w, http.StatusUnauthorized, apperrors.ErrSessionExpired.Error())
			return
		}
		s.metrics.refreshes.WithLabelValues("renewed").Inc()
		s.SetSessionCookies(w, r, session)
		writeMessage(w, http.StatusOK, "session refreshed")
	}
}
