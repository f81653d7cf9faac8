package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"resumeqa/web/internal/backend"
	app_errors "resumeqa/web/internal/errors"
	"resumeqa/web/internal/model"
	"resumeqa/web/internal/repository"
)

// Auth form messages shown on the gate.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgEmailRequired       = "Email is required for registration"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgUsernameTooShort    = "Username must be at least 3 characters"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgAuthFailed          = "An error occurred"
	MsgRegistered          = "Registration successful! Please login now."
)

// LoginForm is what the login form posts.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// RegisterForm is what the register form posts.
type RegisterForm struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
	Email    string `validate:"required,email"`
}

// ValidationError is a local form failure carrying the message to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return app_errors.ErrValidation }

// fieldMessages maps "Field.tag" to the message shown for it.
var fieldMessages = map[string]string{
	"Username.required": MsgCredentialsRequired,
	"Password.required": MsgCredentialsRequired,
	"Email.required":    MsgEmailRequired,
	"Email.email":       MsgEmailInvalid,
	"Username.min":      MsgUsernameTooShort,
	"Password.min":      MsgPasswordTooShort,
}

// AuthService validates the gate forms and performs login and registration
// against the backend. Only a successful login persists a credential.
type AuthService struct {
	repo     repository.CredentialRepository
	validate *validator.Validate
}

func NewAuthService(repo repository.CredentialRepository) *AuthService {
	return &AuthService{repo: repo, validate: validator.New()}
}

// Login validates the form, logs in and persists the credential trio for
// the client. The backend's user id doubles as the bearer token; the caller
// arms the API session with it.
func (s *AuthService) Login(ctx context.Context, api backend.API, clientID string, form LoginForm) (*model.Credential, error) {
	form.Username = strings.TrimSpace(form.Username)
	if strings.TrimSpace(form.Password) == "" {
		form.Password = ""
	}
	if err := s.check(form); err != nil {
		return nil, err
	}

	resp, err := api.Login(ctx, &backend.LoginRequest{Username: form.Username, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	cred := model.Credential{Token: resp.UserID, Username: resp.Username, UserID: resp.UserID}
	if cred.Username == "" {
		cred.Username = form.Username
	}
	if err := s.repo.SaveCredential(ctx, clientID, cred); err != nil {
		slog.Error("Failed to persist credential", "client_id", clientID, "error", err)
		return nil, fmt.Errorf("%w: could not save credential: %w", app_errors.ErrInternal, err)
	}
	return &cred, nil
}

// Register validates the form and registers the user. It issues no session.
func (s *AuthService) Register(ctx context.Context, api backend.API, form RegisterForm) error {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if strings.TrimSpace(form.Password) == "" {
		form.Password = ""
	}
	if err := s.check(form); err != nil {
		return err
	}

	err := api.Register(ctx, &backend.RegisterRequest{Username: form.Username, Email: form.Email, Password: form.Password})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// check returns the single message to show for the first failing rule.
// Missing fields are reported before malformed ones.
func (s *AuthService) check(form interface{}) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", app_errors.ErrValidation, err.Error())
	}

	first := fieldErrs[0]
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			first = fe
			break
		}
	}
	msg, ok := fieldMessages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", first.Field())
	}
	return &ValidationError{Message: msg}
}

// AuthErrorMessage is the text the gate shows for a failed login or
// registration.
func AuthErrorMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return backend.ErrorMessage(err, MsgAuthFailed)
}
