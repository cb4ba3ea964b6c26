// Package auth runs the login, signup and logout flows: validate the form
// locally, ask the account service, then establish or clear the session.
package auth

import (
	"context"
	"strings"

	"github.com/kaamwala/kaamwala_be/internal/account"
	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/nav"
	"github.com/kaamwala/kaamwala_be/internal/session"
	"github.com/kaamwala/kaamwala_be/internal/validation"
)

type Flow struct {
	Accounts account.Service
	Sessions *session.Manager
}

func NewFlow(accounts account.Service, sessions *session.Manager) *Flow {
	return &Flow{Accounts: accounts, Sessions: sessions}
}

// Result tells the caller where to navigate next. Session is nil when the
// flow did not log anyone in.
type Result struct {
	Session  *models.Session
	Redirect string
}

type LoginInput struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	CNIC     string `json:"cnic"`
	Password string `json:"password"`
}

func (f *Flow) Login(ctx context.Context, clientID string, in LoginInput) (Result, error) {
	role, ok := models.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return Result{}, account.Invalid("role", "Unknown account type")
	}

	email := strings.TrimSpace(in.Email)
	cnic := strings.TrimSpace(in.CNIC)

	errs := validation.FieldErrors{}
	if role == models.RoleUser {
		if email == "" {
			errs.Add("email", "Email is required")
		} else if msg := validation.CheckEmail(email); msg != "" {
			errs.Add("email", msg)
		}
	} else {
		if cnic == "" {
			errs.Add("cnic", "CNIC is required")
		} else if msg := validation.CheckNationalID(cnic); msg != "" {
			errs.Add("cnic", msg)
		}
	}
	if in.Password == "" {
		errs.Add("password", "Password is required")
	}
	if !errs.Empty() {
		return Result{}, &account.FieldValidationError{Fields: errs}
	}

	sess, err := f.Accounts.Login(ctx, account.Credentials{
		Role:     role,
		Email:    email,
		CNIC:     cnic,
		Password: in.Password,
	})
	if err != nil {
		return Result{}, err
	}

	if err := f.Sessions.Establish(ctx, clientID, sess); err != nil {
		return Result{}, err
	}
	sess.LoggedIn = true

	logger.Info("login", "client", clientID, "role", sess.Role)
	return Result{Session: &sess, Redirect: nav.Landing(string(sess.Role))}, nil
}

type SignupInput struct {
	Role            string `json:"role"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,kwemail"`
	Phone           string `json:"phone" validate:"required,kwphone"`
	Password        string `json:"password" validate:"required,min=6,kwpwmax"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Terms           bool   `json:"terms" validate:"required"`
}

var signupMessages = map[string]string{
	"name.required":           "Full name is required",
	"email.required":          "Email is required",
	"email.kwemail":           validation.MsgInvalidEmail,
	"phone.required":          "Phone number is required",
	"phone.kwphone":           validation.MsgInvalidPhone,
	"password.required":       "Password is required",
	"password.min":            validation.MsgPasswordTooWeak,
	"password.kwpwmax":        validation.MsgPasswordTooLong,
	"confirmPassword.eqfield": "Passwords do not match",
	"terms.required":          "You must agree to the terms",
}

// Signup creates customers only. A worker signup is sent to the
// registration wizard without touching the store.
func (f *Flow) Signup(ctx context.Context, clientID string, in SignupInput) (Result, error) {
	if role, _ := models.ParseRole(strings.TrimSpace(in.Role)); role == models.RoleWorker {
		return Result{Redirect: nav.BecomeWorker}, nil
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	errs, err := validation.Struct(in, signupMessages)
	if err != nil {
		return Result{}, err
	}
	if !errs.Empty() {
		return Result{}, &account.FieldValidationError{Fields: errs}
	}

	u, err := f.Accounts.Signup(ctx, account.NewUser{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})
	if err != nil {
		return Result{}, err
	}

	sess := models.SessionFromUser(u)
	if err := f.Sessions.Establish(ctx, clientID, sess); err != nil {
		return Result{}, err
	}

	return Result{Session: &sess, Redirect: nav.Home}, nil
}

func (f *Flow) Logout(ctx context.Context, clientID string) (Result, error) {
	if err := f.Sessions.Clear(ctx, clientID); err != nil {
		return Result{}, err
	}
	return Result{Redirect: nav.Login}, nil
}
