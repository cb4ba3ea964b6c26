// Package account is the backend capability the auth flows and the
// registration wizard depend on: look up, create and register accounts.
package account

import (
	"context"

	"github.com/kaamwala/kaamwala_be/internal/models"
)

type Credentials struct {
	Role     models.Role
	Email    string
	CNIC     string
	Password string
}

type NewUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// NewWorker is the finished registration form. The *Ref fields are display
// names of the uploaded files.
type NewWorker struct {
	FullName    string
	Email       string
	Phone       string
	CNIC        string
	Password    string
	ServiceType string
	Experience  string
	Location    string
	Description string

	ProfilePicRef    string
	CNICFrontRef     string
	CNICBackRef      string
	ShowcaseVideoRef string
}

// Service can be backed by a real API without changing its callers.
type Service interface {
	// Login returns the session for the matching account, or an
	// *AccountNotFoundError / *CredentialMismatchError.
	Login(ctx context.Context, cred Credentials) (models.Session, error)
	// Signup creates a customer, or returns *DuplicateAccountError.
	Signup(ctx context.Context, in NewUser) (models.User, error)
	// RegisterWorker stores a worker, or returns *DuplicateAccountError.
	RegisterWorker(ctx context.Context, in NewWorker) (models.Worker, error)
}
