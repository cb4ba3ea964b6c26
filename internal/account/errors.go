package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kaamwala/kaamwala_be/internal/validation"
)

// FieldValidationError carries field-scoped input problems.
type FieldValidationError struct {
	Fields validation.FieldErrors
}

func (e *FieldValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// Invalid builds a FieldValidationError with a single message.
func Invalid(field, msg string) *FieldValidationError {
	fe := validation.FieldErrors{}
	fe.Add(field, msg)
	return &FieldValidationError{Fields: fe}
}

type DuplicateAccountError struct {
	Field   string
	Message string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("account with this %s already exists", e.Field)
}

type AccountNotFoundError struct {
	Field   string
	Message string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("no account for this %s", e.Field)
}

type CredentialMismatchError struct {
	Field string
}

func (e *CredentialMismatchError) Error() string { return "incorrect password" }

type MissingArtifactError struct {
	Artifacts []string
	Message   string
}

func (e *MissingArtifactError) Error() string {
	return "missing upload: " + strings.Join(e.Artifacts, ", ")
}

const (
	MsgUserNotFound      = "User account does not exist."
	MsgWorkerNotFound    = "Worker account does not exist."
	MsgIncorrectPassword = "Incorrect password"
	MsgAccountExists     = "Account already exists"
	MsgWorkerExists      = "An account with this email already exists."
)

// FieldErrors maps any of the account errors onto the form fields they
// belong to. ok is false for errors that are not user-recoverable.
func FieldErrors(err error) (validation.FieldErrors, bool) {
	var (
		fve *FieldValidationError
		dup *DuplicateAccountError
		nf  *AccountNotFoundError
		cm  *CredentialMismatchError
		ma  *MissingArtifactError
	)
	out := validation.FieldErrors{}
	switch {
	case errors.As(err, &fve):
		return fve.Fields, true
	case errors.As(err, &dup):
		out.Add(dup.Field, orDefault(dup.Message, MsgAccountExists))
	case errors.As(err, &nf):
		out.Add(nf.Field, orDefault(nf.Message, MsgUserNotFound))
	case errors.As(err, &cm):
		out.Add(cm.Field, MsgIncorrectPassword)
	case errors.As(err, &ma):
		for _, a := range ma.Artifacts {
			out.Add(a, orDefault(ma.Message, "This upload is required"))
		}
	default:
		return nil, false
	}
	return out, true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
