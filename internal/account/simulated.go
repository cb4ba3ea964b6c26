package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/store"
	"github.com/kaamwala/kaamwala_be/internal/utils"
	"github.com/kaamwala/kaamwala_be/internal/validation"
)

// Simulated answers from the store after a fixed delay, standing in for a
// remote accounts API. Cancelling ctx during the delay abandons the call
// before anything is read or written. Duplicate checks run inside the
// store's atomic update, so several instances may share one store.
type Simulated struct {
	Store           store.Store
	Latency         time.Duration
	RegisterLatency time.Duration
}

func NewSimulated(st store.Store, latency, registerLatency time.Duration) *Simulated {
	return &Simulated{
		Store:           st,
		Latency:         latency,
		RegisterLatency: registerLatency,
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", Invalid("password", validation.MsgPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *Simulated) Login(ctx context.Context, cred Credentials) (models.Session, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return models.Session{}, err
	}

	if cred.Role == models.RoleWorker {
		return s.loginWorker(ctx, strings.TrimSpace(cred.CNIC), cred.Password)
	}
	return s.loginUser(ctx, NormalizeEmail(cred.Email), cred.Password)
}

func (s *Simulated) loginUser(ctx context.Context, email, password string) (models.Session, error) {
	users, err := s.Store.Users(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load users: %w", err)
	}

	idx := -1
	for i, u := range users {
		if u.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Session{}, &AccountNotFoundError{Field: "email", Message: MsgUserNotFound}
	}
	u := users[idx]
	if !utils.CheckPassword(u.Password, password) {
		return models.Session{}, &CredentialMismatchError{Field: "password"}
	}

	if !u.LoggedIn {
		now := time.Now().UTC()
		err := s.Store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
			for i := range users {
				if users[i].ID == u.ID {
					users[i].LoggedIn = true
					users[i].UpdatedAt = now
				}
			}
			return users, nil
		})
		if err != nil {
			return models.Session{}, fmt.Errorf("save users: %w", err)
		}
		u.LoggedIn = true
	}
	return models.SessionFromUser(u), nil
}

// Workers register with a unique email but log in by CNIC; the earliest
// registration with that CNIC wins.
func (s *Simulated) loginWorker(ctx context.Context, cnic, password string) (models.Session, error) {
	workers, err := s.Store.Workers(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load workers: %w", err)
	}

	for _, w := range workers {
		if w.CNIC != cnic {
			continue
		}
		if !utils.CheckPassword(w.Password, password) {
			return models.Session{}, &CredentialMismatchError{Field: "password"}
		}
		return models.SessionFromWorker(w), nil
	}
	return models.Session{}, &AccountNotFoundError{Field: "cnic", Message: MsgWorkerNotFound}
}

func (s *Simulated) Signup(ctx context.Context, in NewUser) (models.User, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return models.User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     NormalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Password:  hash,
		Role:      models.RoleUser,
		LoggedIn:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	dup := &DuplicateAccountError{Field: "email", Message: MsgAccountExists}
	err = s.Store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for _, x := range users {
			if x.Email == u.Email {
				return nil, dup
			}
		}
		return append(users, u), nil
	})
	if errors.Is(err, dup) || errors.Is(err, store.ErrDuplicateEmail) {
		return models.User{}, dup
	}
	if err != nil {
		return models.User{}, fmt.Errorf("save users: %w", err)
	}

	logger.Info("customer signed up", "user", u.ID)
	return u, nil
}

func (s *Simulated) RegisterWorker(ctx context.Context, in NewWorker) (models.Worker, error) {
	if err := wait(ctx, s.RegisterLatency); err != nil {
		return models.Worker{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.Worker{}, err
	}

	profilePic := in.ProfilePicRef
	if profilePic == "" {
		profilePic = models.DefaultProfilePic
	}

	now := time.Now().UTC()
	w := models.Worker{
		ID:               uuid.New(),
		FullName:         strings.TrimSpace(in.FullName),
		Email:            NormalizeEmail(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		CNIC:             strings.TrimSpace(in.CNIC),
		Password:         hash,
		ServiceType:      in.ServiceType,
		Experience:       strings.TrimSpace(in.Experience),
		Location:         in.Location,
		Description:      strings.TrimSpace(in.Description),
		ProfilePicRef:    profilePic,
		CNICFrontRef:     in.CNICFrontRef,
		CNICBackRef:      in.CNICBackRef,
		ShowcaseVideoRef: in.ShowcaseVideoRef,
		Role:             models.RoleWorker,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	dup := &DuplicateAccountError{Field: "email", Message: MsgWorkerExists}
	err = s.Store.UpdateWorkers(ctx, func(workers []models.Worker) ([]models.Worker, error) {
		for _, x := range workers {
			if x.Email == w.Email {
				return nil, dup
			}
		}
		return append(workers, w), nil
	})
	if errors.Is(err, dup) || errors.Is(err, store.ErrDuplicateEmail) {
		return models.Worker{}, dup
	}
	if err != nil {
		return models.Worker{}, fmt.Errorf("save workers: %w", err)
	}

	logger.Info("worker registered", "worker", w.ID, "service", w.ServiceType)
	return w, nil
}
