package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kaamwala/kaamwala_be/internal/models"
)

type sessionRow struct {
	ClientID  string                             `gorm:"type:varchar(64);primaryKey"`
	Payload   datatypes.JSONType[models.Session] `gorm:"not null"`
	UpdatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

// GormStore maps collections to tables. PutUsers and PutWorkers upsert each
// record by primary key; records are never deleted.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// uniqueViolation maps a unique index hit (email) to ErrDuplicateEmail.
// gorm translates it when the connection enables TranslateError; the
// message check covers connections that do not.
func uniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint") {
		return ErrDuplicateEmail
	}
	return err
}

func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&models.User{}, &models.Worker{}, &sessionRow{})
}

func (s *GormStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) PutUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	return uniqueViolation(s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&users).Error)
}

// UpdateUsers runs fn in a transaction. Two concurrent inserts of one email
// both pass fn's check; the unique index rejects the second commit.
func (s *GormStore) UpdateUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Order("created_at ASC").Find(&users).Error; err != nil {
			return err
		}
		next, err := fn(users)
		if err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&next).Error
	})
	return uniqueViolation(err)
}

func (s *GormStore) Workers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (s *GormStore) PutWorkers(ctx context.Context, workers []models.Worker) error {
	if len(workers) == 0 {
		return nil
	}
	return uniqueViolation(s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&workers).Error)
}

func (s *GormStore) UpdateWorkers(ctx context.Context, fn func([]models.Worker) ([]models.Worker, error)) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workers []models.Worker
		if err := tx.Order("created_at ASC").Find(&workers).Error; err != nil {
			return err
		}
		next, err := fn(workers)
		if err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&next).Error
	})
	return uniqueViolation(err)
}

func (s *GormStore) Session(ctx context.Context, clientID string) (*models.Session, error) {
	var row sessionRow
	err := s.DB.WithContext(ctx).Where("client_id = ?", clientID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess := row.Payload.Data()
	return &sess, nil
}

func (s *GormStore) SetSession(ctx context.Context, clientID string, sess models.Session) error {
	row := sessionRow{
		ClientID:  clientID,
		Payload:   datatypes.NewJSONType(sess),
		UpdatedAt: time.Now(),
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *GormStore) ClearSession(ctx context.Context, clientID string) error {
	return s.DB.WithContext(ctx).Where("client_id = ?", clientID).Delete(&sessionRow{}).Error
}
