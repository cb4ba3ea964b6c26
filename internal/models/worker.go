package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultProfilePic = "default-profile.png"

// Worker is a registered service provider. The *Ref fields hold the display
// name of an uploaded file, never its content.
type Worker struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"type:varchar(120);not null" json:"fullName"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string    `gorm:"type:varchar(30)" json:"phone"`
	CNIC     string    `gorm:"type:varchar(15);index" json:"cnic"`
	Password string    `gorm:"not null" json:"password"`

	ServiceType string `gorm:"type:varchar(40);index" json:"serviceType"`
	Experience  string `gorm:"type:varchar(10)" json:"experience"`
	Location    string `gorm:"type:varchar(60);index" json:"location"`
	Description string `gorm:"type:text" json:"description"`

	ProfilePicRef    string `gorm:"type:text" json:"profilePicRef"`
	CNICFrontRef     string `gorm:"type:text" json:"cnicFrontRef"`
	CNICBackRef      string `gorm:"type:text" json:"cnicBackRef"`
	ShowcaseVideoRef string `gorm:"type:text" json:"showcaseVideoRef"`

	Role Role `gorm:"type:varchar(20);not null;default:'worker'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
