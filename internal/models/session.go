package models

import "github.com/google/uuid"

// Session is the single logged-in identity of one client context. It copies
// the public fields of the User or Worker it was made from; Role always
// matches the originating record.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Role     Role      `json:"role"`
	LoggedIn bool      `json:"loggedIn"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`

	// customer
	Name string `json:"name,omitempty"`

	// worker
	FullName      string `json:"fullName,omitempty"`
	CNIC          string `json:"cnic,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Experience    string `json:"experience,omitempty"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`
	ProfilePicRef string `json:"profilePicRef,omitempty"`
}

func SessionFromUser(u User) Session {
	return Session{
		ID:       u.ID,
		Role:     RoleUser,
		LoggedIn: true,
		Email:    u.Email,
		Phone:    u.Phone,
		Name:     u.Name,
	}
}

func SessionFromWorker(w Worker) Session {
	return Session{
		ID:            w.ID,
		Role:          RoleWorker,
		LoggedIn:      true,
		Email:         w.Email,
		Phone:         w.Phone,
		FullName:      w.FullName,
		CNIC:          w.CNIC,
		ServiceType:   w.ServiceType,
		Experience:    w.Experience,
		Location:      w.Location,
		Description:   w.Description,
		ProfilePicRef: w.ProfilePicRef,
	}
}

// DisplayName is what the header shows for the session owner.
func (s Session) DisplayName() string {
	if s.Role == RoleWorker {
		return s.FullName
	}
	return s.Name
}
