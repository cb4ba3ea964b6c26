package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/store"
)

// Provider is the public listing of a registered worker. Contact details and
// identity documents stay private.
type Provider struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Specialty   string    `json:"specialty"`
	Location    string    `json:"location"`
	Experience  string    `json:"experience"`
	Bio         string    `json:"bio"`
	ProfilePic  string    `json:"profilePic"`
	ShowcaseRef string    `json:"showcaseVideo,omitempty"`
}

func ProviderFromWorker(w models.Worker) Provider {
	pic := w.ProfilePicRef
	if pic == "" {
		pic = models.DefaultProfilePic
	}
	return Provider{
		ID:          w.ID,
		Name:        w.FullName,
		Specialty:   w.ServiceType,
		Location:    w.Location,
		Experience:  w.Experience,
		Bio:         w.Description,
		ProfilePic:  pic,
		ShowcaseRef: w.ShowcaseVideoRef,
	}
}

// Filter keeps providers whose type and location match exactly, ignoring
// case. An empty criterion matches everything.
type Filter struct {
	Type     string
	Location string
}

func (f Filter) Match(w models.Worker) bool {
	if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(w.ServiceType, t) {
		return false
	}
	if l := strings.TrimSpace(f.Location); l != "" && !strings.EqualFold(w.Location, l) {
		return false
	}
	return true
}

type Service struct {
	Store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

// List returns matching providers in registration order.
func (s *Service) List(ctx context.Context, f Filter) ([]Provider, error) {
	workers, err := s.Store.Workers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workers: %w", err)
	}
	out := make([]Provider, 0, len(workers))
	for _, w := range workers {
		if f.Match(w) {
			out = append(out, ProviderFromWorker(w))
		}
	}
	return out, nil
}
