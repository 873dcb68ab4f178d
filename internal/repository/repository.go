package repository

import (
	"context"
	"errors"

	"github.com/navya-devv/optirelief/internal/models"
)

var (
	// ErrNotFound indicates a lookup referenced a nonexistent entity.
	ErrNotFound = errors.New("repository: not found")

	// ErrConcurrentModification indicates a volunteer claim lost the race
	// against another assignment run.
	ErrConcurrentModification = errors.New("repository: volunteer claimed concurrently")
)

type AreaRepository interface {
	AddArea(ctx context.Context, a *models.DisasterArea) error
	ListAreas(ctx context.Context) ([]models.DisasterArea, error)
	// UpdateUrgencyScores persists the scores the ranker derived.
	UpdateUrgencyScores(ctx context.Context, areas []models.DisasterArea) error
}

type SupplyRepository interface {
	AddSupplyItem(ctx context.Context, item *models.SupplyItem) error
	ListSupplyItems(ctx context.Context) ([]models.SupplyItem, error)
}

type VolunteerRepository interface {
	ListVolunteers(ctx context.Context) ([]models.Volunteer, error)
	ListAvailableVolunteers(ctx context.Context) ([]models.Volunteer, error)
	// ClaimVolunteers transitions each volunteer available->assigned with
	// the region recorded. Check-and-set: if any volunteer is no longer
	// available, nothing is claimed and ErrConcurrentModification is
	// returned.
	ClaimVolunteers(ctx context.Context, regionByVolunteer map[string]string) error
}

type RegionRepository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
}

type MessageRepository interface {
	AddMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns messages ordered by urgency score descending.
	ListMessages(ctx context.Context) ([]models.Message, error)
}

type MapRepository interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListEdges(ctx context.Context) ([]models.RouteEdge, error)
}
