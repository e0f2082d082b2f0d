// Package inspection implements create/read/update operations on inspection
// records, including field validation and lifecycle defaults.
package inspection

import (
	"context"
	"sort"
	"strings"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/models"
	"github.com/propertypulse/inspection-platform/internal/platform"

	"github.com/google/uuid"
)

// Store is the record-store contract the service depends on. ddb.Repo is the
// production implementation.
type Store interface {
	Insert(ctx context.Context, insp models.Inspection) error
	Get(ctx context.Context, inspectionID string) (*models.Inspection, error)
	ListByStatus(ctx context.Context, status models.InspectionStatus) ([]models.Inspection, error)
	ListAll(ctx context.Context) ([]models.Inspection, error)
	Apply(ctx context.Context, inspectionID string, p models.Patch, updatedAt string) (*models.Inspection, error)
}

// CreateInput carries the fields accepted at creation time.
type CreateInput struct {
	PropertyAddress string `json:"propertyAddress"`
	InspectorName   string `json:"inspectorName"`
	InspectorEmail  string `json:"inspectorEmail"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
}

// ListResult is the payload for list operations.
type ListResult struct {
	Count       int                 `json:"count"`
	Inspections []models.Inspection `json:"inspections"`
}

// Service owns the inspection lifecycle.
type Service struct {
	Store Store
	Clock platform.Clock
}

// New builds a Service on the system clock.
func New(store Store) *Service {
	return &Service{Store: store, Clock: platform.SystemClock{}}
}

// NewID generates an inspection id: insp_ plus an 8-char uuid fragment.
func NewID() string {
	return "insp_" + uuid.NewString()[:8]
}

// Create validates the input, persists a fresh DRAFT inspection with an
// all-null checklist, and returns it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Inspection, error) {
	if strings.TrimSpace(in.PropertyAddress) == "" ||
		strings.TrimSpace(in.InspectorName) == "" ||
		strings.TrimSpace(in.InspectorEmail) == "" {
		return nil, apperr.Validation("Missing required fields: propertyAddress, inspectorName, inspectorEmail")
	}

	now := platform.ISO(s.Clock.Now())
	insp := models.Inspection{
		InspectionID:    NewID(),
		PropertyAddress: in.PropertyAddress,
		InspectorName:   in.InspectorName,
		InspectorEmail:  in.InspectorEmail,
		ClientName:      in.ClientName,
		ClientEmail:     in.ClientEmail,
		Status:          models.StatusDraft,
		Checklist:       models.Checklist{},
		Notes:           "",
		Images:          []models.ImageRef{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Insert(ctx, insp); err != nil {
		return nil, err
	}
	return &insp, nil
}

// Get returns one inspection by id.
func (s *Service) Get(ctx context.Context, inspectionID string) (*models.Inspection, error) {
	return s.Store.Get(ctx, inspectionID)
}

// List returns inspections filtered by status (index order, most recent
// first) or, with an empty filter, every inspection sorted by createdAt
// descending. The filter is uppercased so ?status=draft matches DRAFT.
func (s *Service) List(ctx context.Context, statusFilter string) (*ListResult, error) {
	var (
		items []models.Inspection
		err   error
	)
	if statusFilter != "" {
		status := models.InspectionStatus(strings.ToUpper(statusFilter))
		items, err = s.Store.ListByStatus(ctx, status)
	} else {
		items, err = s.Store.ListAll(ctx)
		if err == nil {
			// RFC3339 UTC strings sort chronologically.
			sort.Slice(items, func(i, j int) bool {
				return items[i].CreatedAt > items[j].CreatedAt
			})
		}
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Inspection{}
	}
	return &ListResult{Count: len(items), Inspections: items}, nil
}

// Update merges a partial-field patch into an existing inspection and
// returns the post-update record. updatedAt always refreshes; a status
// change rewrites the index projection in the same store call.
func (s *Service) Update(ctx context.Context, inspectionID string, p models.Patch) (*models.Inspection, error) {
	if inspectionID == "" {
		return nil, apperr.Validation("Missing inspectionId parameter")
	}
	return s.Store.Apply(ctx, inspectionID, p, platform.ISO(s.Clock.Now()))
}
