// Package storetest provides an in-memory record store for tests. It mirrors
// the semantics the DynamoDB repo provides: per-call atomicity, not-found on
// missing ids, and index-order listing by status.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/models"
)

// Store is an in-memory inspection.Store. The error fields, when set, are
// returned by the corresponding method to simulate store failures.
type Store struct {
	mu    sync.Mutex
	items map[string]models.Inspection

	InsertErr error
	GetErr    error
	ListErr   error
	ApplyErr  error
}

// New returns an empty Store.
func New() *Store {
	return &Store{items: make(map[string]models.Inspection)}
}

// Seed inserts a record directly, bypassing error injection.
func (s *Store) Seed(insp models.Inspection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[insp.InspectionID] = insp
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Insert(_ context.Context, insp models.Inspection) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[insp.InspectionID]; ok {
		return fmt.Errorf("duplicate id %s", insp.InspectionID)
	}
	s.items[insp.InspectionID] = insp
	return nil
}

func (s *Store) Get(_ context.Context, inspectionID string) (*models.Inspection, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	insp, ok := s.items[inspectionID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &insp, nil
}

func (s *Store) ListByStatus(_ context.Context, status models.InspectionStatus) ([]models.Inspection, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Inspection
	for _, insp := range s.items {
		if insp.Status == status {
			out = append(out, insp)
		}
	}
	// GSI1SK is createdAt, queried descending.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]models.Inspection, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Inspection, 0, len(s.items))
	for _, insp := range s.items {
		out = append(out, insp)
	}
	// Map order: deliberately no ordering guarantee, like a table scan.
	return out, nil
}

func (s *Store) Apply(_ context.Context, inspectionID string, p models.Patch, updatedAt string) (*models.Inspection, error) {
	if s.ApplyErr != nil {
		return nil, s.ApplyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	insp, ok := s.items[inspectionID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if p.Checklist != nil {
		insp.Checklist = *p.Checklist
	}
	if p.Notes != nil {
		insp.Notes = *p.Notes
	}
	if p.Images != nil {
		insp.Images = *p.Images
	}
	if p.ClientName != nil {
		insp.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		insp.ClientEmail = *p.ClientEmail
	}
	if p.Status != nil {
		insp.Status = *p.Status
	}
	if p.ReportGeneratedAt != nil {
		insp.ReportGeneratedAt = *p.ReportGeneratedAt
	}
	insp.UpdatedAt = updatedAt
	s.items[inspectionID] = insp
	return &insp, nil
}
