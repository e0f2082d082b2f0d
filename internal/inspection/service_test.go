package inspection

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/models"
	"github.com/propertypulse/inspection-platform/internal/storetest"
)

// tickClock advances one second per Now call so created records have
// distinct, ordered timestamps.
type tickClock struct {
	t time.Time
}

func (c *tickClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newService(store *storetest.Store) *Service {
	return &Service{
		Store: store,
		Clock: &tickClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func rating(r models.Rating) *models.Rating { return &r }

func TestCreateDefaults(t *testing.T) {
	store := storetest.New()
	svc := newService(store)

	insp, err := svc.Create(context.Background(), CreateInput{
		PropertyAddress: "12 Oak Lane",
		InspectorName:   "Dana Reyes",
		InspectorEmail:  "dana@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if insp.Status != models.StatusDraft {
		t.Errorf("status = %s, want DRAFT", insp.Status)
	}
	if insp.Checklist.Complete() {
		t.Error("new checklist should be all null")
	}
	for i, v := range insp.Checklist.Values() {
		if v != nil {
			t.Errorf("checklist value %d = %v, want nil", i, *v)
		}
	}
	if insp.Images == nil || len(insp.Images) != 0 {
		t.Errorf("images = %v, want empty slice", insp.Images)
	}
	if insp.Notes != "" {
		t.Errorf("notes = %q, want empty", insp.Notes)
	}
	if !strings.HasPrefix(insp.InspectionID, "insp_") || len(insp.InspectionID) != len("insp_")+8 {
		t.Errorf("id = %q, want insp_ plus 8 chars", insp.InspectionID)
	}
	if insp.CreatedAt == "" || insp.CreatedAt != insp.UpdatedAt {
		t.Errorf("timestamps createdAt=%q updatedAt=%q", insp.CreatedAt, insp.UpdatedAt)
	}

	got, err := svc.Get(context.Background(), insp.InspectionID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if got.InspectionID != insp.InspectionID || got.PropertyAddress != "12 Oak Lane" ||
		got.InspectorName != "Dana Reyes" || got.Status != models.StatusDraft {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	svc := newService(storetest.New())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		insp, err := svc.Create(context.Background(), CreateInput{
			PropertyAddress: "addr", InspectorName: "n", InspectorEmail: "e@example.com",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[insp.InspectionID] {
			t.Fatalf("duplicate id %s", insp.InspectionID)
		}
		seen[insp.InspectionID] = true
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing address", CreateInput{InspectorName: "n", InspectorEmail: "e"}},
		{"missing inspector name", CreateInput{PropertyAddress: "a", InspectorEmail: "e"}},
		{"missing inspector email", CreateInput{PropertyAddress: "a", InspectorName: "n"}},
		{"blank address", CreateInput{PropertyAddress: "   ", InspectorName: "n", InspectorEmail: "e"}},
		{"empty", CreateInput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storetest.New()
			svc := newService(store)
			if _, err := svc.Create(context.Background(), tt.in); !apperr.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if store.Len() != 0 {
				t.Error("record persisted despite validation failure")
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	svc := newService(storetest.New())
	if _, err := svc.Get(context.Background(), "insp_missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListUnfilteredSortsByCreatedAtDesc(t *testing.T) {
	store := storetest.New()
	svc := newService(store)
	var ids []string
	for i := 0; i < 5; i++ {
		insp, err := svc.Create(context.Background(), CreateInput{
			PropertyAddress: "a", InspectorName: "n", InspectorEmail: "e",
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, insp.InspectionID)
	}
	// Mix statuses; unfiltered ordering must not care.
	status := models.StatusSubmitted
	if _, err := svc.Update(context.Background(), ids[2], models.Patch{Status: &status}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 5 || len(result.Inspections) != 5 {
		t.Fatalf("count = %d, want 5", result.Count)
	}
	for i := 1; i < len(result.Inspections); i++ {
		if result.Inspections[i-1].CreatedAt < result.Inspections[i].CreatedAt {
			t.Fatalf("list not sorted desc at %d: %q < %q",
				i, result.Inspections[i-1].CreatedAt, result.Inspections[i].CreatedAt)
		}
	}
	// Most recently created first.
	if result.Inspections[0].InspectionID != ids[4] {
		t.Errorf("first = %s, want %s", result.Inspections[0].InspectionID, ids[4])
	}
}

func TestListByStatus(t *testing.T) {
	store := storetest.New()
	svc := newService(store)
	var ids []string
	for i := 0; i < 3; i++ {
		insp, _ := svc.Create(context.Background(), CreateInput{
			PropertyAddress: "a", InspectorName: "n", InspectorEmail: "e",
		})
		ids = append(ids, insp.InspectionID)
	}
	status := models.StatusSubmitted
	if _, err := svc.Update(context.Background(), ids[0], models.Patch{Status: &status}); err != nil {
		t.Fatal(err)
	}

	// Lowercase filter must match the stored uppercase status.
	result, err := svc.List(context.Background(), "draft")
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 2 {
		t.Fatalf("draft count = %d, want 2", result.Count)
	}
	// Index order: most recently created first.
	if result.Inspections[0].InspectionID != ids[2] {
		t.Errorf("first draft = %s, want %s", result.Inspections[0].InspectionID, ids[2])
	}
	for _, insp := range result.Inspections {
		if insp.InspectionID == ids[0] {
			t.Error("submitted inspection included in DRAFT list")
		}
	}

	result, err = svc.List(context.Background(), "SUBMITTED")
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 1 || result.Inspections[0].InspectionID != ids[0] {
		t.Fatalf("submitted list = %+v", result)
	}
}

func TestListEmpty(t *testing.T) {
	svc := newService(storetest.New())
	result, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 0 || result.Inspections == nil {
		t.Fatalf("empty list = %+v, want count 0 and non-nil slice", result)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	store := storetest.New()
	svc := newService(store)
	insp, err := svc.Create(context.Background(), CreateInput{
		PropertyAddress: "a", InspectorName: "n", InspectorEmail: "e",
	})
	if err != nil {
		t.Fatal(err)
	}
	cl := models.Checklist{
		Roof:       rating(models.RatingGood),
		Foundation: rating(models.RatingFair),
		Plumbing:   rating(models.RatingGood),
		Electrical: rating(models.RatingGood),
		HVAC:       rating(models.RatingPoor),
	}
	if _, err := svc.Update(context.Background(), insp.InspectionID, models.Patch{Checklist: &cl}); err != nil {
		t.Fatal(err)
	}

	// A notes-only patch must leave checklist, images and status alone and
	// refresh updatedAt.
	notes := "needs gutter work"
	updated, err := svc.Update(context.Background(), insp.InspectionID, models.Patch{Notes: &notes})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q", updated.Notes)
	}
	if updated.Checklist != cl {
		t.Errorf("checklist changed by notes patch: %+v", updated.Checklist)
	}
	if updated.Status != models.StatusDraft {
		t.Errorf("status changed by notes patch: %s", updated.Status)
	}
	if len(updated.Images) != 0 {
		t.Errorf("images changed by notes patch: %v", updated.Images)
	}
	if updated.UpdatedAt <= insp.UpdatedAt {
		t.Errorf("updatedAt not refreshed: %q <= %q", updated.UpdatedAt, insp.UpdatedAt)
	}
	if updated.PropertyAddress != "a" || updated.InspectorName != "n" {
		t.Error("creation-immutable fields changed")
	}
}

func TestUpdateAttachesImages(t *testing.T) {
	store := storetest.New()
	svc := newService(store)
	insp, _ := svc.Create(context.Background(), CreateInput{
		PropertyAddress: "a", InspectorName: "n", InspectorEmail: "e",
	})
	images := []models.ImageRef{{
		ImageID:     "img_01HZXK",
		S3Key:       "inspections/" + insp.InspectionID + "/img_01HZXK.jpg",
		Description: "roof.jpg",
		UploadedAt:  "2026-03-01T12:00:30Z",
	}}
	updated, err := svc.Update(context.Background(), insp.InspectionID, models.Patch{Images: &images})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Images) != 1 || updated.Images[0].ImageID != "img_01HZXK" {
		t.Fatalf("images = %+v", updated.Images)
	}
}

func TestUpdateUnknown(t *testing.T) {
	svc := newService(storetest.New())
	notes := "x"
	if _, err := svc.Update(context.Background(), "insp_missing", models.Patch{Notes: &notes}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
