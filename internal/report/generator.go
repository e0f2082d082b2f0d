// Package report derives a summary report from a completed inspection and
// emits the notification event.
package report

import (
	"context"
	"log"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/models"
	"github.com/propertypulse/inspection-platform/internal/platform"
)

// Store is the slice of the record store the generator needs.
type Store interface {
	Get(ctx context.Context, inspectionID string) (*models.Inspection, error)
	Apply(ctx context.Context, inspectionID string, p models.Patch, updatedAt string) (*models.Inspection, error)
}

// Publisher delivers a report event to the notification channel.
type Publisher interface {
	Publish(ctx context.Context, ev models.Event) error
}

// Generator computes and persists report generation.
type Generator struct {
	Store     Store
	Publisher Publisher
	Clock     platform.Clock
}

// New builds a Generator on the system clock. publisher may be nil when no
// notification channel is configured.
func New(store Store, publisher Publisher) *Generator {
	return &Generator{Store: store, Publisher: publisher, Clock: platform.SystemClock{}}
}

// ReportID derives the report identifier from an inspection id.
func ReportID(inspectionID string) string {
	return "report_" + inspectionID
}

// Generate assembles the report for a fully-rated inspection. It persists
// status=REPORT_GENERATED, the index projection, and reportGeneratedAt in one
// atomic patch, then publishes the event. Generation is complete once
// persisted; a publish failure is logged and never rolls anything back.
func (g *Generator) Generate(ctx context.Context, inspectionID string) (*models.Report, error) {
	insp, err := g.Store.Get(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if !insp.Checklist.Complete() {
		return nil, apperr.ErrIncompleteChecklist
	}

	now := platform.ISO(g.Clock.Now())
	status := models.StatusReportGenerated
	if _, err := g.Store.Apply(ctx, inspectionID, models.Patch{
		Status:            &status,
		ReportGeneratedAt: &now,
	}, now); err != nil {
		return nil, err
	}

	rep := &models.Report{
		ReportID:        ReportID(inspectionID),
		InspectionID:    inspectionID,
		GeneratedAt:     now,
		PropertyAddress: insp.PropertyAddress,
		Inspector:       models.Identity{Name: insp.InspectorName, Email: insp.InspectorEmail},
		Client:          models.Identity{Name: insp.ClientName, Email: insp.ClientEmail},
		Summary: models.ReportSummary{
			Checklist:        insp.Checklist,
			OverallCondition: overallCondition(insp.Checklist),
			Notes:            insp.Notes,
			TotalImages:      len(insp.Images),
		},
		Images: insp.Images,
	}

	if g.Publisher != nil {
		ev := models.Event{
			Type:            models.EventTypeReportGenerated,
			InspectionID:    inspectionID,
			ReportID:        rep.ReportID,
			PropertyAddress: insp.PropertyAddress,
			InspectorEmail:  insp.InspectorEmail,
			ClientEmail:     insp.ClientEmail,
			GeneratedAt:     now,
		}
		if err := g.Publisher.Publish(ctx, ev); err != nil {
			log.Printf("report %s: publish event: %v", rep.ReportID, err)
		}
	}
	return rep, nil
}

// overallCondition maps ratings Good=3 Fair=2 Poor=1, averages the five
// categories, and buckets: avg >= 2.5 Good, >= 1.5 Fair, else Poor.
func overallCondition(c models.Checklist) models.Rating {
	scores := map[models.Rating]int{
		models.RatingGood: 3,
		models.RatingFair: 2,
		models.RatingPoor: 1,
	}
	values := c.Values()
	total := 0
	for _, v := range values {
		if v != nil {
			total += scores[*v]
		}
	}
	avg := float64(total) / float64(len(values))
	switch {
	case avg >= 2.5:
		return models.RatingGood
	case avg >= 1.5:
		return models.RatingFair
	default:
		return models.RatingPoor
	}
}
