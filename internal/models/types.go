// Package models defines the data models used in the application.
package models

// InspectionStatus represents the lifecycle status of an inspection.
type InspectionStatus string

// Well-known statuses. Update accepts caller-supplied values beyond these;
// the secondary index is keyed off whatever string is stored.
const (
	StatusDraft           InspectionStatus = "DRAFT"
	StatusSubmitted       InspectionStatus = "SUBMITTED"
	StatusReportGenerated InspectionStatus = "REPORT_GENERATED"
)

// Rating is one checklist category's assessed condition.
type Rating string

// Possible values for Rating.
const (
	RatingGood Rating = "Good"
	RatingFair Rating = "Fair"
	RatingPoor Rating = "Poor"
)

// Checklist is the fixed five-category condition assessment. Each field is
// nil until rated; the struct shape guarantees no category is ever added or
// removed.
type Checklist struct {
	Roof       *Rating `dynamodbav:"roof" json:"roof"`
	Foundation *Rating `dynamodbav:"foundation" json:"foundation"`
	Plumbing   *Rating `dynamodbav:"plumbing" json:"plumbing"`
	Electrical *Rating `dynamodbav:"electrical" json:"electrical"`
	HVAC       *Rating `dynamodbav:"hvac" json:"hvac"`
}

// Values returns the five ratings in declaration order.
func (c Checklist) Values() [5]*Rating {
	return [5]*Rating{c.Roof, c.Foundation, c.Plumbing, c.Electrical, c.HVAC}
}

// Complete reports whether every category has been rated.
func (c Checklist) Complete() bool {
	for _, v := range c.Values() {
		if v == nil {
			return false
		}
	}
	return true
}

// ImageRef points at an uploaded image in the blob store. The reference is
// attached to an inspection by the caller after a granted upload completes.
type ImageRef struct {
	ImageID     string `dynamodbav:"imageId" json:"imageId"`
	S3Key       string `dynamodbav:"s3Key" json:"s3Key"`
	Description string `dynamodbav:"description" json:"description"`
	UploadedAt  string `dynamodbav:"uploadedAt" json:"uploadedAt"`
}

// Inspection is the central record for one property inspection engagement.
// The store-internal keys (PK, SK, GSI1PK, GSI1SK) never appear in API
// responses.
type Inspection struct {
	PK     string `dynamodbav:"PK" json:"-"`     // INSPECTION#<id>
	SK     string `dynamodbav:"SK" json:"-"`     // METADATA
	GSI1PK string `dynamodbav:"GSI1PK" json:"-"` // STATUS#<status>
	GSI1SK string `dynamodbav:"GSI1SK" json:"-"` // createdAt

	InspectionID      string           `dynamodbav:"inspectionId" json:"inspectionId"`
	PropertyAddress   string           `dynamodbav:"propertyAddress" json:"propertyAddress"`
	InspectorName     string           `dynamodbav:"inspectorName" json:"inspectorName"`
	InspectorEmail    string           `dynamodbav:"inspectorEmail" json:"inspectorEmail"`
	ClientName        string           `dynamodbav:"clientName" json:"clientName"`
	ClientEmail       string           `dynamodbav:"clientEmail" json:"clientEmail"`
	Status            InspectionStatus `dynamodbav:"status" json:"status"`
	Checklist         Checklist        `dynamodbav:"checklist" json:"checklist"`
	Notes             string           `dynamodbav:"notes" json:"notes"`
	Images            []ImageRef       `dynamodbav:"images" json:"images"`
	CreatedAt         string           `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt         string           `dynamodbav:"updatedAt" json:"updatedAt"`
	ReportGeneratedAt string           `dynamodbav:"reportGeneratedAt,omitempty" json:"reportGeneratedAt,omitempty"`
}

// Patch is a partial update to an inspection: a field is applied only when
// its pointer is non-nil. It unmarshals directly from the PUT request body,
// so only the mutable subset is exposed to JSON.
type Patch struct {
	Checklist   *Checklist        `json:"checklist"`
	Notes       *string           `json:"notes"`
	Images      *[]ImageRef       `json:"images"`
	ClientName  *string           `json:"clientName"`
	ClientEmail *string           `json:"clientEmail"`
	Status      *InspectionStatus `json:"status"`

	// Set by the report generator only; not settable over the wire.
	ReportGeneratedAt *string `json:"-"`
}

// Updates returns the attribute-name to new-value mapping for the fields the
// patch carries. The record store applies the whole map as one atomic merge;
// a status change additionally rewrites the index projection in the same
// write.
func (p Patch) Updates() map[string]any {
	u := make(map[string]any)
	if p.Checklist != nil {
		u["checklist"] = *p.Checklist
	}
	if p.Notes != nil {
		u["notes"] = *p.Notes
	}
	if p.Images != nil {
		u["images"] = *p.Images
	}
	if p.ClientName != nil {
		u["clientName"] = *p.ClientName
	}
	if p.ClientEmail != nil {
		u["clientEmail"] = *p.ClientEmail
	}
	if p.Status != nil {
		u["status"] = *p.Status
	}
	if p.ReportGeneratedAt != nil {
		u["reportGeneratedAt"] = *p.ReportGeneratedAt
	}
	return u
}

// Identity is a name/email pair embedded in a report.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReportSummary aggregates the checklist into an overall condition.
type ReportSummary struct {
	Checklist        Checklist `json:"checklist"`
	OverallCondition Rating    `json:"overallCondition"`
	Notes            string    `json:"notes"`
	TotalImages      int       `json:"totalImages"`
}

// Report is the derived document assembled at generation time. It snapshots
// the inspection by value and is not persisted as its own entity.
type Report struct {
	ReportID        string        `json:"reportId"`
	InspectionID    string        `json:"inspectionId"`
	GeneratedAt     string        `json:"generatedAt"`
	PropertyAddress string        `json:"propertyAddress"`
	Inspector       Identity      `json:"inspector"`
	Client          Identity      `json:"client"`
	Summary         ReportSummary `json:"summary"`
	Images          []ImageRef    `json:"images"`
}

// EventTypeReportGenerated is the single event type on the notification
// channel.
const EventTypeReportGenerated = "REPORT_GENERATED"

// Event is the notification payload published when a report is generated.
type Event struct {
	Type            string `json:"type"`
	InspectionID    string `json:"inspectionId"`
	ReportID        string `json:"reportId"`
	PropertyAddress string `json:"propertyAddress"`
	InspectorEmail  string `json:"inspectorEmail"`
	ClientEmail     string `json:"clientEmail"`
	GeneratedAt     string `json:"generatedAt"`
}
