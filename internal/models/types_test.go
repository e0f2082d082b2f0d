package models

import (
	"encoding/json"
	"testing"
)

func rating(r Rating) *Rating { return &r }

func TestChecklistComplete(t *testing.T) {
	var c Checklist
	if c.Complete() {
		t.Fatal("empty checklist reported complete")
	}
	c = Checklist{
		Roof:       rating(RatingGood),
		Foundation: rating(RatingGood),
		Plumbing:   rating(RatingFair),
		Electrical: rating(RatingPoor),
	}
	if c.Complete() {
		t.Fatal("checklist with nil hvac reported complete")
	}
	c.HVAC = rating(RatingGood)
	if !c.Complete() {
		t.Fatal("fully rated checklist reported incomplete")
	}
}

func TestChecklistJSONKeepsAllFiveKeys(t *testing.T) {
	b, err := json.Marshal(Checklist{Roof: rating(RatingGood)})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"roof", "foundation", "plumbing", "electrical", "hvac"} {
		if _, ok := m[key]; !ok {
			t.Errorf("checklist JSON missing key %q", key)
		}
	}
	if len(m) != 5 {
		t.Errorf("checklist JSON has %d keys, want 5", len(m))
	}
	if m["roof"] != "Good" {
		t.Errorf("roof = %v, want Good", m["roof"])
	}
	if m["hvac"] != nil {
		t.Errorf("unrated hvac = %v, want null", m["hvac"])
	}
}

func TestPatchUpdatesOnlySetFields(t *testing.T) {
	notes := "x"
	u := Patch{Notes: &notes}.Updates()
	if len(u) != 1 {
		t.Fatalf("updates = %v, want only notes", u)
	}
	if u["notes"] != "x" {
		t.Fatalf("notes = %v, want x", u["notes"])
	}

	status := StatusSubmitted
	images := []ImageRef{{ImageID: "img_1"}}
	genAt := "2026-01-02T03:04:05Z"
	u = Patch{
		Checklist:         &Checklist{Roof: rating(RatingGood)},
		Images:            &images,
		Status:            &status,
		ReportGeneratedAt: &genAt,
	}.Updates()
	for _, key := range []string{"checklist", "images", "status", "reportGeneratedAt"} {
		if _, ok := u[key]; !ok {
			t.Errorf("updates missing %q", key)
		}
	}
	if _, ok := u["notes"]; ok {
		t.Error("unset notes present in updates")
	}
	if len(u) != 4 {
		t.Errorf("updates has %d entries, want 4", len(u))
	}
}

func TestPatchJSONIgnoresReportGeneratedAt(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"notes":"n","reportGeneratedAt":"2026-01-01T00:00:00Z"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.ReportGeneratedAt != nil {
		t.Error("reportGeneratedAt settable over the wire")
	}
	if p.Notes == nil || *p.Notes != "n" {
		t.Error("notes not decoded")
	}
}

func TestInspectionJSONHidesStoreKeys(t *testing.T) {
	b, err := json.Marshal(Inspection{PK: "INSPECTION#insp_1", SK: "METADATA", GSI1PK: "STATUS#DRAFT", InspectionID: "insp_1"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"PK", "SK", "GSI1PK", "GSI1SK"} {
		if _, ok := m[key]; ok {
			t.Errorf("store key %q leaked into JSON", key)
		}
	}
	if m["inspectionId"] != "insp_1" {
		t.Errorf("inspectionId = %v", m["inspectionId"])
	}
}
