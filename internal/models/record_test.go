package models

import (
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{"ATIVO", StatusActive, true},
		{"ativo", StatusActive, true},
		{" bloqueado ", StatusBlocked, true},
		{"PENDENTE", StatusPending, true},
		{"inativo", StatusInactive, true},
		{"ARCHIVED", Status("ARCHIVED"), false},
		{"", Status(""), false},
	}

	for _, test := range tests {
		status, ok := ParseStatus(test.input)
		if status != test.expected || ok != test.ok {
			t.Errorf("ParseStatus(%q) = (%s, %v), expected (%s, %v)", test.input, status, ok, test.expected, test.ok)
		}
	}
}

func TestNextStatus(t *testing.T) {
	if got := NextStatus("", true); got != StatusActive {
		t.Errorf("Expected ATIVO after empty, got %s", got)
	}
	if got := NextStatus(StatusBlocked, true); got != "" {
		t.Errorf("Expected empty after BLOQUEADO when empty allowed, got %s", got)
	}
	if got := NextStatus(StatusBlocked, false); got != StatusActive {
		t.Errorf("Expected wrap to ATIVO, got %s", got)
	}
	if got := NextStatus("", false); got != StatusActive {
		t.Errorf("Expected ATIVO for empty when empty not allowed, got %s", got)
	}
}

func TestNewRecordTrimsFields(t *testing.T) {
	record := NewRecord("  Ana ", " ana@example.com ", " 11 9999 ", " Rua A ", 1500, 2, StatusActive, "  vip ")

	if record.Name != "Ana" || record.Email != "ana@example.com" || record.Phone != "11 9999" ||
		record.Address != "Rua A" || record.Observations != "vip" {
		t.Errorf("Fields were not trimmed: %+v", record)
	}
	if !record.IsNew() {
		t.Error("Record without id should be new")
	}
	if record.HasPhoto() {
		t.Error("Record should have no photo by default")
	}
}

func TestRecordSetPhoto(t *testing.T) {
	record := &Record{}

	record.SetPhoto(" data:image/png;base64,AAAA ")
	if !record.HasPhoto() || record.PhotoRef() != "data:image/png;base64,AAAA" {
		t.Errorf("Unexpected photo: %q", record.PhotoRef())
	}

	record.SetPhoto("   ")
	if record.Photo != nil {
		t.Error("Blank photo reference should clear the photo")
	}
}

func TestRecordDiff(t *testing.T) {
	before := Record{ID: 1, Name: "Ana", Email: "ana@example.com", Income: 100, Status: StatusActive}
	after := before.Clone()
	after.Email = "ana@new.com"
	after.Status = StatusBlocked
	after.SetPhoto("p.png")

	changes := before.Diff(&after)
	if len(changes) != 3 {
		t.Fatalf("Expected 3 changes, got %d: %v", len(changes), changes)
	}
	if changes["email"][1] != "ana@new.com" {
		t.Errorf("Unexpected email change: %v", changes["email"])
	}
	if changes["status"][0] != StatusActive {
		t.Errorf("Unexpected status change: %v", changes["status"])
	}
	if _, ok := changes["photo"]; !ok {
		t.Error("Expected photo change")
	}
}
