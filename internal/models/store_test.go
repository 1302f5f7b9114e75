package models

import (
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Name: "Ana Souza", Email: "ana@example.com", Status: StatusActive},
		{ID: 2, Name: "Bruno Lima", Email: "bruno@example.com", Status: StatusBlocked},
		{ID: 3, Name: "Carla Dias", Email: "carla@example.com", Status: StatusPending},
	}
}

func TestRecordStoreReplace(t *testing.T) {
	store := NewRecordStore()
	if store.Loaded() {
		t.Error("New store should not be marked as loaded")
	}

	store.Replace(sampleRecords())

	if !store.Loaded() {
		t.Error("Store should be marked as loaded after Replace")
	}
	if store.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", store.Len())
	}

	records := store.Records()
	for i, want := range []int64{1, 2, 3} {
		if records[i].ID != want {
			t.Errorf("Expected record %d at position %d, got %d", want, i, records[i].ID)
		}
	}

	store.Replace([]Record{{ID: 9, Name: "Zé"}})
	if store.Len() != 1 {
		t.Errorf("Replace should discard previous records, got %d", store.Len())
	}
}

func TestRecordStoreUpsertReplacesOnlyMatchingID(t *testing.T) {
	store := NewRecordStore()
	store.Replace(sampleRecords())

	updated := Record{ID: 2, Name: "Bruno Lima Jr", Email: "bruno.jr@example.com", Status: StatusActive}
	store.Upsert(updated)

	records := store.Records()
	if len(records) != 3 {
		t.Fatalf("Expected 3 records after upsert, got %d", len(records))
	}
	if records[1].Name != "Bruno Lima Jr" || records[1].Status != StatusActive {
		t.Errorf("Record 2 was not replaced: %+v", records[1])
	}
	if records[0].Name != "Ana Souza" || records[2].Name != "Carla Dias" {
		t.Errorf("Other records changed: %+v", records)
	}
	for i, want := range []int64{1, 2, 3} {
		if records[i].ID != want {
			t.Errorf("Order not preserved at %d: got %d", i, records[i].ID)
		}
	}
}

func TestRecordStoreUpsertAppendsUnknownID(t *testing.T) {
	store := NewRecordStore()
	store.Replace(sampleRecords())

	store.Upsert(Record{ID: 4, Name: "Diego"})

	records := store.Records()
	if len(records) != 4 || records[3].ID != 4 {
		t.Errorf("Expected new record appended at the end, got %+v", records)
	}
}

func TestRecordStoreRemove(t *testing.T) {
	store := NewRecordStore()
	store.Replace(sampleRecords())

	if !store.Remove(2) {
		t.Error("Expected Remove to report the record as present")
	}
	if store.Remove(2) {
		t.Error("Second Remove of the same id should be a no-op")
	}
	if store.Remove(42) {
		t.Error("Remove of an unknown id should be a no-op")
	}

	records := store.Records()
	if len(records) != 2 || records[0].ID != 1 || records[1].ID != 3 {
		t.Errorf("Unexpected records after remove: %+v", records)
	}
}

func TestRecordStoreRecordsReturnsCopy(t *testing.T) {
	store := NewRecordStore()
	photo := "https://example.com/a.png"
	store.Replace([]Record{{ID: 1, Name: "Ana", Photo: &photo}})

	records := store.Records()
	records[0].Name = "changed"
	*records[0].Photo = "changed"

	found, ok := store.FindByID(1)
	if !ok {
		t.Fatal("Expected record 1 to be found")
	}
	if found.Name != "Ana" {
		t.Errorf("Store was mutated through Records(): %s", found.Name)
	}
	if found.PhotoRef() != "https://example.com/a.png" {
		t.Errorf("Photo was mutated through Records(): %s", found.PhotoRef())
	}
}

func TestRecordStoreCountByStatus(t *testing.T) {
	store := NewRecordStore()
	store.Replace(append(sampleRecords(), Record{ID: 4, Status: StatusActive}))

	counts := store.CountByStatus()
	if counts[StatusActive] != 2 {
		t.Errorf("Expected 2 active, got %d", counts[StatusActive])
	}
	if counts[StatusBlocked] != 1 {
		t.Errorf("Expected 1 blocked, got %d", counts[StatusBlocked])
	}
	if counts[StatusInactive] != 0 {
		t.Errorf("Expected 0 inactive, got %d", counts[StatusInactive])
	}
}
