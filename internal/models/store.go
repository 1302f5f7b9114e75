package models

// RecordStore is the local copy of the remote collection. It has a single
// owner (the UI update loop) and does no locking.
type RecordStore struct {
	records []Record
	loaded  bool
}

func NewRecordStore() *RecordStore {
	return &RecordStore{records: []Record{}}
}

// Replace swaps the whole sequence for a freshly loaded one, keeping the
// server's order.
func (s *RecordStore) Replace(records []Record) {
	next := make([]Record, len(records))
	for i, record := range records {
		next[i] = record.Clone()
	}
	s.records = next
	s.loaded = true
}

// Upsert stores a record the backend has confirmed. A matching id is
// replaced in place; an unknown id (a confirmed create) is appended.
func (s *RecordStore) Upsert(record Record) {
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record.Clone()
			return
		}
	}
	s.records = append(s.records, record.Clone())
}

// Remove deletes the record with the given id and reports whether it was
// present.
func (s *RecordStore) Remove(id int64) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *RecordStore) FindByID(id int64) (Record, bool) {
	for _, record := range s.records {
		if record.ID == id {
			return record.Clone(), true
		}
	}
	return Record{}, false
}

// Records returns a copy of the current sequence.
func (s *RecordStore) Records() []Record {
	out := make([]Record, len(s.records))
	for i, record := range s.records {
		out[i] = record.Clone()
	}
	return out
}

func (s *RecordStore) Len() int {
	return len(s.records)
}

// Loaded reports whether at least one load has succeeded.
func (s *RecordStore) Loaded() bool {
	return s.loaded
}

// CountByStatus is used by the home screen summary.
func (s *RecordStore) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, record := range s.records {
		counts[record.Status]++
	}
	return counts
}
