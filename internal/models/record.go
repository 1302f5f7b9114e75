package models

import (
	"strings"
)

type Status string

const (
	StatusActive   Status = "ATIVO"
	StatusInactive Status = "INATIVO"
	StatusPending  Status = "PENDENTE"
	StatusBlocked  Status = "BLOQUEADO"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusPending, StatusBlocked}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsKnown() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human readable form shown in the status selector.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Ativo"
	case StatusInactive:
		return "Inativo"
	case StatusPending:
		return "Pendente"
	case StatusBlocked:
		return "Bloqueado"
	case "":
		return "Todos os status"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire spelling in any case.
func ParseStatus(value string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(value)))
	return s, s.IsKnown()
}

// NextStatus cycles through "" and the known statuses, used by selectors
// where the empty value means "any".
func NextStatus(current Status, allowEmpty bool) Status {
	options := Statuses
	if allowEmpty {
		options = append([]Status{""}, Statuses...)
	}
	for i, s := range options {
		if s == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Record is a user/client entry as held by the client. ID is assigned by
// the backend and never changes afterwards.
type Record struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Income          float64 `json:"income"`
	NumOfDependents int     `json:"numOfDependents"`
	Status          Status  `json:"status"`
	Observations    string  `json:"observations"`
	Photo           *string `json:"photo,omitempty"`
}

// NewRecord builds an unsaved record with trimmed text fields.
func NewRecord(name, email, phone, address string, income float64, dependents int, status Status, observations string) *Record {
	return &Record{
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Phone:           strings.TrimSpace(phone),
		Address:         strings.TrimSpace(address),
		Income:          income,
		NumOfDependents: dependents,
		Status:          status,
		Observations:    strings.TrimSpace(observations),
	}
}

func (r *Record) IsNew() bool {
	return r.ID == 0
}

func (r *Record) HasPhoto() bool {
	return r.Photo != nil && *r.Photo != ""
}

func (r *Record) PhotoRef() string {
	if r.Photo == nil {
		return ""
	}
	return *r.Photo
}

func (r *Record) SetPhoto(ref string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		r.Photo = nil
		return
	}
	r.Photo = &ref
}

// Clone returns a deep copy; Photo is the only pointer field.
func (r Record) Clone() Record {
	if r.Photo != nil {
		photo := *r.Photo
		r.Photo = &photo
	}
	return r
}

// Diff lists the fields that differ between r and other, keyed by wire name.
func (r *Record) Diff(other *Record) map[string][2]interface{} {
	changes := make(map[string][2]interface{})

	if r.Name != other.Name {
		changes["name"] = [2]interface{}{r.Name, other.Name}
	}
	if r.Email != other.Email {
		changes["email"] = [2]interface{}{r.Email, other.Email}
	}
	if r.Phone != other.Phone {
		changes["phone"] = [2]interface{}{r.Phone, other.Phone}
	}
	if r.Address != other.Address {
		changes["address"] = [2]interface{}{r.Address, other.Address}
	}
	if r.Income != other.Income {
		changes["income"] = [2]interface{}{r.Income, other.Income}
	}
	if r.NumOfDependents != other.NumOfDependents {
		changes["numOfDependents"] = [2]interface{}{r.NumOfDependents, other.NumOfDependents}
	}
	if r.Status != other.Status {
		changes["status"] = [2]interface{}{r.Status, other.Status}
	}
	if r.Observations != other.Observations {
		changes["observations"] = [2]interface{}{r.Observations, other.Observations}
	}
	if r.PhotoRef() != other.PhotoRef() {
		changes["photo"] = [2]interface{}{r.PhotoRef(), other.PhotoRef()}
	}

	return changes
}
