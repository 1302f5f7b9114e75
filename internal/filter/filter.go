// Package filter computes the derived view shown in the search table: the
// records matching every active criterion, in store order, capped at a
// maximum count.
package filter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"rhystmorgan/clientDesk/internal/models"
)

const DefaultMaxResults = 100

// Criteria holds the search predicates. An empty field matches everything.
// Values are matched as typed, whitespace included.
type Criteria struct {
	Name   string
	Email  string
	Status models.Status
}

func (c Criteria) IsEmpty() bool {
	return c.Name == "" && c.Email == "" && c.Status == ""
}

// Describe lists the active filters for the summary panel.
func (c Criteria) Describe() []string {
	if c.IsEmpty() {
		return []string{"Nenhum filtro aplicado"}
	}

	var lines []string
	if c.Name != "" {
		lines = append(lines, fmt.Sprintf("Nome: %s", c.Name))
	}
	if c.Email != "" {
		lines = append(lines, fmt.Sprintf("Email: %s", c.Email))
	}
	if c.Status != "" {
		lines = append(lines, fmt.Sprintf("Status: %s", c.Status))
	}
	return lines
}

// Apply returns the records that satisfy every active predicate, keeping
// their relative order, truncated to max. max <= 0 means DefaultMaxResults.
// The input slice is never modified.
func Apply(records []models.Record, criteria Criteria, max int) []models.Record {
	if max <= 0 {
		max = DefaultMaxResults
	}

	c := criteria
	fold := cases.Fold()
	name := fold.String(c.Name)
	email := fold.String(c.Email)

	result := make([]models.Record, 0, min(len(records), max))
	for _, record := range records {
		if len(result) == max {
			break
		}
		if name != "" && !strings.Contains(fold.String(record.Name), name) {
			continue
		}
		if email != "" && !strings.Contains(fold.String(record.Email), email) {
			continue
		}
		if c.Status != "" && record.Status != c.Status {
			continue
		}
		result = append(result, record.Clone())
	}

	return result
}

// Count returns how many records match without the max cap, so the view can
// tell the user when results were truncated.
func Count(records []models.Record, criteria Criteria) int {
	return len(Apply(records, criteria, len(records)+1))
}
