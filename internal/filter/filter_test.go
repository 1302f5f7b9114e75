package filter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rhystmorgan/clientDesk/internal/models"
)

func fixture() []models.Record {
	return []models.Record{
		{ID: 1, Name: "Ana Souza", Email: "ana@empresa.com", Status: models.StatusActive},
		{ID: 2, Name: "Bruno Lima", Email: "bruno@gmail.com", Status: models.StatusBlocked},
		{ID: 3, Name: "JOÃO Pereira", Email: "joao@EMPRESA.com", Status: models.StatusActive},
		{ID: 4, Name: "Mariana Alves", Email: "mari@gmail.com", Status: models.StatusPending},
		{ID: 5, Name: "Luana Rocha", Email: "luana@empresa.com", Status: models.StatusInactive},
	}
}

func ids(records []models.Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		max      int
		want     []int64
	}{
		{"empty criteria is identity", Criteria{}, 0, []int64{1, 2, 3, 4, 5}},
		{"name substring case-insensitive", Criteria{Name: "ANA"}, 0, []int64{1, 4, 5}},
		{"name with accents folds case", Criteria{Name: "joão"}, 0, []int64{3}},
		{"email substring case-insensitive", Criteria{Email: "empresa.COM"}, 0, []int64{1, 3, 5}},
		{"exact status", Criteria{Status: models.StatusActive}, 0, []int64{1, 3}},
		{"predicates are AND-combined", Criteria{Name: "a", Email: "gmail", Status: models.StatusPending}, 0, []int64{4}},
		{"no match is empty", Criteria{Name: "zzz"}, 0, []int64{}},
		{"whitespace is matched as typed", Criteria{Name: " P"}, 0, []int64{3}},
		{"whitespace-only name is not ignored", Criteria{Name: "  "}, 0, []int64{}},
		{"whitespace-only email matches nothing", Criteria{Email: "\t"}, 0, []int64{}},
		{"truncates to max", Criteria{}, 2, []int64{1, 2}},
		{"truncates matches in original order", Criteria{Email: "empresa"}, 2, []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(fixture(), tt.criteria, tt.max))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyStatusScenario(t *testing.T) {
	store := []models.Record{
		{ID: 1, Name: "Ana", Status: "ATIVO"},
		{ID: 2, Name: "Bia", Status: "BLOQUEADO"},
	}

	got := Apply(store, Criteria{Status: "ATIVO"}, DefaultMaxResults)
	if diff := cmp.Diff(store[:1], got); diff != "" {
		t.Errorf("Expected only record 1 (-want +got):\n%s", diff)
	}
}

func TestApplyStatusIsExact(t *testing.T) {
	records := []models.Record{
		{ID: 1, Status: "ATIVO"},
		{ID: 2, Status: "ativo"},
		{ID: 3, Status: "INATIVO"},
	}

	got := Apply(records, Criteria{Status: models.StatusActive}, 0)
	for _, record := range got {
		if record.Status != models.StatusActive {
			t.Errorf("Record %d has status %q, expected exactly %q", record.ID, record.Status, models.StatusActive)
		}
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 record, got %d", len(got))
	}
}

func TestApplyDefaultMax(t *testing.T) {
	records := make([]models.Record, 250)
	for i := range records {
		records[i] = models.Record{ID: int64(i + 1), Name: fmt.Sprintf("Cliente %d", i+1)}
	}

	got := Apply(records, Criteria{}, 0)
	if len(got) != DefaultMaxResults {
		t.Fatalf("Expected %d records, got %d", DefaultMaxResults, len(got))
	}
	if diff := cmp.Diff(records[:DefaultMaxResults], got); diff != "" {
		t.Errorf("Expected the first %d records in order (-want +got):\n%s", DefaultMaxResults, diff)
	}
}

func TestApplyNameProperty(t *testing.T) {
	for _, query := range []string{"a", "LU", "Rocha", "o"} {
		for _, record := range Apply(fixture(), Criteria{Name: query}, 0) {
			if !strings.Contains(strings.ToLower(record.Name), strings.ToLower(query)) {
				t.Errorf("Record %q does not contain %q", record.Name, query)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := fixture()
	before := fixture()

	result := Apply(records, Criteria{Name: "a"}, 2)
	result[0].Name = "changed"

	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("Input was modified (-want +got):\n%s", diff)
	}
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, Criteria{Name: "x"}, 10)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %#v", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(fixture(), Criteria{Email: "empresa"}); got != 3 {
		t.Errorf("Expected 3 matches, got %d", got)
	}
	if got := Count(nil, Criteria{}); got != 0 {
		t.Errorf("Expected 0 matches on empty input, got %d", got)
	}
}

func TestCriteriaDescribe(t *testing.T) {
	if diff := cmp.Diff([]string{"Nenhum filtro aplicado"}, Criteria{}.Describe()); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}

	got := Criteria{Name: "ana", Status: models.StatusBlocked}.Describe()
	want := []string{"Nome: ana", "Status: BLOQUEADO"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}
