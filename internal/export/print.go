package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"rhystmorgan/clientDesk/internal/filter"
	"rhystmorgan/clientDesk/internal/models"
	"rhystmorgan/clientDesk/internal/utils"
)

const printTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.card { border: 1px solid #999; border-radius: 6px; padding: 1em; margin-bottom: 1em; page-break-inside: avoid; }
.card h3 { margin-top: 0; }
.timestamp { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Report}}
<p><strong>Total de usuários:</strong> {{.Count}}</p>
<p><strong>Data do relatório:</strong> {{.GeneratedAt}}</p>
<p><strong>Filtros aplicados:</strong></p>
<ul>
{{- range .Filters}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- range .Cards}}
<div class="card">
<h3>{{.Name}}</h3>
<table>
<tr><th>ID</th><td>{{.ID}}</td></tr>
<tr><th>Email</th><td>{{.Email}}</td></tr>
<tr><th>Telefone</th><td>{{.Phone}}</td></tr>
<tr><th>Endereço</th><td>{{.Address}}</td></tr>
<tr><th>Renda</th><td>{{.Income}}</td></tr>
<tr><th>Dependentes</th><td>{{.Dependents}}</td></tr>
<tr><th>Status</th><td>{{.Status}}</td></tr>
{{- if .Photo}}
<tr><th>Foto</th><td>{{.Photo}}</td></tr>
{{- end}}
</table>
{{- if .Observations}}
<p><strong>Observações:</strong> {{.Observations}}</p>
{{- end}}
</div>
{{- end}}
{{- if not .Report}}
<p class="timestamp">Cadastro gerado em: {{.GeneratedAt}}</p>
{{- end}}
</body>
</html>
`

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

type printCard struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	Income       string
	Dependents   string
	Status       string
	Observations string
	Photo        string
}

type printPage struct {
	Title       string
	Report      bool
	Count       int
	GeneratedAt string
	Filters     []string
	Cards       []printCard
}

func newPrintCard(record models.Record) printCard {
	id := "novo"
	if !record.IsNew() {
		id = fmt.Sprintf("%d", record.ID)
	}

	return printCard{
		ID:           id,
		Name:         record.Name,
		Email:        record.Email,
		Phone:        record.Phone,
		Address:      record.Address,
		Income:       utils.FormatIncome(record.Income),
		Dependents:   utils.FormatDependents(record.NumOfDependents),
		Status:       record.Status.Label(),
		Observations: record.Observations,
		Photo:        record.PhotoRef(),
	}
}

// RecordHTML renders the printable summary of a single record.
func RecordHTML(record models.Record, generatedAt time.Time) ([]byte, error) {
	return render(printPage{
		Title:       "Resumo do Cadastro",
		Count:       1,
		GeneratedAt: utils.FormatTimestamp(generatedAt),
		Cards:       []printCard{newPrintCard(record)},
	})
}

// ReportHTML renders a report of the derived view: summary header with
// count, timestamp and filters, then one card per record.
func ReportHTML(records []models.Record, criteria filter.Criteria, generatedAt time.Time) ([]byte, error) {
	cards := make([]printCard, 0, len(records))
	for _, record := range records {
		cards = append(cards, newPrintCard(record))
	}

	return render(printPage{
		Title:       "Relatório de Usuários",
		Report:      true,
		Count:       len(records),
		GeneratedAt: utils.FormatTimestamp(generatedAt),
		Filters:     criteria.Describe(),
		Cards:       cards,
	})
}

// PrintFileName returns the default print file name for the given moment.
func PrintFileName(at time.Time) string {
	return fmt.Sprintf("relatorio_%s.html", at.Format("2006-01-02_15-04-05"))
}

func render(page printPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render print page: %w", err)
	}
	return buf.Bytes(), nil
}
