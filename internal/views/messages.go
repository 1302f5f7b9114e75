package views

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/clientDesk/internal/api"
	"rhystmorgan/clientDesk/internal/filter"
	"rhystmorgan/clientDesk/internal/models"
)

// RecordService is the backend the views talk to. *api.Client implements it.
type RecordService interface {
	CollectionURL() string
	List(ctx context.Context) ([]models.Record, error)
	Create(ctx context.Context, record models.Record) (models.Record, error)
	Update(ctx context.Context, record models.Record) (models.Record, error)
	Delete(ctx context.Context, id int64) error
}

// Completion messages

type RecordsLoadedMsg struct {
	Records []models.Record
	Err     error
}

type RecordSavedMsg struct {
	Record models.Record
	// Before is the record as it was when editing started; nil for creates.
	Before *models.Record
	// Form is the token of the form that raised the save.
	Form uint64
	Err  error
}

type RecordDeletedMsg struct {
	Record models.Record
	Err    error
}

type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

type PreviewReadyMsg struct {
	Path    string
	Content string
	Count   int
	Err     error
}

// Requests raised by pages and carried out by the app

type SaveRequestMsg struct {
	Record models.Record
	Before *models.Record
	Form   uint64
}

type DeleteRequestMsg struct {
	Record models.Record
}

type ExportRequestMsg struct {
	Records  []models.Record
	Criteria filter.Criteria
}

type PrintRequestMsg struct {
	Records  []models.Record
	Criteria filter.Criteria
	Single   bool
}

type ReloadRequestMsg struct{}

type NotifyMsg struct {
	Text    string
	IsError bool
}

func request(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func Notify(text string, isError bool) tea.Cmd {
	return request(NotifyMsg{Text: text, IsError: isError})
}

func loadRecords(service RecordService) tea.Cmd {
	return func() tea.Msg {
		records, err := service.List(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func saveRecord(service RecordService, msg SaveRequestMsg) tea.Cmd {
	record, before := msg.Record, msg.Before
	return func() tea.Msg {
		var (
			saved models.Record
			err   error
		)
		if before == nil {
			saved, err = service.Create(context.Background(), record)
		} else {
			saved, err = service.Update(context.Background(), record)
		}
		return RecordSavedMsg{Record: saved, Before: before, Form: msg.Form, Err: err}
	}
}

func deleteRecord(service RecordService, record models.Record) tea.Cmd {
	return func() tea.Msg {
		err := service.Delete(context.Background(), record.ID)
		return RecordDeletedMsg{Record: record, Err: err}
	}
}

// userMessage turns an error into the notification text.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Erro: " + err.Error()
}
