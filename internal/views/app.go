package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/audit"
	"rhystmorgan/clientDesk/internal/export"
	"rhystmorgan/clientDesk/internal/filter"
	"rhystmorgan/clientDesk/internal/models"
	"rhystmorgan/clientDesk/internal/storage"
	"rhystmorgan/clientDesk/internal/utils"
	"rhystmorgan/clientDesk/internal/validation"
)

// Options wires the app to its collaborators. Storage, Auditor and Logger
// are optional.
type Options struct {
	Service      RecordService
	Storage      *storage.Storage
	Auditor      *audit.RecordAuditor
	Logger       *zap.Logger
	MaxResults   int
	PreviewStyle string
}

type notification struct {
	text    string
	isError bool
	at      time.Time
}

type AppModel struct {
	pages  PageMachine
	width  int
	height int

	service   RecordService
	store     *models.RecordStore
	validator *validation.RecordValidator
	storage   *storage.Storage
	auditor   *audit.RecordAuditor
	previewer *export.Previewer
	logger    *zap.Logger

	home   *HomeModel
	search *SearchModel
	form   *FormModel

	spinner      spinner.Model
	loading      int
	notification *notification
	formSeq      uint64
}

func NewAppModel(opts Options) (*AppModel, error) {
	if opts.Service == nil {
		return nil, errors.New("record service is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var previewOpts []export.PreviewOption
	if opts.PreviewStyle != "" {
		previewOpts = append(previewOpts, export.WithStyle(opts.PreviewStyle))
	}
	previewer, err := export.NewPreviewer(previewOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize print preview: %w", err)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Mauve))

	store := models.NewRecordStore()

	app := &AppModel{
		pages:     NewPageMachine(),
		service:   opts.Service,
		store:     store,
		validator: validation.NewRecordValidator(),
		storage:   opts.Storage,
		auditor:   opts.Auditor,
		previewer: previewer,
		logger:    logger,
		home:      NewHomeModel(opts.Service.CollectionURL()),
		search:    NewSearchModel(store, opts.MaxResults),
		spinner:   s,
	}

	return app, nil
}

func (m AppModel) Init() tea.Cmd {
	return loadRecords(m.service)
}

// State returns the page currently shown.
func (m AppModel) State() ViewState {
	return m.pages.Current()
}

// Store exposes the loaded records.
func (m AppModel) Store() *models.RecordStore {
	return m.store
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.loading == 0 {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FireMsg:
		return m.fire(msg)

	case NotifyMsg:
		m.notify(msg.Text, msg.IsError)
		return m, nil

	case ReloadRequestMsg:
		return m.startLoad()

	case RecordsLoadedMsg:
		return m.handleLoaded(msg)

	case SaveRequestMsg:
		m.loading++
		return m, tea.Batch(saveRecord(m.service, msg), m.spinner.Tick)

	case RecordSavedMsg:
		return m.handleSaved(msg)

	case DeleteRequestMsg:
		m.loading++
		return m, tea.Batch(deleteRecord(m.service, msg.Record), m.spinner.Tick)

	case RecordDeletedMsg:
		return m.handleDeleted(msg)

	case ExportRequestMsg:
		return m, m.exportCSV(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.logger.Error("csv export failed", zap.Error(msg.Err))
			m.notify("Erro ao exportar CSV: "+msg.Err.Error(), true)
			return m, nil
		}
		m.logger.Info("csv exported", zap.String("path", msg.Path), zap.Int("count", msg.Count))
		m.notify(fmt.Sprintf("%d registros exportados para %s", msg.Count, msg.Path), false)
		return m, nil

	case PrintRequestMsg:
		return m, m.printPreview(msg)

	case PreviewReadyMsg:
		if msg.Err != nil {
			m.logger.Error("print failed", zap.Error(msg.Err))
			m.notify("Erro ao gerar impressão: "+msg.Err.Error(), true)
			return m, nil
		}
		m.search.ShowPreview(fmt.Sprintf("Impressão (%d registros) - %s", msg.Count, msg.Path), msg.Content)
		m.notify("Arquivo de impressão salvo em "+msg.Path, false)
		return m, nil
	}

	switch m.pages.Current() {
	case ViewHome:
		*m.home, cmd = m.home.Update(msg)
	case ViewSearch:
		*m.search, cmd = m.search.Update(msg)
	case ViewForm, ViewEditing:
		if m.form != nil {
			*m.form, cmd = m.form.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) notify(text string, isError bool) {
	m.notification = &notification{text: text, isError: isError, at: time.Now()}
}

func (m AppModel) fire(msg FireMsg) (tea.Model, tea.Cmd) {
	var editing models.Record
	if msg.Trigger == TriggerEditRecord {
		record, ok := m.store.FindByID(msg.RecordID)
		if !ok {
			m.notify(fmt.Sprintf("Registro %d não encontrado", msg.RecordID), true)
			return m, nil
		}
		editing = record
	}

	from := m.pages.Current()
	to, err := m.pages.Fire(msg.Trigger)
	if err != nil {
		m.logger.Warn("rejected page transition",
			zap.Stringer("from", from),
			zap.Stringer("trigger", msg.Trigger))
		m.notify("Ação indisponível nesta tela", true)
		return m, nil
	}

	m.logger.Debug("page transition",
		zap.Stringer("from", from),
		zap.Stringer("trigger", msg.Trigger),
		zap.Stringer("to", to))

	switch to {
	case ViewHome:
		m.form = nil
		m.home.SetSummary(m.store)
	case ViewSearch:
		m.form = nil
		m.search.Refresh()
		if from == ViewHome {
			return m.startLoad()
		}
	case ViewForm:
		m.validator.SetKnownRecords(m.store.Records())
		m.form = NewFormModel(m.validator, nil)
		m.formSeq++
		m.form.token = m.formSeq
	case ViewEditing:
		m.validator.SetKnownRecords(m.store.Records())
		m.form = NewFormModel(m.validator, &editing)
		m.formSeq++
		m.form.token = m.formSeq
	}

	return m, nil
}

func (m AppModel) startLoad() (tea.Model, tea.Cmd) {
	m.loading++
	m.search.SetLoading(true)
	return m, tea.Batch(loadRecords(m.service), m.spinner.Tick)
}

func (m *AppModel) finishRequest() {
	if m.loading > 0 {
		m.loading--
	}
	if m.loading == 0 {
		m.search.SetLoading(false)
	}
}

// handleLoaded replaces the store on success. A failed load leaves the
// store as it was.
func (m AppModel) handleLoaded(msg RecordsLoadedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()

	if msg.Err != nil {
		m.logger.Error("failed to load records", zap.Error(msg.Err))
		m.notify(userMessage(msg.Err), true)
		return m, nil
	}

	m.store.Replace(msg.Records)
	m.logger.Info("records loaded", zap.Int("count", len(msg.Records)))
	m.search.Refresh()
	m.home.SetSummary(m.store)
	m.home.MarkLoaded(time.Now())
	return m, nil
}

func (m AppModel) handleSaved(msg RecordSavedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()

	// The user may have left the form, or opened another one, while the
	// request was in flight.
	fromOpenForm := m.form != nil && m.form.token == msg.Form

	if msg.Err != nil {
		m.logger.Error("failed to save record", zap.Error(msg.Err), zap.Bool("create", msg.Before == nil))
		if fromOpenForm {
			m.form.SubmitFailed()
		}
		m.notify(userMessage(msg.Err), true)
		return m, nil
	}

	m.store.Upsert(msg.Record)
	m.search.Refresh()
	m.home.SetSummary(m.store)

	if msg.Before == nil {
		m.logger.Info("record created", zap.Int64("id", msg.Record.ID))
		m.audit(m.auditor.LogCreate, msg.Record)
		m.notify("Usuário cadastrado com sucesso!", false)
	} else {
		m.logger.Info("record updated", zap.Int64("id", msg.Record.ID))
		if m.auditor != nil {
			if err := m.auditor.LogUpdate(*msg.Before, msg.Record); err != nil {
				m.logger.Warn("audit write failed", zap.Error(err))
			}
		}
		m.notify("Usuário atualizado com sucesso!", false)
	}

	if !fromOpenForm {
		return m, nil
	}
	if _, ok := m.pages.Next(TriggerSaved); !ok {
		return m, nil
	}
	return m.fire(FireMsg{Trigger: TriggerSaved})
}

func (m AppModel) handleDeleted(msg RecordDeletedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()

	if msg.Err != nil {
		m.logger.Error("failed to delete record", zap.Error(msg.Err), zap.Int64("id", msg.Record.ID))
		m.notify(userMessage(msg.Err), true)
		return m, nil
	}

	m.store.Remove(msg.Record.ID)
	m.logger.Info("record deleted", zap.Int64("id", msg.Record.ID))
	m.audit(m.auditor.LogDelete, msg.Record)
	m.search.Refresh()
	m.home.SetSummary(m.store)
	m.notify(fmt.Sprintf("Usuário %q excluído com sucesso!", msg.Record.Name), false)
	return m, nil
}

func (m AppModel) audit(log func(models.Record) error, record models.Record) {
	if m.auditor == nil {
		return
	}
	if err := log(record); err != nil {
		m.logger.Warn("audit write failed", zap.Error(err))
	}
}

func (m AppModel) exportCSV(msg ExportRequestMsg) tea.Cmd {
	store, auditor := m.storage, m.auditor
	return func() tea.Msg {
		if store == nil {
			return ExportDoneMsg{Err: errors.New("diretório de dados indisponível")}
		}

		data, err := export.CSV(msg.Records)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}

		path, err := store.WriteExport(export.CSVFileName(time.Now()), data)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}

		if auditor != nil {
			_ = auditor.LogExport(audit.AuditActionExport, path, len(msg.Records), describe(msg.Criteria))
		}
		return ExportDoneMsg{Path: path, Count: len(msg.Records)}
	}
}

func (m AppModel) printPreview(msg PrintRequestMsg) tea.Cmd {
	store, auditor, previewer := m.storage, m.auditor, m.previewer
	return func() tea.Msg {
		at := time.Now()

		var (
			page []byte
			err  error
		)
		if msg.Single && len(msg.Records) == 1 {
			page, err = export.RecordHTML(msg.Records[0], at)
		} else {
			page, err = export.ReportHTML(msg.Records, msg.Criteria, at)
		}
		if err != nil {
			return PreviewReadyMsg{Err: err}
		}

		path := "(não salvo)"
		if store != nil {
			path, err = store.WriteExport(export.PrintFileName(at), page)
			if err != nil {
				return PreviewReadyMsg{Err: err}
			}
			if auditor != nil {
				_ = auditor.LogExport(audit.AuditActionPrint, path, len(msg.Records), describe(msg.Criteria))
			}
		}

		content, err := previewer.Render(page)
		if err != nil {
			return PreviewReadyMsg{Err: err}
		}

		return PreviewReadyMsg{Path: path, Content: content, Count: len(msg.Records)}
	}
}

func describe(criteria filter.Criteria) string {
	return strings.Join(criteria.Describe(), "; ")
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Carregando..."
	}

	var content string

	switch m.pages.Current() {
	case ViewHome:
		content = m.home.View()
	case ViewSearch:
		content = m.search.View()
	case ViewForm, ViewEditing:
		if m.form != nil {
			content = m.form.View()
		}
	default:
		content = "Tela desconhecida"
	}

	if m.loading > 0 {
		content += "\n" + m.spinner.View() + " Comunicando com o servidor..."
	}

	if m.notification != nil {
		colour := utils.Colours.Green
		if m.notification.isError {
			colour = utils.Colours.Red
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colour)).
			Bold(true).
			Padding(1)
		content += "\n" + style.Render(m.notification.text)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}
