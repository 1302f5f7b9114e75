package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/clientDesk/internal/filter"
	"rhystmorgan/clientDesk/internal/models"
	"rhystmorgan/clientDesk/internal/utils"
)

type searchFocus int

const (
	focusName searchFocus = iota
	focusEmail
	focusStatus
	focusTable
)

const searchFocusCount = 4

// SearchModel is the filter page: three criteria inputs over the loaded
// records and a table of the derived view.
type SearchModel struct {
	store      *models.RecordStore
	maxResults int

	nameInput  textinput.Model
	emailInput textinput.Model
	status     models.Status
	focus      searchFocus

	table   table.Model
	results []models.Record
	matches int

	confirmDelete *models.Record

	previewing   bool
	previewTitle string
	preview      viewport.Model

	loading bool
	width   int
	height  int
}

func newFilterInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 100
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	return input
}

func searchColumns(width int) []table.Column {
	nameWidth, emailWidth := 24, 28
	if width > 110 {
		extra := (width - 110) / 2
		nameWidth += extra
		emailWidth += extra
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Nome", Width: nameWidth},
		{Title: "Email", Width: emailWidth},
		{Title: "Telefone", Width: 16},
		{Title: "Renda", Width: 16},
		{Title: "Dep.", Width: 4},
		{Title: "Status", Width: 10},
	}
}

func NewSearchModel(store *models.RecordStore, maxResults int) *SearchModel {
	if maxResults <= 0 {
		maxResults = filter.DefaultMaxResults
	}

	nameInput := newFilterInput("Filtrar por nome...")
	nameInput.Focus()

	t := table.New(
		table.WithColumns(searchColumns(0)),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Background(lipgloss.Color(utils.Colours.Green)).
		Bold(false)
	t.SetStyles(styles)

	m := &SearchModel{
		store:      store,
		maxResults: maxResults,
		nameInput:  nameInput,
		emailInput: newFilterInput("Filtrar por email..."),
		table:      t,
		preview:    viewport.New(80, 20),
	}
	m.Refresh()
	return m
}

// Criteria returns the filter currently entered.
func (m *SearchModel) Criteria() filter.Criteria {
	return filter.Criteria{
		Name:   m.nameInput.Value(),
		Email:  m.emailInput.Value(),
		Status: m.status,
	}
}

// Results returns the derived view currently displayed.
func (m *SearchModel) Results() []models.Record {
	return m.results
}

// Refresh recomputes the derived view from the store.
func (m *SearchModel) Refresh() {
	records := m.store.Records()
	criteria := m.Criteria()

	m.results = filter.Apply(records, criteria, m.maxResults)
	m.matches = filter.Count(records, criteria)

	columns := m.table.Columns()
	rows := make([]table.Row, 0, len(m.results))
	for _, record := range m.results {
		rows = append(rows, table.Row{
			strconv.FormatInt(record.ID, 10),
			utils.TruncateString(record.Name, columns[1].Width),
			utils.TruncateString(record.Email, columns[2].Width),
			record.Phone,
			utils.FormatIncome(record.Income),
			strconv.Itoa(record.NumOfDependents),
			string(record.Status),
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *SearchModel) SetLoading(loading bool) {
	m.loading = loading
}

func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(searchColumns(width))
	if height > 18 {
		m.table.SetHeight(height - 16)
	}
	m.preview.Width = max(width-4, 20)
	m.preview.Height = max(height-8, 5)
	m.Refresh()
}

// ShowPreview switches the page to the rendered print preview.
func (m *SearchModel) ShowPreview(title, content string) {
	m.previewing = true
	m.previewTitle = title
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

// Selected returns the record under the table cursor.
func (m *SearchModel) Selected() (models.Record, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.results) {
		return models.Record{}, false
	}
	return m.results[cursor], true
}

func (m *SearchModel) clearFilters() {
	m.nameInput.SetValue("")
	m.emailInput.SetValue("")
	m.status = ""
	m.Refresh()
}

func (m *SearchModel) setFocus(focus searchFocus) tea.Cmd {
	m.focus = focus
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.table.Blur()

	switch focus {
	case focusName:
		return m.nameInput.Focus()
	case focusEmail:
		return m.emailInput.Focus()
	case focusTable:
		m.table.Focus()
	}
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if m.previewing {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m.updateFocused(msg)
	}

	if m.previewing {
		switch keyMsg.String() {
		case "esc", "q":
			m.previewing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	if m.confirmDelete != nil {
		target := *m.confirmDelete
		switch keyMsg.String() {
		case "y", "Y", "s", "S", "enter":
			m.confirmDelete = nil
			return m, request(DeleteRequestMsg{Record: target})
		case "n", "N", "esc":
			m.confirmDelete = nil
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Fire(TriggerBack)
	case "tab":
		return m, m.setFocus((m.focus + 1) % searchFocusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + searchFocusCount - 1) % searchFocusCount)
	case "ctrl+r":
		return m, request(ReloadRequestMsg{})
	case "ctrl+n":
		return m, Fire(TriggerNewRecord)
	case "ctrl+l":
		m.clearFilters()
		return m, nil
	case "ctrl+e":
		return m.editSelected()
	case "ctrl+d":
		return m.askDelete()
	case "ctrl+x":
		return m, request(ExportRequestMsg{Records: m.results, Criteria: m.Criteria()})
	case "ctrl+p":
		if record, ok := m.Selected(); ok {
			return m, request(PrintRequestMsg{Records: []models.Record{record}, Single: true})
		}
		return m, Notify("Selecione um registro para imprimir", true)
	case "ctrl+a":
		return m, request(PrintRequestMsg{Records: m.results, Criteria: m.Criteria()})
	}

	switch m.focus {
	case focusStatus:
		switch keyMsg.String() {
		case " ", "enter", "right", "l":
			m.status = models.NextStatus(m.status, true)
			m.Refresh()
		case "backspace", "delete":
			m.status = ""
			m.Refresh()
		}
		return m, nil
	case focusTable:
		switch keyMsg.String() {
		case "enter", "e":
			return m.editSelected()
		case "d", "delete":
			return m.askDelete()
		}
	}

	return m.updateFocused(msg)
}

func (m SearchModel) updateFocused(msg tea.Msg) (SearchModel, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case focusName:
		before := m.nameInput.Value()
		m.nameInput, cmd = m.nameInput.Update(msg)
		if m.nameInput.Value() != before {
			m.Refresh()
		}
	case focusEmail:
		before := m.emailInput.Value()
		m.emailInput, cmd = m.emailInput.Update(msg)
		if m.emailInput.Value() != before {
			m.Refresh()
		}
	case focusTable:
		m.table, cmd = m.table.Update(msg)
	}

	return m, cmd
}

func (m SearchModel) editSelected() (SearchModel, tea.Cmd) {
	record, ok := m.Selected()
	if !ok {
		return m, Notify("Nenhum registro selecionado", true)
	}
	return m, EditRecord(record.ID)
}

func (m SearchModel) askDelete() (SearchModel, tea.Cmd) {
	record, ok := m.Selected()
	if !ok {
		return m, Notify("Nenhum registro selecionado", true)
	}
	m.confirmDelete = &record
	return m, nil
}

func (m SearchModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	if m.previewing {
		helpStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Italic(true)
		return titleStyle.Render(m.previewTitle) + "\n" +
			m.preview.View() + "\n" +
			helpStyle.Render("↑/↓ rolar • Esc fechar visualização")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext1)).
		Width(10)
	focusedLabel := labelStyle.
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	label := func(text string, focus searchFocus) string {
		if m.focus == focus {
			return focusedLabel.Render(text)
		}
		return labelStyle.Render(text)
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("Buscar Usuários") + "\n")

	content.WriteString(label("Nome", focusName) + m.nameInput.View() + "\n")
	content.WriteString(label("Email", focusEmail) + m.emailInput.View() + "\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.StatusColour(m.status)))
	if m.status == "" {
		statusStyle = mutedStyle
	}
	content.WriteString(label("Status", focusStatus) + statusStyle.Render("‹ "+m.status.Label()+" ›") + "\n\n")

	content.WriteString(mutedStyle.Render("Filtros: "+strings.Join(m.Criteria().Describe(), " • ")) + "\n")
	count := utils.FormatResultCount(len(m.results), m.store.Len())
	if m.matches > len(m.results) {
		count += fmt.Sprintf(" (exibindo os primeiros %d de %d encontrados)", len(m.results), m.matches)
	}
	content.WriteString(mutedStyle.Render(count) + "\n\n")

	switch {
	case len(m.results) > 0:
		content.WriteString(m.table.View() + "\n")
	case m.loading:
		content.WriteString(mutedStyle.Render("Carregando usuários...") + "\n")
	default:
		content.WriteString(mutedStyle.Render("Nenhum usuário encontrado com os filtros aplicados") + "\n")
	}

	if m.confirmDelete != nil {
		confirmStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(utils.Colours.Red)).
			Padding(0, 1)
		prompt := utils.FormatConfirmationText("exclusão", [][2]string{
			{"ID", strconv.FormatInt(m.confirmDelete.ID, 10)},
			{"Nome", m.confirmDelete.Name},
			{"Email", m.confirmDelete.Email},
		})
		content.WriteString("\n" + confirmStyle.Render(prompt) + "\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)
	content.WriteString("\n" + helpStyle.Render("Tab alternar campo • Enter editar • ^D excluir • ^N novo • ^R recarregar • ^X exportar CSV • ^P imprimir • ^A imprimir todos • ^L limpar • Esc voltar"))

	return content.String()
}
