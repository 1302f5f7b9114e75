package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/clientDesk/internal/models"
	"rhystmorgan/clientDesk/internal/utils"
	"rhystmorgan/clientDesk/internal/validation"
)

type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldPhone
	fieldAddress
	fieldIncome
	fieldDependents
	fieldStatus
	fieldObservations
	fieldPhoto
	fieldCount
)

type fieldDef struct {
	key         string
	label       string
	placeholder string
	required    bool
	charLimit   int
}

var formFields = [fieldCount]fieldDef{
	fieldName:         {"name", "Nome", "Nome completo", true, validation.MaxNameLength},
	fieldEmail:        {"email", "Email", "email@exemplo.com", true, validation.MaxFieldLength},
	fieldPhone:        {"phone", "Telefone", "(11) 99999-9999", true, validation.MaxFieldLength},
	fieldAddress:      {"address", "Endereço", "Rua, número, cidade", true, validation.MaxFieldLength},
	fieldIncome:       {"income", "Renda", "0,00", false, 20},
	fieldDependents:   {"numOfDependents", "Dependentes", "0", false, 4},
	fieldStatus:       {"status", "Status", "", true, 0},
	fieldObservations: {"observations", "Observações", "Opcional", false, validation.MaxObservationsLength},
	fieldPhoto:        {"photo", "Foto", "Caminho de uma imagem ou URL (opcional)", false, 0},
}

// FormModel creates a new record or edits an existing one. Input is
// validated locally before any request is raised.
type FormModel struct {
	validator *validation.RecordValidator
	before    *models.Record
	// token identifies this form in the save it raises.
	token uint64

	inputs       [fieldCount]textinput.Model
	loaded       [fieldCount]string
	status       models.Status
	photo        *string
	currentField formField

	errors     map[string]string
	warnings   []string
	submitting bool
}

func newFormInput(field fieldDef) textinput.Model {
	input := textinput.New()
	input.Placeholder = field.placeholder
	input.CharLimit = field.charLimit
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	return input
}

// NewFormModel opens the form. A nil record starts an empty create form.
func NewFormModel(validator *validation.RecordValidator, record *models.Record) *FormModel {
	m := &FormModel{
		validator: validator,
		status:    models.StatusActive,
		errors:    make(map[string]string),
	}

	for i := formField(0); i < fieldCount; i++ {
		if i == fieldStatus {
			continue
		}
		m.inputs[i] = newFormInput(formFields[i])
	}

	if record != nil {
		before := record.Clone()
		m.before = &before
		m.setLoaded(fieldName, record.Name)
		m.setLoaded(fieldEmail, record.Email)
		m.setLoaded(fieldPhone, record.Phone)
		m.setLoaded(fieldAddress, record.Address)
		m.setLoaded(fieldIncome, formatIncomeInput(record.Income))
		m.setLoaded(fieldDependents, strconv.Itoa(record.NumOfDependents))
		m.setLoaded(fieldObservations, record.Observations)
		m.photo = before.Photo
		m.status = record.Status
	}

	m.inputs[fieldName].Focus()
	return m
}

// setLoaded fills an input with a stored value. The input's limit is
// raised so the value is never cut.
func (m *FormModel) setLoaded(field formField, value string) {
	input := &m.inputs[field]
	if n := utf8.RuneCountInString(value); input.CharLimit > 0 && n > input.CharLimit {
		input.CharLimit = n
	}
	input.SetValue(value)
	m.loaded[field] = input.Value()
}

// untouched reports whether an edit form input still shows what was loaded.
func (m *FormModel) untouched(field formField) bool {
	return m.before != nil && m.inputs[field].Value() == m.loaded[field]
}

func (m *FormModel) IsEditing() bool {
	return m.before != nil
}

// SubmitFailed re-enables the form after the backend rejected a save.
func (m *FormModel) SubmitFailed() {
	m.submitting = false
}

func (m *FormModel) focusCurrentField() tea.Cmd {
	for i := range m.inputs {
		if formField(i) != fieldStatus {
			m.inputs[i].Blur()
		}
	}
	if m.currentField == fieldStatus {
		return nil
	}
	return m.inputs[m.currentField].Focus()
}

func (m *FormModel) nextField() tea.Cmd {
	if m.currentField == fieldPhoto {
		m.attachPhoto()
	}
	if m.currentField < fieldCount-1 {
		m.currentField++
	}
	return m.focusCurrentField()
}

func (m *FormModel) prevField() tea.Cmd {
	if m.currentField == fieldPhoto {
		m.attachPhoto()
	}
	if m.currentField > 0 {
		m.currentField--
	}
	return m.focusCurrentField()
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m.updateInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, Fire(TriggerCancel)
	case "tab", "down":
		return m, m.nextField()
	case "shift+tab", "up":
		return m, m.prevField()
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.currentField == fieldCount-1 {
			return m.submit()
		}
		return m, m.nextField()
	}

	if m.currentField == fieldStatus {
		switch keyMsg.String() {
		case " ", "right", "l":
			m.status = models.NextStatus(m.status, false)
		}
		return m, nil
	}

	if m.currentField == fieldPhoto && keyMsg.String() == "backspace" &&
		m.inputs[fieldPhoto].Value() == "" && m.photo != nil {
		m.photo = nil
		delete(m.errors, "photo")
		return m, nil
	}

	return m.updateInput(msg)
}

// attachPhoto turns a typed file path into the stored photo so its type
// and size can be shown before saving.
func (m *FormModel) attachPhoto() {
	ref := strings.TrimSpace(m.inputs[fieldPhoto].Value())
	if ref == "" {
		return
	}

	photo, err := resolvePhoto(ref)
	if err != nil {
		m.errors["photo"] = "Foto inválida: " + err.Error()
		return
	}
	delete(m.errors, "photo")
	m.photo = &photo
	m.inputs[fieldPhoto].Reset()
}

// resolvePhoto loads a local image as a data URL. URLs and data URLs are
// stored as typed.
func resolvePhoto(ref string) (string, error) {
	if strings.HasPrefix(ref, "data:") || strings.Contains(ref, "://") {
		return ref, nil
	}
	path, ok := isLocalFile(ref)
	if !ok {
		return "", fmt.Errorf("arquivo não encontrado: %s", ref)
	}
	return loadPhotoFile(path)
}

func (m FormModel) updateInput(msg tea.Msg) (FormModel, tea.Cmd) {
	if m.currentField == fieldStatus {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.currentField], cmd = m.inputs[m.currentField].Update(msg)
	return m, cmd
}

// Record builds the record from the inputs. Parse failures are returned
// per field.
func (m *FormModel) Record() (models.Record, map[string]string) {
	parseErrors := make(map[string]string)

	var record models.Record
	if m.before != nil {
		record = m.before.Clone()
	}

	value := func(field formField) string {
		return strings.TrimSpace(m.inputs[field].Value())
	}
	// Inputs left as loaded keep the stored value exactly.
	text := func(field formField, stored string) string {
		if m.untouched(field) {
			return stored
		}
		return value(field)
	}

	record.Name = text(fieldName, record.Name)
	record.Email = text(fieldEmail, record.Email)
	record.Phone = text(fieldPhone, record.Phone)
	record.Address = text(fieldAddress, record.Address)
	record.Observations = text(fieldObservations, record.Observations)
	record.Status = m.status

	record.Photo = nil
	if m.photo != nil {
		photo := *m.photo
		record.Photo = &photo
	}
	if ref := value(fieldPhoto); ref != "" {
		photo, err := resolvePhoto(ref)
		if err != nil {
			parseErrors["photo"] = "Foto inválida: " + err.Error()
		} else {
			record.SetPhoto(photo)
		}
	}

	if !m.untouched(fieldIncome) {
		income, err := parseIncome(value(fieldIncome))
		if err != nil {
			parseErrors["income"] = "Renda inválida"
		}
		record.Income = income
	}

	if !m.untouched(fieldDependents) {
		dependents, err := parseDependents(value(fieldDependents))
		if err != nil {
			parseErrors["numOfDependents"] = "Número de dependentes inválido"
		}
		record.NumOfDependents = dependents
	}

	return record, parseErrors
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	record, parseErrors := m.Record()
	result := m.validator.Validate(record)

	m.errors = result.FieldErrors()
	for field, message := range parseErrors {
		if _, exists := m.errors[field]; !exists {
			m.errors[field] = message
		}
	}

	m.warnings = m.warnings[:0]
	for _, warning := range result.Warnings {
		m.warnings = append(m.warnings, warning.Message)
	}

	if len(m.errors) > 0 {
		message := "Corrija os campos destacados"
		if result.HasRequiredFieldErrors() {
			message = validation.RequiredFieldsMessage
		}
		return m, Notify(message, true)
	}

	m.submitting = true
	return m, request(SaveRequestMsg{Record: record, Before: m.before, Form: m.token})
}

func (m FormModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Width(14)
	focusedLabel := labelStyle.
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red))
	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Yellow))
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	title := "Novo Cadastro"
	if m.before != nil {
		title = fmt.Sprintf("Editar Usuário #%d", m.before.ID)
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(title) + "\n")

	for i := formField(0); i < fieldCount; i++ {
		field := formFields[i]
		text := field.label
		if field.required {
			text += " *"
		}

		style := labelStyle
		if m.currentField == i {
			style = focusedLabel
		}

		var rendered string
		if i == fieldStatus {
			statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.StatusColour(m.status)))
			rendered = statusStyle.Render("‹ " + m.status.Label() + " ›")
		} else {
			rendered = m.inputs[i].View()
		}

		content.WriteString(style.Render(text) + rendered + "\n")
		if i == fieldPhoto && m.photo != nil {
			content.WriteString(strings.Repeat(" ", 14) + mutedStyle.Render("Atual: "+photoSummary(*m.photo)+" (Backspace remove)") + "\n")
		}
		if message, ok := m.errors[field.key]; ok {
			content.WriteString(strings.Repeat(" ", 14) + errorStyle.Render(message) + "\n")
		}
	}

	for _, warning := range m.warnings {
		content.WriteString("\n" + warningStyle.Render("Aviso: "+warning))
	}

	if m.submitting {
		content.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0)).Render("Salvando..."))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)
	content.WriteString("\n\n" + helpStyle.Render("Tab/↑/↓ navegar • Espaço alterar status • ^S salvar • Esc cancelar"))

	return content.String()
}

// parseIncome accepts "1234.5", "1234,50" and "1.234,50". Empty is zero.
func parseIncome(value string) (float64, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "R$"))
	if value == "" {
		return 0, nil
	}

	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}

	income, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(income) || math.IsInf(income, 0) {
		return 0, fmt.Errorf("income %q is not a finite number", value)
	}
	return income, nil
}

func parseDependents(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func formatIncomeInput(income float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(income, 'f', 2, 64), ".", ",")
}
