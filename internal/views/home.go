package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/clientDesk/internal/models"
	"rhystmorgan/clientDesk/internal/utils"
)

type homeItem int

const (
	homeSearch homeItem = iota
	homeNewRecord
	homeQuit
)

var homeItems = []string{"Buscar usuários", "Novo cadastro", "Sair"}

type HomeModel struct {
	cursor   int
	baseURL  string
	counts   map[models.Status]int
	total    int
	loaded   bool
	loadedAt time.Time
}

func NewHomeModel(baseURL string) *HomeModel {
	return &HomeModel{baseURL: baseURL}
}

// SetSummary refreshes the store figures shown under the menu.
func (m *HomeModel) SetSummary(store *models.RecordStore) {
	m.total = store.Len()
	m.loaded = store.Loaded()
	m.counts = store.CountByStatus()
}

// MarkLoaded records when the store was last replaced from the backend.
func (m *HomeModel) MarkLoaded(at time.Time) {
	m.loadedAt = at
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(homeItems)-1 {
				m.cursor++
			}
		case "b", "/":
			return m, Fire(TriggerOpenSearch)
		case "n":
			return m, Fire(TriggerNewRecord)
		case "q":
			return m, tea.Quit
		case "enter", " ":
			switch homeItem(m.cursor) {
			case homeSearch:
				return m, Fire(TriggerOpenSearch)
			case homeNewRecord:
				return m, Fire(TriggerNewRecord)
			case homeQuit:
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m HomeModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 2)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 2)

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content string
	content += titleStyle.Render("ClientDesk - Cadastro de Usuários") + "\n\n"

	for i, item := range homeItems {
		cursor := " "
		style := itemStyle
		if m.cursor == i {
			cursor = ">"
			style = selectedStyle
		}
		content += style.Render(fmt.Sprintf("%s %s", cursor, item)) + "\n"
	}
	content += "\n"

	content += mutedStyle.Render(fmt.Sprintf("Backend: %s", m.baseURL)) + "\n"
	if !m.loaded {
		content += mutedStyle.Render("Registros ainda não carregados") + "\n"
	} else {
		content += mutedStyle.Render(fmt.Sprintf("Registros carregados: %s", utils.FormatNumber(m.total))) + "\n"
		if !m.loadedAt.IsZero() {
			content += mutedStyle.Render("Atualizado "+utils.FormatTimeAgo(m.loadedAt)) + "\n"
		}
		for _, status := range models.Statuses {
			badge := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.StatusColour(status)))
			content += "  " + badge.Render(fmt.Sprintf("%-10s %d", status.Label(), m.counts[status])) + "\n"
		}
	}
	content += "\n"

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	content += helpStyle.Render("↑/↓ navegar • Enter selecionar • b buscar • n novo • q sair")

	return content
}
