package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type ViewState int

const (
	ViewHome ViewState = iota
	ViewSearch
	ViewForm
	ViewEditing
)

func (s ViewState) String() string {
	switch s {
	case ViewHome:
		return "home"
	case ViewSearch:
		return "search"
	case ViewForm:
		return "form"
	case ViewEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Trigger is an event that may move the page state machine.
type Trigger int

const (
	TriggerOpenSearch Trigger = iota
	TriggerNewRecord
	TriggerEditRecord
	TriggerBack
	TriggerSaved
	TriggerCancel
)

func (t Trigger) String() string {
	switch t {
	case TriggerOpenSearch:
		return "open_search"
	case TriggerNewRecord:
		return "new_record"
	case TriggerEditRecord:
		return "edit_record"
	case TriggerBack:
		return "back"
	case TriggerSaved:
		return "saved"
	case TriggerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

type transition struct {
	from    ViewState
	trigger Trigger
}

var transitions = map[transition]ViewState{
	{ViewHome, TriggerOpenSearch}:   ViewSearch,
	{ViewHome, TriggerNewRecord}:    ViewForm,
	{ViewSearch, TriggerEditRecord}: ViewEditing,
	{ViewSearch, TriggerNewRecord}:  ViewForm,
	{ViewSearch, TriggerBack}:       ViewHome,
	{ViewForm, TriggerSaved}:        ViewHome,
	{ViewForm, TriggerCancel}:       ViewHome,
	{ViewEditing, TriggerSaved}:     ViewSearch,
	{ViewEditing, TriggerCancel}:    ViewSearch,
}

// InvalidTransitionError is returned when a trigger is not defined for the
// current state.
type InvalidTransitionError struct {
	From    ViewState
	Trigger Trigger
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s from %s", e.Trigger, e.From)
}

// PageMachine tracks which page is shown. The zero value starts at home.
type PageMachine struct {
	current ViewState
}

func NewPageMachine() PageMachine {
	return PageMachine{current: ViewHome}
}

func (p PageMachine) Current() ViewState {
	return p.current
}

// Next reports the state trigger leads to without applying it.
func (p PageMachine) Next(trigger Trigger) (ViewState, bool) {
	next, ok := transitions[transition{p.current, trigger}]
	return next, ok
}

// Fire applies trigger. Undefined transitions leave the state unchanged.
func (p *PageMachine) Fire(trigger Trigger) (ViewState, error) {
	next, ok := p.Next(trigger)
	if !ok {
		return p.current, &InvalidTransitionError{From: p.current, Trigger: trigger}
	}
	p.current = next
	return next, nil
}

// FireMsg asks the app to apply a trigger to the page state machine.
// RecordID names the record to edit for TriggerEditRecord.
type FireMsg struct {
	Trigger  Trigger
	RecordID int64
}

// Fire returns a command that applies trigger.
func Fire(trigger Trigger) tea.Cmd {
	return func() tea.Msg {
		return FireMsg{Trigger: trigger}
	}
}

// EditRecord returns a command that opens the edit page for id.
func EditRecord(id int64) tea.Cmd {
	return func() tea.Msg {
		return FireMsg{Trigger: TriggerEditRecord, RecordID: id}
	}
}
