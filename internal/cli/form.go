package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/core"
	"github.com/inovacc/consultas/internal/model"
)

const (
	formPatient = iota
	formDate
	formAmount
	formFrequency
	formSave
)

type savedMsg struct{ err error }

// FormModel creates or edits one appointment.
type FormModel struct {
	ctx        context.Context
	store      AppointmentStore
	loc        *time.Location
	id         string
	newID      string
	inputs     []textinput.Model
	frequency  model.Frequency
	focusIndex int
	saving     bool
	err        error
}

// NewFormModel returns the form, pre-filled when appt is not nil.
func NewFormModel(ctx context.Context, st AppointmentStore, loc *time.Location, appt *model.Appointment) FormModel {
	if loc == nil {
		loc = time.Local
	}

	m := FormModel{
		ctx:    ctx,
		store:  st,
		loc:    loc,
		inputs: make([]textinput.Model, 3),
	}

	f := core.Form{Date: time.Now().In(loc).Format(model.DisplayLayout)}
	if appt != nil {
		f = core.FormFromAppointment(*appt)
		m.id = appt.ID
		m.frequency = appt.Frequency
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 128

		switch i {
		case formPatient:
			t.Placeholder = "Nome do paciente"
			t.SetValue(f.Patient)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case formDate:
			t.Placeholder = "dd/mm/aaaa hh:mm"
			t.CharLimit = 40
			t.SetValue(f.Date)
		case formAmount:
			t.Placeholder = "0,00"
			t.CharLimit = 20
			t.SetValue(f.Amount)
		}

		m.inputs[i] = t
	}

	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Editing reports whether the form was opened on an existing appointment.
func (m FormModel) Editing() bool {
	return m.id != ""
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saving = false

		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		return m, navigate(closeFormMsg{})

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}

		switch s := msg.String(); s {
		case "esc":
			return m, navigate(closeFormMsg{})

		case "ctrl+s":
			return m.save()

		case "left", "right", " ", "space":
			if m.focusIndex == formFrequency {
				m.toggleFrequency()

				return m, nil
			}

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == formSave {
				return m.save()
			}

			if s == "enter" && m.focusIndex == formFrequency {
				m.toggleFrequency()

				return m, nil
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > formSave {
				m.focusIndex = formPatient
			} else if m.focusIndex < formPatient {
				m.focusIndex = formSave
			}

			return m, m.applyFocus()
		}
	}

	return m, m.updateInputs(msg)
}

func (m *FormModel) toggleFrequency() {
	m.frequency = m.frequency.Next()
}

// Form returns the current field values.
func (m FormModel) Form() core.Form {
	return core.Form{
		ID:        m.id,
		Patient:   m.inputs[formPatient].Value(),
		Date:      m.inputs[formDate].Value(),
		Amount:    m.inputs[formAmount].Value(),
		Frequency: m.frequency.String(),
	}
}

func (m FormModel) save() (FormModel, tea.Cmd) {
	f := m.Form()
	if f.ID == "" {
		f.ID = m.newID
	}

	appt, err := core.BuildAppointment(f, m.loc)
	if err != nil {
		m.err = err

		return m, nil
	}

	// a retry after a failed write reuses the generated id
	if m.id == "" {
		m.newID = appt.ID
	}

	m.saving = true
	m.err = nil
	ctx, st := m.ctx, m.store

	return m, func() tea.Msg {
		return savedMsg{err: st.Upsert(ctx, appt)}
	}
}

func (m *FormModel) applyFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}

		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m FormModel) View() string {
	title := "Nova Consulta"
	if m.Editing() {
		title = "Editar Consulta"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(fmt.Sprintf(fmtField, blurredStyle.Render("Paciente:"), m.inputs[formPatient].View()))
	b.WriteString(fmt.Sprintf(fmtField, blurredStyle.Render("Data:"), m.inputs[formDate].View()))
	b.WriteString(fmt.Sprintf(fmtField, blurredStyle.Render("Valor (R$):"), m.inputs[formAmount].View()))

	var opts []string

	for _, f := range model.Frequencies() {
		label := f.Label()
		if f == m.frequency {
			label = "(•) " + label
		} else {
			label = "( ) " + label
		}

		if m.focusIndex == formFrequency {
			opts = append(opts, focusedStyle.Render(label))
		} else {
			opts = append(opts, noStyle.Render(label))
		}
	}

	b.WriteString(fmt.Sprintf(fmtField, blurredStyle.Render("Tipo:"), strings.Join(opts, "  ")))
	b.WriteString(fmt.Sprintf("\n %s\n\n", button("Salvar", m.focusIndex == formSave)))

	if m.saving {
		b.WriteString(" Salvando...\n\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(" ✗ "+formErrorText(m.err)) + "\n\n")
	}

	b.WriteString(helpStyle.Render(" tab: navegar • espaço: alterar tipo • ctrl+s: salvar • esc: voltar"))

	return docStyle.Render(b.String())
}

func formErrorText(err error) string {
	var fe *core.FieldError
	if !errors.As(err, &fe) {
		return err.Error()
	}

	switch fe.Field {
	case "date":
		return "Data inválida"
	case "amount":
		return "Valor inválido"
	case "frequency":
		return "Tipo inválido"
	default:
		return err.Error()
	}
}

// Err returns the last validation or storage error.
func (m FormModel) Err() error {
	return m.err
}
