package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/model"
)

type appointmentItem struct {
	appt model.Appointment
	loc  *time.Location
}

func (i appointmentItem) Title() string {
	name := i.appt.PatientName
	if name == "" {
		name = "(sem nome)"
	}

	return "Paciente: " + name
}

func (i appointmentItem) Description() string {
	return fmt.Sprintf("Data: %s | Valor: %s | Tipo: %s",
		model.FormatDate(i.appt.Date, i.loc), i.appt.Amount.Display(), i.appt.Frequency.Label())
}

func (i appointmentItem) FilterValue() string {
	return i.appt.PatientName
}

type (
	appointmentsLoadedMsg struct {
		appts []model.Appointment
		err   error
	}
	deletedMsg struct{ err error }
)

// HomeModel lists the appointments of the current month.
type HomeModel struct {
	ctx     context.Context
	store   AppointmentStore
	loc     *time.Location
	list    list.Model
	confirm *model.Appointment
	err     error
}

// NewHomeModel returns an empty list screen; call Load to fill it.
func NewHomeModel(ctx context.Context, st AppointmentStore, loc *time.Location) HomeModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Consultas do Mês Atual"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("consulta", "consultas")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nova")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "excluir")),
		}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recarregar")),
			key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sair da conta")),
		}
	}

	return HomeModel{ctx: ctx, store: st, loc: loc, list: l}
}

// Load reads the current month from the store.
func (m HomeModel) Load() tea.Cmd {
	ctx, st := m.ctx, m.store

	return func() tea.Msg {
		appts, err := st.ListForCurrentMonth(ctx)
		return appointmentsLoadedMsg{appts: appts, err: err}
	}
}

func (m HomeModel) remove(id string) tea.Cmd {
	ctx, st := m.ctx, m.store

	return func() tea.Msg {
		return deletedMsg{err: st.Delete(ctx, id)}
	}
}

func (m HomeModel) SetSize(width, height int) HomeModel {
	h, v := docStyle.GetFrameSize()
	m.list.SetSize(width-h, height-v)

	return m
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case appointmentsLoadedMsg:
		if msg.err != nil {
			// keep whatever was on screen; the user can retry with r
			m.err = msg.err

			return m, nil
		}

		m.err = nil
		items := make([]list.Item, len(msg.appts))

		for i, a := range msg.appts {
			items[i] = appointmentItem{appt: a, loc: m.loc}
		}

		return m, m.list.SetItems(items)

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		return m, m.Load()

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}

		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit

		case "n":
			return m, navigate(openFormMsg{})

		case "e", "enter":
			if a, ok := m.selected(); ok {
				return m, navigate(openFormMsg{appt: &a})
			}

			return m, nil

		case "x", "delete":
			if a, ok := m.selected(); ok {
				m.confirm = &a
			}

			return m, nil

		case "r":
			return m, m.Load()

		case "L":
			return m, navigate(logoutRequestMsg{})
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m HomeModel) updateConfirm(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	switch msg.String() {
	case "y", "s", "enter":
		id := m.confirm.ID
		m.confirm = nil

		return m, m.remove(id)

	case "n", "esc":
		m.confirm = nil
	}

	return m, nil
}

func (m HomeModel) selected() (model.Appointment, bool) {
	i, ok := m.list.SelectedItem().(appointmentItem)
	if !ok {
		return model.Appointment{}, false
	}

	return i.appt, true
}

func (m HomeModel) View() string {
	s := m.list.View()

	if m.confirm != nil {
		s += "\n" + warnStyle.Render("Excluir Consulta") + "\n"
		s += fmt.Sprintf("Tem certeza que deseja excluir a consulta de %q? [s/N]", m.confirm.PatientName)
	}

	if m.err != nil {
		s += "\n" + errorStyle.Render(fmt.Sprintf("✗ %v", m.err))
	}

	return docStyle.Render(s)
}

// Appointments returns the records currently listed.
func (m HomeModel) Appointments() []model.Appointment {
	items := m.list.Items()
	out := make([]model.Appointment, 0, len(items))

	for _, it := range items {
		if ai, ok := it.(appointmentItem); ok {
			out = append(out, ai.appt)
		}
	}

	return out
}
