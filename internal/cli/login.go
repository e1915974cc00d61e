package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/auth"
)

const (
	loginUser = iota
	loginPassword
	loginSubmit
)

type loginResultMsg struct{ err error }

// LoginModel is the credential screen.
type LoginModel struct {
	ctx        context.Context
	gate       Authenticator
	inputs     []textinput.Model
	focusIndex int
	spinner    spinner.Model
	busy       bool
	err        error
}

// NewLoginModel returns an empty login screen.
func NewLoginModel(ctx context.Context, gate Authenticator) LoginModel {
	m := LoginModel{
		ctx:    ctx,
		gate:   gate,
		inputs: make([]textinput.Model, 2),
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 64

		switch i {
		case loginUser:
			t.Placeholder = "Usuário"
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case loginPassword:
			t.Placeholder = "Senha"
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}

		m.inputs[i] = t
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle
	m.spinner = s

	return m
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false

		if msg.err != nil {
			m.err = msg.err
			m.inputs[loginPassword].Reset()

			return m, nil
		}

		m.err = nil

		return m, navigate(loggedInMsg{})

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch s := msg.String(); s {
		case "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex >= loginPassword {
				return m.submit()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > loginSubmit {
				m.focusIndex = loginUser
			} else if m.focusIndex < loginUser {
				m.focusIndex = loginSubmit
			}

			return m, m.applyFocus()
		}
	}

	return m, m.updateInputs(msg)
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	m.busy = true
	m.err = nil

	user := m.inputs[loginUser].Value()
	password := m.inputs[loginPassword].Value()
	ctx, gate := m.ctx, m.gate

	check := func() tea.Msg {
		return loginResultMsg{err: gate.Login(ctx, user, password)}
	}

	return m, tea.Batch(check, m.spinner.Tick)
}

func (m *LoginModel) applyFocus() tea.Cmd {
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

func (m *LoginModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only the focused input reacts to keys
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m LoginModel) View() string {
	s := titleStyle.Render("Bem vindo(a)") + "\n\n"
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Usuário:"), m.inputs[loginUser].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Senha:"), m.inputs[loginPassword].View())
	s += fmt.Sprintf("\n %s\n\n", button("Entrar", m.focusIndex == loginSubmit))

	if m.busy {
		s += fmt.Sprintf(" %s Verificando...\n\n", m.spinner.View())
	}

	if m.err != nil {
		msg := m.err.Error()
		switch {
		case errors.Is(m.err, auth.ErrInvalidCredentials):
			msg = "Credenciais inválidas"
		case errors.Is(m.err, auth.ErrTooManyAttempts):
			msg = "Muitas tentativas, aguarde"
		}

		s += errorStyle.Render(" ✗ "+msg) + "\n\n"
	}

	s += helpStyle.Render(" tab: navegar • enter: entrar • esc: sair")

	return docStyle.Render(s)
}

// Err returns the last login error, if any.
func (m LoginModel) Err() error {
	return m.err
}
