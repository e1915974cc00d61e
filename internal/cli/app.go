package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/model"
)

// Authenticator is the login gate as seen by the UI.
type Authenticator interface {
	Login(ctx context.Context, user, password string) error
	Logout(ctx context.Context) error
}

// AppointmentStore is the part of the store the UI calls.
type AppointmentStore interface {
	ListForCurrentMonth(ctx context.Context) ([]model.Appointment, error)
	Upsert(ctx context.Context, a model.Appointment) error
	Delete(ctx context.Context, id string) error
}

// Services are the collaborators the screens call through commands.
type Services struct {
	Gate  Authenticator
	Store AppointmentStore

	// Location is used to validate and display dates; nil means time.Local
	Location *time.Location
}

type screen int

const (
	screenLogin screen = iota
	screenHome
	screenForm
)

func (s screen) String() string {
	switch s {
	case screenLogin:
		return "login"
	case screenHome:
		return "home"
	case screenForm:
		return "form"
	default:
		return "unknown"
	}
}

// navigation messages
type (
	loggedInMsg      struct{}
	loggedOutMsg     struct{}
	logoutRequestMsg struct{}
	openFormMsg      struct{ appt *model.Appointment }
	closeFormMsg     struct{}
	errMsg           struct{ err error }
)

// App is the root model. It owns the current screen and replaces the
// navigation stack of the mobile app: Login -> Home <-> Form.
type App struct {
	ctx    context.Context
	svc    Services
	screen screen
	width  int
	height int

	login LoginModel
	home  HomeModel
	form  FormModel
}

// NewApp returns the root model. When loggedIn is true the login screen is
// skipped, as it is for a stored session.
func NewApp(ctx context.Context, svc Services, loggedIn bool) App {
	if svc.Location == nil {
		svc.Location = time.Local
	}

	a := App{
		ctx:   ctx,
		svc:   svc,
		login: NewLoginModel(ctx, svc.Gate),
		home:  NewHomeModel(ctx, svc.Store, svc.Location),
	}

	if loggedIn {
		a.screen = screenHome
	}

	return a
}

func (a App) Init() tea.Cmd {
	if a.screen == screenHome {
		return a.home.Load()
	}

	return a.login.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.home = a.home.SetSize(msg.Width, msg.Height)

		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case loggedInMsg:
		a.screen = screenHome

		return a, a.home.Load()

	case logoutRequestMsg:
		ctx, gate := a.ctx, a.svc.Gate

		return a, func() tea.Msg {
			if err := gate.Logout(ctx); err != nil {
				return errMsg{err: err}
			}

			return loggedOutMsg{}
		}

	case errMsg:
		a.home.err = msg.err

		return a, nil

	case loggedOutMsg:
		a.screen = screenLogin
		a.login = NewLoginModel(a.ctx, a.svc.Gate)

		return a, a.login.Init()

	case openFormMsg:
		a.screen = screenForm
		a.form = NewFormModel(a.ctx, a.svc.Store, a.svc.Location, msg.appt)

		return a, a.form.Init()

	case closeFormMsg:
		// the list reloads every time it regains focus
		a.screen = screenHome

		return a, a.home.Load()
	}

	var cmd tea.Cmd

	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenHome:
		a.home, cmd = a.home.Update(msg)
	case screenForm:
		a.form, cmd = a.form.Update(msg)
	}

	return a, cmd
}

func (a App) View() string {
	switch a.screen {
	case screenHome:
		return a.home.View()
	case screenForm:
		return a.form.View()
	default:
		return a.login.View()
	}
}

// Screen returns the name of the current screen.
func (a App) Screen() string {
	return a.screen.String()
}

func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
