package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/auth"
	"github.com/inovacc/consultas/internal/core"
	"github.com/inovacc/consultas/internal/kv"
	"github.com/inovacc/consultas/internal/model"
	"github.com/inovacc/consultas/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	logins  int
	logouts int
}

func (g *fakeGate) Login(_ context.Context, user, password string) error {
	g.logins++
	if user == auth.DefaultUser && password == auth.DefaultPassword {
		return nil
	}

	return auth.ErrInvalidCredentials
}

func (g *fakeGate) Logout(context.Context) error {
	g.logouts++
	return nil
}

var march15 = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T, loggedIn bool, seed ...model.Appointment) (App, *fakeGate, *store.Store) {
	t.Helper()

	st := store.New(kv.NewMemory(),
		store.WithClock(func() time.Time { return march15 }),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	for _, a := range seed {
		require.NoError(t, st.Upsert(context.Background(), a))
	}

	gate := &fakeGate{}
	app := NewApp(context.Background(), Services{Gate: gate, Store: st, Location: time.UTC}, loggedIn)
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 100, Height: 40})

	return app, gate, st
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()

	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)

	return next, cmd
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		a, cmd = update(t, a, keyMsg(k))
	}

	return a, cmd
}

// run executes cmd and returns its message. For a batch only the first
// command runs; the rest are cursor blinks and spinner ticks.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.NotEmpty(t, batch)
		return batch[0]()
	}

	return msg
}

// settle feeds cmd's message back into the app until the chain ends at a
// message the app does not answer with another synchronous step.
func settle(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()

	for i := 0; cmd != nil && i < 10; i++ {
		msg := run(t, cmd)

		switch msg.(type) {
		case loginResultMsg, loggedInMsg, loggedOutMsg, logoutRequestMsg,
			openFormMsg, closeFormMsg, appointmentsLoadedMsg, savedMsg, deletedMsg, errMsg:
		default:
			return a
		}

		a, cmd = update(t, a, msg)
	}

	return a
}

func appt(id, patient, date string, amount float64, freq model.Frequency) model.Appointment {
	return model.Appointment{
		ID:          id,
		PatientName: patient,
		Date:        date,
		Amount:      model.AmountFromFloat(amount),
		Frequency:   freq,
	}
}

func TestApp_StartsOnLoginWithoutSession(t *testing.T) {
	app, _, _ := setupTestApp(t, false)

	assert.Equal(t, "login", app.Screen())
	assert.Contains(t, app.View(), "Bem vindo(a)")
}

func TestApp_LoginSucceeds(t *testing.T) {
	app, gate, _ := setupTestApp(t, false,
		appt("a", "Ana", "2024-03-05T10:00:00", 150, model.FrequencyMonthly))

	app, _ = press(t, app, "admin", "tab", "password")
	app, cmd := press(t, app, "enter")
	require.True(t, app.login.busy)

	app = settle(t, app, cmd)

	assert.Equal(t, 1, gate.logins)
	assert.Equal(t, "home", app.Screen())
	assert.Len(t, app.home.Appointments(), 1)
}

func TestApp_LoginRejected(t *testing.T) {
	app, _, _ := setupTestApp(t, false)

	app, _ = press(t, app, "admin", "tab", "wrong")
	app, cmd := press(t, app, "enter")
	app = settle(t, app, cmd)

	assert.Equal(t, "login", app.Screen())
	assert.ErrorIs(t, app.login.Err(), auth.ErrInvalidCredentials)
	assert.Empty(t, app.login.inputs[loginPassword].Value())
	assert.Equal(t, "admin", app.login.inputs[loginUser].Value())
	assert.Contains(t, app.View(), "Credenciais inválidas")
}

func TestApp_LoginFocusCycles(t *testing.T) {
	app, _, _ := setupTestApp(t, false)

	app, _ = press(t, app, "tab", "tab")
	assert.Equal(t, loginSubmit, app.login.focusIndex)

	app, _ = press(t, app, "tab")
	assert.Equal(t, loginUser, app.login.focusIndex)
}

func TestApp_HomeListsCurrentMonthOnly(t *testing.T) {
	app, _, _ := setupTestApp(t, true,
		appt("a", "Ana", "2024-03-05T10:00:00", 150, model.FrequencyMonthly),
		appt("b", "Bruno", "2024-03-31T23:00:00", 80, model.FrequencyBiweekly),
		appt("c", "Carla", "2024-04-01T09:00:00", 90, model.FrequencyMonthly),
	)
	require.Equal(t, "home", app.Screen())

	app = settle(t, app, app.Init())

	var got []string
	for _, a := range app.home.Appointments() {
		got = append(got, a.ID)
	}

	assert.Equal(t, []string{"a", "b"}, got)

	view := app.View()
	assert.Contains(t, view, "Consultas do Mês Atual")
	assert.Contains(t, view, "Paciente: Ana")
	assert.Contains(t, view, "05/03/2024 10:00")
	assert.Contains(t, view, "R$ 150.00")
	assert.Contains(t, view, "Quinzenal")
	assert.NotContains(t, view, "Carla")
}

func TestApp_CreateAppointment(t *testing.T) {
	app, _, st := setupTestApp(t, true)
	app = settle(t, app, app.Init())

	app, cmd := press(t, app, "n")
	app = settle(t, app, cmd)
	require.Equal(t, "form", app.Screen())
	assert.False(t, app.form.Editing())
	assert.Contains(t, app.View(), "Nova Consulta")

	app.form.inputs[formPatient].SetValue("Ana")
	app.form.inputs[formDate].SetValue("10/03/2024 14:00")
	app.form.inputs[formAmount].SetValue("150,50")

	app, _ = press(t, app, "tab", "tab", "tab", "space")
	assert.Equal(t, model.FrequencyBiweekly, app.form.frequency)

	app, cmd = press(t, app, "ctrl+s")
	app = settle(t, app, cmd)

	assert.Equal(t, "home", app.Screen())

	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotEmpty(t, all[0].ID)
	assert.Equal(t, "Ana", all[0].PatientName)
	assert.Equal(t, "10/03/2024 14:00", all[0].Date)
	assert.Equal(t, "150.5", all[0].Amount.String())
	assert.Equal(t, model.FrequencyBiweekly, all[0].Frequency)

	require.Len(t, app.home.Appointments(), 1)
}

func TestApp_CreateRetryAfterStorageError(t *testing.T) {
	mem := kv.NewMemory()
	st := store.New(mem,
		store.WithClock(func() time.Time { return march15 }),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	app := NewApp(context.Background(), Services{Gate: &fakeGate{}, Store: st, Location: time.UTC}, true)
	app = settle(t, app, app.Init())

	app, cmd := press(t, app, "n")
	app = settle(t, app, cmd)
	require.Equal(t, "form", app.Screen())

	app.form.inputs[formPatient].SetValue("Ana")
	app.form.inputs[formDate].SetValue("10/03/2024 14:00")
	app.form.inputs[formAmount].SetValue("150")

	mem.Fail(errors.New("disk gone"))

	app, cmd = press(t, app, "ctrl+s")
	app = settle(t, app, cmd)

	require.Equal(t, "form", app.Screen())
	assert.ErrorIs(t, app.form.Err(), store.ErrStorageUnavailable)
	assert.False(t, app.form.Editing())
	assert.Contains(t, app.View(), "Nova Consulta")
	assert.NotContains(t, app.View(), "Editar Consulta")

	generated := app.form.newID
	require.NotEmpty(t, generated)

	mem.Fail(nil)

	app, cmd = press(t, app, "ctrl+s")
	app = settle(t, app, cmd)
	require.Equal(t, "home", app.Screen())

	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, generated, all[0].ID)
}

func TestApp_EditKeepsID(t *testing.T) {
	app, _, st := setupTestApp(t, true,
		appt("a", "Ana", "2024-03-05T10:00:00", 150, model.FrequencyMonthly))
	app = settle(t, app, app.Init())

	app, cmd := press(t, app, "e")
	app = settle(t, app, cmd)
	require.Equal(t, "form", app.Screen())
	assert.True(t, app.form.Editing())
	assert.Contains(t, app.View(), "Editar Consulta")
	assert.Equal(t, "Ana", app.form.inputs[formPatient].Value())

	app.form.inputs[formAmount].SetValue("200")

	app, cmd = press(t, app, "ctrl+s")
	app = settle(t, app, cmd)
	require.Equal(t, "home", app.Screen())

	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "200", all[0].Amount.String())
	assert.Equal(t, "2024-03-05T10:00:00", all[0].Date)
}

func TestApp_FormRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		amount string
		want   string
	}{
		{name: "bad date", date: "amanhã", amount: "100", want: "Data inválida"},
		{name: "bad amount", date: "2024-03-10", amount: "cem", want: "Valor inválido"},
		{name: "negative amount", date: "2024-03-10", amount: "-5", want: "Valor inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, st := setupTestApp(t, true)

			app, cmd := press(t, app, "n")
			app = settle(t, app, cmd)

			app.form.inputs[formDate].SetValue(tt.date)
			app.form.inputs[formAmount].SetValue(tt.amount)

			app, cmd = press(t, app, "ctrl+s")
			assert.Nil(t, cmd)
			assert.Equal(t, "form", app.Screen())

			var fe *core.FieldError
			assert.True(t, errors.As(app.form.Err(), &fe))
			assert.Contains(t, app.View(), tt.want)

			all, err := st.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestApp_FormEscReturnsHome(t *testing.T) {
	app, _, st := setupTestApp(t, true)

	app, cmd := press(t, app, "n")
	app = settle(t, app, cmd)
	app.form.inputs[formPatient].SetValue("Ana")

	app, cmd = press(t, app, "esc")
	app = settle(t, app, cmd)

	assert.Equal(t, "home", app.Screen())

	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	app, _, st := setupTestApp(t, true,
		appt("a", "Ana", "2024-03-05T10:00:00", 150, model.FrequencyMonthly),
		appt("b", "Bruno", "2024-03-06T10:00:00", 80, model.FrequencyMonthly),
	)
	app = settle(t, app, app.Init())

	app, cmd := press(t, app, "x")
	assert.Nil(t, cmd)
	assert.Contains(t, app.View(), "Excluir Consulta")

	// declining keeps the record
	app, _ = press(t, app, "n")
	assert.Nil(t, app.home.confirm)
	assert.Len(t, app.home.Appointments(), 2)

	app, _ = press(t, app, "x")
	app, cmd = press(t, app, "s")
	app = settle(t, app, cmd)

	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
	require.Len(t, app.home.Appointments(), 1)
}

func TestApp_Logout(t *testing.T) {
	app, gate, _ := setupTestApp(t, true)

	app, cmd := press(t, app, "L")
	app = settle(t, app, cmd)

	assert.Equal(t, 1, gate.logouts)
	assert.Equal(t, "login", app.Screen())
	assert.Empty(t, app.login.inputs[loginUser].Value())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _, _ := setupTestApp(t, true)

	_, cmd := press(t, app, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_StorageErrorShownOnHome(t *testing.T) {
	mem := kv.NewMemory()
	mem.Fail(errors.New("disk gone"))

	st := store.New(mem, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	app := NewApp(context.Background(), Services{Gate: &fakeGate{}, Store: st}, true)
	app = settle(t, app, app.Init())

	assert.Equal(t, "home", app.Screen())
	assert.ErrorIs(t, app.home.err, store.ErrStorageUnavailable)
	assert.Contains(t, app.View(), "disk gone")
}
