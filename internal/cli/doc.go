// Package cli provides the terminal user interface for consultas.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Screens
//
// [App] routes between three screens, mirroring the mobile app:
//   - Login: username and masked password, checked by the login gate
//   - Home: appointments of the current month, with new/edit/delete
//   - Form: create or edit one appointment
//
// Screens never touch storage directly. Store and gate calls run inside
// tea.Cmd functions and report back through messages, so Update stays
// free of I/O.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
