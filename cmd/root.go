package cmd

import (
	"context"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/consultas/internal/application"
	"github.com/inovacc/consultas/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Track recurring patient appointments",
	Long: `Consultas keeps a local list of patient appointments and shows the ones
dated in the current month.

Run it without arguments to open the interactive interface (login, list and
form screens), or use the subcommands for scripted access. Every subcommand
except login, logout and version requires a session.`,
	Annotations:        map[string]string{annotationPublic: "true"},
	SilenceUsage:       true,
	PersistentPreRunE:  setupEnv,
	PersistentPostRunE: teardownEnv,
	RunE:               runTUI,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	// PersistentPostRunE is skipped when a command fails
	_ = teardownEnv(rootCmd, nil)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	loggedIn, err := current.gate.LoggedIn(ctx)
	if err != nil {
		return err
	}

	app := cli.NewApp(ctx, cli.Services{
		Gate:     current.gate,
		Store:    current.store,
		Location: current.loc,
	}, loggedIn)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}
