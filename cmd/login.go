package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/inovacc/consultas/internal/application"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Long: `Check the credentials and store a session token.

The password is read from the terminal without echo. When stdin is not a
terminal it is read as a single line.`,
	Annotations: map[string]string{annotationPublic: "true"},
	Args:        cobra.NoArgs,
	RunE:        runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User name (prompted when empty)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when empty)")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.ErrOrStderr()

	user := strings.TrimSpace(loginUser)
	if user == "" {
		_, _ = fmt.Fprint(out, "Usuário: ")

		line, err := readLine(in)
		if err != nil {
			return fmt.Errorf("reading user: %w", err)
		}

		user = strings.TrimSpace(line)
	}

	password := loginPassword
	if password == "" {
		_, _ = fmt.Fprint(out, "Senha: ")

		p, err := readPassword(cmd, in)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		password = p
	}

	if err := current.gate.Login(cmd.Context(), user, password); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", user)

	return nil
}

func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		return string(b), err
	}

	return readLine(in)
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "End the current session",
	Annotations: map[string]string{annotationPublic: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := current.gate.Logout(cmd.Context()); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{annotationPublic: "true", annotationOffline: "true"},
	Args:        cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", application.AppName, application.Version)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}
