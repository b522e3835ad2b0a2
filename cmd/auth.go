package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/session"
)

var (
	authEmailFlag    string
	authPasswordFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session token",
	Long: `Sign in to Kalam. The returned token is stored in the session file and
sent with every later request.

The password is read from the terminal without echo unless --password is
given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, false)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, true)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authEmailFlag, "email", "", "Account email")
		c.Flags().StringVar(&authPasswordFlag, "password", "", "Account password (prompted when omitted)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}

func runAuth(cmd *cobra.Command, register bool) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	creds, err := readCredentials(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var resp *api.AuthResponse
	if register {
		a.display.StartSpinner("Creating account...")
		resp, err = a.client.Register(ctx, creds)
	} else {
		a.display.StartSpinner("Signing in...")
		resp, err = a.client.Login(ctx, creds)
	}
	a.display.StopSpinner()
	if err != nil {
		if register {
			return fmt.Errorf("registration failed: %w", err)
		}
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	email := resp.User.Email
	if email == "" {
		email = creds.Email
	}
	if err := a.sessions.Save(session.Session{Token: resp.Token, Email: email}); err != nil {
		return err
	}

	if register {
		a.display.ShowSuccess("Account Created!", "Welcome to Kalam AI! You can now start creating content.")
	} else {
		a.display.ShowSuccess("Welcome back!", "You have successfully logged in as "+email+".")
	}
	return nil
}

func readCredentials(cmd *cobra.Command) (api.Credentials, error) {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	email := strings.TrimSpace(authEmailFlag)
	if email == "" {
		var err error
		if email, err = p.line("Email", ""); err != nil {
			return api.Credentials{}, err
		}
	}
	if email == "" {
		return api.Credentials{}, fmt.Errorf("email is required")
	}

	password := authPasswordFlag
	if password == "" {
		var err error
		if password, err = readPassword(cmd, p); err != nil {
			return api.Credentials{}, err
		}
	}
	if password == "" {
		return api.Credentials{}, fmt.Errorf("password is required")
	}
	return api.Credentials{Email: email, Password: password}, nil
}

// readPassword reads without echo on a terminal, else a plain line.
func readPassword(cmd *cobra.Command, p *prompter) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(f.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		b, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return p.line("Password", "")
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if !a.sessions.Current().Valid() {
		a.display.ShowWarning("Not Signed In", "There is no stored session.")
		return nil
	}
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	a.display.ShowSuccess("Signed Out", "Session removed from "+a.sessions.Path()+".")
	return nil
}
