package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginStatus bool

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to the judge and store the session credential",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		if loginStatus {
			return printLoginStatus(env)
		}

		if len(args) == 0 {
			return fmt.Errorf("usage: prajna login <username>")
		}
		username := args[0]

		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), env.cfg.RequestTimeout())
		defer cancel()

		if err := env.client.Login(ctx, username, strings.TrimSpace(string(raw))); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s\n", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Erase the stored session credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		if err := env.client.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// printLoginStatus inspects the stored access token without verifying
// its signature; the server remains the authority.
func printLoginStatus(env *env) error {
	token := env.store.AccessToken()
	if token == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		fmt.Println("Logged in (token unreadable).")
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		fmt.Println("Logged in.")
		return nil
	}

	if exp.Before(time.Now()) {
		fmt.Printf("Session token expired at %s (will renew on next request).\n", exp.Local().Format(time.RFC1123))
	} else {
		fmt.Printf("Logged in, token valid until %s.\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func init() {
	loginCmd.Flags().BoolVar(&loginStatus, "status", false, "Show current session status")
}
