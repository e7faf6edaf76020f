package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var loginEmail, loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			var err error
			if email, err = prompt("Email: "); err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			var err error
			if password, err = prompt("Password: "); err != nil {
				return err
			}
		}
		if err := a.session.Login(cmd.Context(), email, password); err != nil {
			return friendly(err)
		}
		user := a.session.User()
		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		a.session.Logout()
		fmt.Println("Logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !a.session.IsAuthenticated() {
			fmt.Println("Not logged in")
			return nil
		}
		user := a.session.User()
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if exp, ok := a.session.TokenExpiry(); ok {
			fmt.Printf("Token expires %s\n", exp.Format(time.RFC1123))
		}
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the session token against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := a.session.VerifyToken(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Session valid for %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, verifyCmd)
}
