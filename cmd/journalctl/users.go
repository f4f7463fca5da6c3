package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// register
	var email, name, password string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"email": email, "password": password}
			if name != "" {
				payload["displayName"] = name
			}
			data, err := doPostJSON("/api/users", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "User email (required)")
	registerCmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(registerCmd)

	// login
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/auth", map[string]interface{}{"email": loginEmail, "password": loginPassword})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "User email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(usersCmd)
}
