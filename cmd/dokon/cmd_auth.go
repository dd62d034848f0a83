package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dokon/app/models"
)

var authPassword string

func init() {
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
}

func promptPassword() (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// dokon register <email> <name>
var registerCmd = &cobra.Command{
	Use:   "register <email> <name>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}

		user, err := stores.Session.Register(cmd.Context(), models.RegisterInput{
			Email:    args[0],
			Name:     args[1],
			Password: password,
		})
		if err != nil {
			return err
		}
		if err := persistSession(stores); err != nil {
			return err
		}
		fmt.Printf("Welcome, %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

// dokon login <email>
var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}

		user, err := stores.Session.Login(cmd.Context(), models.LoginInput{
			Email:    args[0],
			Password: password,
		})
		if err != nil {
			return err
		}
		if err := persistSession(stores); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

// dokon logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out locally and remotely",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		stores.Session.Logout(cmd.Context())
		if err := persistSession(stores); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

// dokon whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		user := stores.Session.Refresh(cmd.Context())
		if user == nil {
			if err := persistSession(stores); err != nil {
				return err
			}
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		if exp := stores.Session.TokenExpiresAt(); !exp.IsZero() {
			fmt.Printf("Token expires %s\n", exp.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var profileName, profileEmail string

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "new display name")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "new email address")
}

// dokon profile --name ... --email ...
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the signed-in user's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		user, err := stores.Session.UpdateProfile(cmd.Context(), models.ProfileInput{
			Name:  profileName,
			Email: profileEmail,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
		return nil
	},
}
