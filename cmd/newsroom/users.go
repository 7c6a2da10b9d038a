package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/newsroom/pkg/password"
	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/repository"
	"github.com/dmitrymomot/newsroom/svc/auth"
)

var (
	errUsernameRequired = errors.New("username is required")
	errPasswordLength   = fmt.Errorf("password must be between %d and %d characters", auth.MinPasswordLength, auth.MaxPasswordLength)
)

func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage admin users",
	}
	cmd.AddCommand(newUsersCreateCmd())
	return cmd
}

func newUsersCreateCmd() *cobra.Command {
	var username, pass string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			hash, err := hashNewPassword(username, pass)
			if err != nil {
				return err
			}

			cfg, err := load[pg.Config]()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			id, err := repository.NewUsers(pool).Create(ctx, username, hash)
			if err != nil {
				return err
			}
			cmd.Printf("Created user %s (%s)\n", username, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&pass, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// hashNewPassword applies the same length rule as a password change.
func hashNewPassword(username, pass string) (string, error) {
	if username == "" {
		return "", errUsernameRequired
	}
	if n := utf8.RuneCountInString(pass); n < auth.MinPasswordLength || n > auth.MaxPasswordLength {
		return "", errPasswordLength
	}
	return password.NewHasher().Hash([]byte(pass))
}
