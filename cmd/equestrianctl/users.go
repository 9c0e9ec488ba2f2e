package main

import (
	"fmt"
	"log/slog"

	"equestrian/internal/app"
	"equestrian/internal/domain/models"
	"equestrian/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var newUser dto.UserRegisterInput

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user, by default an administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.New().Struct(newUser); err != nil {
			return fmt.Errorf("invalid user: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			id, err := a.Users.RegisterUser(cmd.Context(), newUser)
			if err != nil {
				return err
			}

			log.Info("user created",
				slog.String("user_id", id.String()),
				slog.String("username", newUser.Username),
				slog.String("role", newUser.Role),
			)
			return nil
		})
	},
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "login name")
	f.StringVar(&newUser.Email, "email", "", "email address")
	f.StringVar(&newUser.Password, "password", "", "password, 8 to 64 characters")
	f.StringVar(&newUser.FirstName, "first-name", "", "first name")
	f.StringVar(&newUser.LastName, "last-name", "", "last name")
	f.StringVar(&newUser.Role, "role", string(models.RoleAdmin), "admin, moderator or viewer")

	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
