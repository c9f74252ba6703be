package main

import (
	"errors"
	"fmt"

	"listings-console/internal/domain/user"
	"listings-console/internal/infrastructure/api"
	"listings-console/internal/pkg/validation"
	"listings-console/internal/usecase"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check admin credentials against the backend",
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	form := user.LoginForm{Email: loginEmail, Password: loginPassword}
	if err := usecase.ValidateLoginForm(form); err != nil {
		if errs, ok := validation.AsErrors(err); ok {
			for field, msg := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
			}
		}
		return errors.New("invalid login form")
	}

	e, err := newEnv()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess := e.client.NewSession(nil)
	if err := sess.CSRF(ctx); err != nil {
		return err
	}
	if err := sess.Login(ctx, form); err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && se.Message != "" {
			return errors.New(se.Message)
		}
		return err
	}
	usr, err := sess.CurrentUser(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Logout(ctx) }()

	verified := "unverified"
	if usr.IsVerified() {
		verified = "verified"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> (%s)\n", usr.Name, usr.Email, verified)
	return nil
}
