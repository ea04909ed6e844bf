package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"portfolio/pkg/contactclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		endpoint string
		name     string
		email    string
		message  string
	)

	cmd := &cobra.Command{
		Use:           "contact",
		Short:         "Send a message through the portfolio contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := contactclient.New(endpoint)
			form.SetName(name)
			form.SetEmail(email)
			form.SetMessage(message)

			if err := prompt(form); err != nil {
				if errors.Is(err, terminal.InterruptErr) {
					return nil
				}
				return err
			}

			ack := form.Submit(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
			if !ack.Success {
				return errors.New("message not delivered")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8000/api/contact", "contact endpoint URL")
	cmd.Flags().StringVar(&name, "name", "", "your name (prompted when empty)")
	cmd.Flags().StringVar(&email, "email", "", "your email (prompted when empty)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message body (prompted when empty)")
	return cmd
}

// prompt asks for every draft field that is still blank
func prompt(form *contactclient.Form) error {
	draft := form.Draft()
	required := survey.WithValidator(survey.Required)

	if strings.TrimSpace(draft.Name) == "" {
		var v string
		if err := survey.AskOne(&survey.Input{Message: "Name:"}, &v, required); err != nil {
			return err
		}
		form.SetName(v)
	}
	if strings.TrimSpace(draft.Email) == "" {
		var v string
		if err := survey.AskOne(&survey.Input{Message: "Email:"}, &v, required); err != nil {
			return err
		}
		form.SetEmail(v)
	}
	if strings.TrimSpace(draft.Message) == "" {
		var v string
		if err := survey.AskOne(&survey.Multiline{Message: "Message:"}, &v, required); err != nil {
			return err
		}
		form.SetMessage(v)
	}
	return nil
}
