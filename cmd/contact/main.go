package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avunculargroup/avuncular-web/pkg/contactform"
	"github.com/avunculargroup/avuncular-web/pkg/httpclient"
	"github.com/avunculargroup/avuncular-web/pkg/logger"
)

var errNotDelivered = errors.New("message not delivered")

type options struct {
	endpoint      string
	fallbackEmail string
	timeout       time.Duration
	values        contactform.Values
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "contact",
		Short:         "Send a message through the Avuncular Group contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller := contactform.NewController(opts.endpoint, opts.fallbackEmail, httpclient.NewStandardClient(opts.timeout))
			return run(cmd.Context(), controller, opts.values, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", "https://avunculargroup.com/api/contact", "contact endpoint URL")
	flags.StringVar(&opts.fallbackEmail, "fallback-email", "info@avunculargroup.com", "address shown when delivery fails")
	flags.DurationVar(&opts.timeout, "timeout", httpclient.DefaultTimeout, "request timeout")
	flags.StringVar(&opts.values.Name, "name", "", "your name")
	flags.StringVar(&opts.values.Email, "email", "", "your email address")
	flags.StringVar(&opts.values.Subject, "subject", "", "message subject")
	flags.StringVar(&opts.values.Message, "message", "", "message body")

	return cmd
}

// run submits once and prints what the page would show
func run(ctx context.Context, controller *contactform.Controller, values contactform.Values, out io.Writer) error {
	result, err := controller.Submit(ctx, values)
	if err != nil {
		return err
	}

	if result.FieldErrors != nil {
		for _, rule := range contactform.Rules() {
			if msg, ok := result.FieldErrors[rule.Field]; ok {
				fmt.Fprintf(out, "%s: %s\n", rule.Field, msg)
			}
		}
		return result.FieldErrors
	}

	fmt.Fprintf(out, "%s\n%s\n", result.Notification.Title, result.Notification.Description)
	if !result.Submitted {
		return errNotDelivered
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
