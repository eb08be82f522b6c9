package command

import (
	commandHandler "soundgate/internal/command/handler"
	"soundgate/internal/service/session"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewCreditsHandler,
	commandHandler.NewSessionHandler,
	wire.Bind(new(commandHandler.SessionIssuer), new(*session.Service)),
)

type Command struct {
	creditsHandler *commandHandler.CreditsHandler
	sessionHandler *commandHandler.SessionHandler
}

// NewCommand .
func NewCommand(
	creditsHandler *commandHandler.CreditsHandler,
	sessionHandler *commandHandler.SessionHandler,
) *Command {
	return &Command{
		creditsHandler: creditsHandler,
		sessionHandler: sessionHandler,
	}
}

// Register 掛上子命令；newCmd 只在子命令真正執行時才建立依賴
func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	run := func(pick func(*Command) func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()
			return pick(command)(cmd, args)
		}
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "manage browser sessions",
	}
	sessionCmd.AddCommand(
		&cobra.Command{
			Use:   "issue <userID>",
			Short: "sign a session token for an active user",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(c *Command) func(*cobra.Command, []string) error {
				return c.sessionHandler.Issue
			}),
		},
		&cobra.Command{
			Use:   "revoke <token>",
			Short: "revoke a session token before it expires",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(c *Command) func(*cobra.Command, []string) error {
				return c.sessionHandler.Revoke
			}),
		},
	)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "credits",
			Short: "fetch the SunoAPI credits balance once",
			Args:  cobra.NoArgs,
			RunE: run(func(c *Command) func(*cobra.Command, []string) error {
				return c.creditsHandler.Balance
			}),
		},
		sessionCmd,
	)
}
