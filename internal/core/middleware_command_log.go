package core

import (
	"github.com/rs/zerolog/log"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				// Run the actual command first
				err := cmd.Run(ctx)

				// Then try to log its execution
				switch v := ctx.(type) {

				// Slash Command
				case *SlashInteractionContext:
					if v.Event.Member == nil {
						break
					}
					user := v.Event.Member.User
					if e := LogCommand(v.Session, v.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
						log.Warn().Err(e).Str("command", cmd.Name()).Msg("failed to log slash command")
					}

				// Component Interaction (button, menu, etc.)
				case *ComponentInteractionContext:
					if v.Event.Member == nil {
						break
					}
					user := v.Event.Member.User
					if e := LogCommand(v.Session, v.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
						log.Warn().Err(e).Str("command", cmd.Name()).Msg("failed to log component command")
					}

				}

				return err
			},
		}
	}
}
