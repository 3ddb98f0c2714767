package core

import (
	"github.com/Darkatse/SimiluBot/internal/storage"
)

// WithGroupAccessCheck wraps a command to enforce group access
func WithGroupAccessCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var (
					guildID string
					store   *storage.Storage
					respond func(string)
				)

				switch v := ctx.(type) {

				// Slash Command
				case *SlashInteractionContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) { RespondEphemeral(v.Session, v.Event, msg) }

				// Component Interaction (button, menu, etc.)
				case *ComponentInteractionContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) { RespondEphemeral(v.Session, v.Event, msg) }

					if disabledGroup(cmd, guildID, store, respond) {
						return nil
					}
					if ch, ok := cmd.(ComponentInteractionHandler); ok {
						return ch.Component(v)
					}
					return nil

				// Regular message command
				case *MessageContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(_ string) {}

					if disabledGroup(cmd, guildID, store, respond) {
						return nil
					}
					if mh, ok := cmd.(MessageHandler); ok {
						return mh.Message(v)
					}
					return nil

				default:
					return cmd.Run(ctx)
				}

				if disabledGroup(cmd, guildID, store, respond) {
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func disabledGroup(cmd Command, guildID string, store *storage.Storage, respond func(string)) bool {
	if cmd.Group() == "" || store == nil {
		return false
	}
	if store.IsGroupDisabled(guildID, cmd.Group()) {
		respond("This command group is disabled on this server.")
		return true
	}
	return false
}
