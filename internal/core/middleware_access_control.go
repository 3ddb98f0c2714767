package core

import (
	"github.com/bwmarrin/discordgo"
)

// WithAccessControl wraps a command to enforce admin or developer access if
// the command requires it.
func WithAccessControl() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var (
					session *discordgo.Session
					member  *discordgo.Member
					guildID string
				)

				switch v := ctx.(type) {

				// Slash Command
				case *SlashInteractionContext:
					session, member, guildID = v.Session, v.Event.Member, v.Event.GuildID

				// Component Interaction (button, menu, etc.)
				case *ComponentInteractionContext:
					session, member, guildID = v.Session, v.Event.Member, v.Event.GuildID

				// Regular message command
				case *MessageContext:
					session, guildID = v.Session, v.Event.GuildID
					member = v.Event.Member // can be nil in DMs
				default:
					return cmd.Run(ctx)
				}

				if cmd.RequireDev() {
					if member == nil || !IsDeveloper(member.User.ID) {
						sendAccessDenied(ctx, session, "This command is reserved for the bot developer.")
						return nil
					}
				}

				if cmd.RequireAdmin() {
					if guildID == "" || member == nil {
						sendAccessDenied(ctx, session, "Cannot determine your admin status in this context.")
						return nil
					}

					if !IsAdministrator(session, guildID, member) {
						sendAccessDenied(ctx, session, "You must be an admin to use this command.")
						return nil
					}
				}

				return cmd.Run(ctx)
			},
		}
	}
}

// sendAccessDenied sends an appropriate access denied message depending on the context
func sendAccessDenied(ctx interface{}, session *discordgo.Session, msg string) {
	switch e := ctx.(type) {

	case *SlashInteractionContext:
		RespondEphemeral(session, e.Event, msg)

	case *ComponentInteractionContext:
		RespondEphemeral(session, e.Event, msg)
	}
}
