package core

import (
	"github.com/Darkatse/SimiluBot/internal/config"
	"github.com/Darkatse/SimiluBot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Group() string
	Category() string
	RequireAdmin() bool
	RequireDev() bool
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Contexts - what runtime hands you when executing a command
// Slash command
type SlashInteractionContext struct {
	Session  *discordgo.Session
	Event    *discordgo.InteractionCreate
	Args     []string
	Storage  *storage.Storage
	Settings *config.Settings
}

type ComponentInteractionContext struct {
	Session  *discordgo.Session
	Event    *discordgo.InteractionCreate
	Storage  *storage.Storage
	Settings *config.Settings
}

// Hook for component beyond Run
type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// Regular message
type MessageContext struct {
	Session  *discordgo.Session
	Event    *discordgo.MessageCreate
	Storage  *storage.Storage
	Settings *config.Settings
}

// Hook for plain messages beyond Run
type MessageHandler interface {
	Message(*MessageContext) error
}
