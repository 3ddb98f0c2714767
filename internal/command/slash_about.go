// /internal/command/slash_about.go
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/version"

	"github.com/bwmarrin/discordgo"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of this bot" }
func (c *AboutCommand) Aliases() []string   { return []string{} }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) RequireAdmin() bool  { return false }
func (c *AboutCommand) RequireDev() bool    { return false }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "ℹ️ About " + version.AppName,
		Description: version.AppDescription,
		Color:       core.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: fmt.Sprintf("%s (built %s)", version.Version, buildDate)},
			{Name: "Go", Value: strings.TrimPrefix(version.GoVersion, "go")},
			{Name: "Repository", Value: "https://github.com/Darkatse/SimiluBot"},
		},
	}

	return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
