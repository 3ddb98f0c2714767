package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/version"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{} }

func (c *HelpCommand) Group() string    { return "core" }
func (c *HelpCommand) Category() string { return "🕯️ Information" }

func (c *HelpCommand) RequireAdmin() bool { return false }
func (c *HelpCommand) RequireDev() bool   { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

var categoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🎵 Music":        10,
	"📦 Media":        20,
}

func (c *HelpCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	categoryMap := make(map[string][]core.Command)
	for _, cmd := range core.AllCommands() {
		if cmd.RequireAdmin() && !core.IsAdministrator(session, event.GuildID, event.Member) {
			continue
		}
		if cmd.RequireDev() && (event.Member == nil || !core.IsDeveloper(event.Member.User.ID)) {
			continue
		}
		categoryMap[cmd.Category()] = append(categoryMap[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categoryWeights[categories[i]] < categoryWeights[categories[j]]
	})

	var sb strings.Builder
	for _, cat := range categories {
		cmds := categoryMap[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

		fmt.Fprintf(&sb, "**%s**\n", cat)
		for _, cmd := range cmds {
			fmt.Fprintf(&sb, "`/%s` — %s\n", cmd.Name(), cmd.Description())
		}
		sb.WriteString("\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: sb.String(),
		Color:       core.EmbedColor,
	}

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
