package command

import (
	"fmt"
	"sort"

	"github.com/Darkatse/SimiluBot/internal/core"

	"github.com/bwmarrin/discordgo"
)

// CommandsToggleCommand lets guild admins enable or disable a command group
// (music, media) for their server.
type CommandsToggleCommand struct{}

func (c *CommandsToggleCommand) Name() string        { return "commands-toggle" }
func (c *CommandsToggleCommand) Description() string { return "Enable or disable a command group" }
func (c *CommandsToggleCommand) Aliases() []string   { return []string{} }

func (c *CommandsToggleCommand) Group() string    { return "core" }
func (c *CommandsToggleCommand) Category() string { return "🕯️ Information" }

func (c *CommandsToggleCommand) RequireAdmin() bool { return true }
func (c *CommandsToggleCommand) RequireDev() bool   { return false }

func (c *CommandsToggleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	groupChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, group := range toggleableGroups() {
		groupChoices = append(groupChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  group,
			Value: group,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "group",
				Description: "Command group to toggle",
				Required:    true,
				Choices:     groupChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "state",
				Description: "Enable or disable the group",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Enable", Value: "enable"},
					{Name: "Disable", Value: "disable"},
				},
			},
		},
	}
}

// toggleableGroups lists the distinct command groups except "core", which
// must stay reachable so the toggle itself cannot be locked out.
func toggleableGroups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, cmd := range core.AllCommands() {
		g := cmd.Group()
		if g == "" || g == "core" || seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

func (c *CommandsToggleCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	data := slash.Event.ApplicationCommandData()
	group := data.Options[0].StringValue()
	state := data.Options[1].StringValue()

	if group == "core" {
		return core.RespondEphemeral(slash.Session, slash.Event, "The `core` group cannot be toggled.")
	}

	disabled := state == "disable"
	if err := slash.Storage.SetGroupDisabled(slash.Event.GuildID, group, disabled); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event,
			fmt.Sprintf("Failed to update the `%s` group.", group))
	}

	if disabled {
		return core.RespondEphemeral(slash.Session, slash.Event,
			fmt.Sprintf("Command group `%s` disabled on this server.", group))
	}
	return core.RespondEphemeral(slash.Session, slash.Event,
		fmt.Sprintf("Command group `%s` enabled on this server.", group))
}
