package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestHashCommandDeterministic(t *testing.T) {
	t.Parallel()
	cmd := &discordgo.ApplicationCommand{
		Name:        "music",
		Description: "Play music",
		Options: []*discordgo.ApplicationCommandOption{
			{Name: "play", Description: "Play a track", Type: discordgo.ApplicationCommandOptionSubCommand},
		},
	}

	if hashCommand(cmd) != hashCommand(cmd) {
		t.Fatal("hash is not deterministic")
	}
}

func TestHashCommandIgnoresOptionOrder(t *testing.T) {
	t.Parallel()
	a := &discordgo.ApplicationCommand{
		Name: "music",
		Options: []*discordgo.ApplicationCommandOption{
			{Name: "play", Type: discordgo.ApplicationCommandOptionSubCommand},
			{Name: "stop", Type: discordgo.ApplicationCommandOptionSubCommand},
		},
	}
	b := &discordgo.ApplicationCommand{
		Name: "music",
		Options: []*discordgo.ApplicationCommandOption{
			{Name: "stop", Type: discordgo.ApplicationCommandOptionSubCommand},
			{Name: "play", Type: discordgo.ApplicationCommandOptionSubCommand},
		},
	}

	if hashCommand(a) != hashCommand(b) {
		t.Fatal("hash should not depend on option order")
	}
}

func TestHashCommandChangesWithDefinition(t *testing.T) {
	t.Parallel()
	a := &discordgo.ApplicationCommand{Name: "music", Description: "Play music"}
	b := &discordgo.ApplicationCommand{Name: "music", Description: "Play music and more"}

	if hashCommand(a) == hashCommand(b) {
		t.Fatal("different descriptions should hash differently")
	}
}

func TestHashCommandIncludesChoices(t *testing.T) {
	t.Parallel()
	a := &discordgo.ApplicationCommand{
		Name: "music",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name: "parser",
				Type: discordgo.ApplicationCommandOptionString,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "auto", Value: ""},
				},
			},
		},
	}
	b := &discordgo.ApplicationCommand{
		Name: "music",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name: "parser",
				Type: discordgo.ApplicationCommandOptionString,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "auto", Value: ""},
					{Name: "ytdlp", Value: "ytdlp-link"},
				},
			},
		},
	}

	if hashCommand(a) == hashCommand(b) {
		t.Fatal("different choices should hash differently")
	}
}

func TestGuildCachePathLayout(t *testing.T) {
	t.Parallel()
	got := guildCachePath("123456")
	want := "data/commands/123456.json"
	if got != want {
		t.Fatalf("guildCachePath = %q, want %q", got, want)
	}
}
