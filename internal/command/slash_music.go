package command

import (
	"fmt"
	"strings"

	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/music/parsers"
	"github.com/Darkatse/SimiluBot/internal/music/seek"

	"github.com/bwmarrin/discordgo"
)

// MusicCommand implements /music with playback subcommands.
type MusicCommand struct {
	Bot core.BotVoice
}

func (c *MusicCommand) Name() string        { return "music" }
func (c *MusicCommand) Description() string { return "Play and control music in your voice channel" }
func (c *MusicCommand) Aliases() []string   { return []string{} }

func (c *MusicCommand) Group() string    { return "music" }
func (c *MusicCommand) Category() string { return "🎵 Music" }

func (c *MusicCommand) RequireAdmin() bool { return false }
func (c *MusicCommand) RequireDev() bool   { return false }

func (c *MusicCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "play",
				Description: "Queue a YouTube or catbox audio link, or search YouTube by title",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "input",
						Description: "Link or song title",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "parser",
						Description: "Parser to use",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "kkdai as link", Value: "kkdai-link"},
							{Name: "kkdai as pipe", Value: "kkdai-pipe"},
							{Name: "ytdlp as link", Value: "ytdlp-link"},
							{Name: "ytdlp as pipe", Value: "ytdlp-pipe"},
							{Name: "ffmpeg direct", Value: "ffmpeg-link"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "queue",
				Description: "Show the queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "now",
				Description: "Show the current track and position",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "skip",
				Description: "Skip the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stop",
				Description: "Stop playback, clear the queue and leave the voice channel",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "jump",
				Description: "Jump to a queue position, discarding tracks before it",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "position",
						Description: "1-indexed queue position",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "seek",
				Description: "Seek within the current track",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "position",
						Description: "mm:ss, hh:mm:ss, or seconds; prefix with +/- for relative",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pause",
				Description: "Pause playback",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "resume",
				Description: "Resume paused playback",
			},
		},
	}
}

func (c *MusicCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	options := slash.Event.ApplicationCommandData().Options
	if len(options) == 0 {
		return core.RespondEphemeral(slash.Session, slash.Event, "No subcommand given.")
	}

	sub := options[0]
	switch sub.Name {
	case "play":
		return c.runPlay(slash, sub.Options)
	case "queue":
		return c.runQueue(slash)
	case "now":
		return c.runNow(slash)
	case "skip":
		return c.runSkip(slash)
	case "stop":
		return c.runStop(slash)
	case "jump":
		return c.runJump(slash, sub.Options)
	case "seek":
		return c.runSeek(slash, sub.Options)
	case "pause":
		return c.runPause(slash)
	case "resume":
		return c.runResume(slash)
	default:
		return core.RespondEphemeral(slash.Session, slash.Event, "Unknown subcommand.")
	}
}

func (c *MusicCommand) runPlay(slash *core.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	session, event := slash.Session, slash.Event

	var input, selectedParser string
	for _, opt := range opts {
		switch opt.Name {
		case "input":
			input = opt.StringValue()
		case "parser":
			selectedParser = opt.StringValue()
		}
	}

	if strings.TrimSpace(input) == "" {
		return core.RespondEphemeral(session, event, "🎵 Error: input is required")
	}

	// Resolving can hit the network; defer to avoid the 3s interaction window
	if err := core.RespondDeferred(session, event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	voiceState, err := c.Bot.FindUserVoiceState(event.GuildID, event.Member.User.ID)
	if err != nil {
		return core.EditResponse(session, event, "🎵 You need to join a voice channel first.")
	}

	p := c.Bot.GetOrCreatePlayer(event.GuildID)
	added, position, err := p.Enqueue(input, "", selectedParser, event.Member.User.Username, voiceState.ChannelID)
	if err != nil {
		return core.EditResponse(session, event, fmt.Sprintf("🎵 Error: %v", err))
	}

	track := added[0]
	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Added to Queue",
		Description: trackLine(track),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Position", Value: fmt.Sprintf("%d", position), Inline: true},
		},
	}
	if track.Duration > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Duration", Value: seek.Format(track.Duration), Inline: true,
		})
	}
	if track.FileSize > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Size", Value: fmt.Sprintf("%.1f MB", float64(track.FileSize)/(1024*1024)), Inline: true,
		})
	}
	if track.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.Thumbnail}
	}
	return core.EditResponseEmbed(session, event, embed)
}

func (c *MusicCommand) runQueue(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)

	tracks := p.Queue()
	current, position, paused, err := p.NowPlaying()

	if err != nil && len(tracks) == 0 {
		return core.RespondEphemeral(slash.Session, slash.Event, "🎵 The queue is empty.")
	}

	var sb strings.Builder
	if err == nil {
		state := "▶️"
		if paused {
			state = "⏸"
		}
		fmt.Fprintf(&sb, "%s **Now:** %s `[%s / %s]`\n\n", state, trackLine(*current),
			seek.Format(position), seek.Format(current.Duration))
	}

	for i, t := range tracks {
		if i >= 10 {
			fmt.Fprintf(&sb, "…and %d more\n", len(tracks)-i)
			break
		}
		fmt.Fprintf(&sb, "`%d.` %s", i+1, trackLine(t))
		if t.Duration > 0 {
			fmt.Fprintf(&sb, " `[%s]`", seek.Format(t.Duration))
		}
		sb.WriteString("\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Queue",
		Description: sb.String(),
	}
	if total := p.QueueDuration(); total > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d track(s), %s total", len(tracks), seek.Format(total)),
		}
	}
	return core.RespondEmbed(slash.Session, slash.Event, embed)
}

func (c *MusicCommand) runNow(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)

	track, position, paused, err := p.NowPlaying()
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, "🎵 Nothing is playing.")
	}

	title := "▶️ Now Playing"
	if paused {
		title = "⏸ Paused"
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%s\n`%s / %s`", trackLine(*track), seek.Format(position), seek.Format(track.Duration)),
	}
	if track.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.Thumbnail}
	}
	if track.Requester != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Requested by " + track.Requester}
	}
	return core.RespondEmbed(slash.Session, slash.Event, embed)
}

func (c *MusicCommand) runSkip(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	if err := p.Skip(); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.Respond(slash.Session, slash.Event, "⏭ Skipped.")
}

func (c *MusicCommand) runStop(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	if err := p.Stop(); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.Respond(slash.Session, slash.Event, "⏹ Stopped playback and left the voice channel.")
}

func (c *MusicCommand) runJump(slash *core.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	position := 0
	for _, opt := range opts {
		if opt.Name == "position" {
			position = int(opt.IntValue())
		}
	}

	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	track, err := p.Jump(position)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.RespondEmbed(slash.Session, slash.Event, &discordgo.MessageEmbed{
		Title:       "⏭ Jumping",
		Description: fmt.Sprintf("Jumped to position %d: %s", position, trackLine(track)),
	})
}

func (c *MusicCommand) runSeek(slash *core.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var input string
	for _, opt := range opts {
		if opt.Name == "position" {
			input = opt.StringValue()
		}
	}

	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	target, err := p.Seek(strings.TrimSpace(input))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.Respond(slash.Session, slash.Event, fmt.Sprintf("⏩ Seeking to `%s`.", seek.Format(target)))
}

func (c *MusicCommand) runPause(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	if err := p.Pause(); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.Respond(slash.Session, slash.Event, "⏸ Paused.")
}

func (c *MusicCommand) runResume(slash *core.SlashInteractionContext) error {
	p := c.Bot.GetOrCreatePlayer(slash.Event.GuildID)
	if err := p.Resume(); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("🎵 %v", err))
	}
	return core.Respond(slash.Session, slash.Event, "▶️ Resumed.")
}

func trackLine(t parsers.TrackParse) string {
	switch {
	case t.Title != "" && t.URL != "":
		return fmt.Sprintf("[%s](%s)", t.Title, t.URL)
	case t.Title != "":
		return t.Title
	case t.URL != "":
		return t.URL
	default:
		return "Unknown track"
	}
}
