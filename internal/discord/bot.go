package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/Darkatse/SimiluBot/internal/config"
	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/music/parsers/kkdai"
	"github.com/Darkatse/SimiluBot/internal/music/player"
	"github.com/Darkatse/SimiluBot/internal/music/source_resolver"
	"github.com/Darkatse/SimiluBot/internal/storage"
	"github.com/rs/zerolog/log"

	"slices"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg             *discordgo.Session
	cfg            *config.Config
	settings       *config.Settings
	storage        *storage.Storage
	sourceResolver *source_resolver.SourceResolver
	players        map[string]*player.Player
	mu             sync.RWMutex
}

// StartBot starts the Discord bot and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, settings *config.Settings, store *storage.Storage) error {
	b := &Bot{
		cfg:      cfg,
		settings: settings,
		storage:  store,
		players:  make(map[string]*player.Player),
	}

	core.SetDeveloperID(cfg.DeveloperID)
	kkdai.SetProxy(settings.YouTube.Proxy)

	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

// run starts the Discord bot
func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, cleaning up")
	b.stopAllPlayers()
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Warn().Err(err).Msg("error retrieving bot user")
		return
	}

	b.registerAllCommands()

	// Leave any blacklisted guilds on startup
	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
			if err := s.GuildLeave(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("error registering slash commands")
			}
		} else {
			log.Info().Msg("registering slash commands skipped")
		}
	}

	log.Info().Str("user", botInfo.Username).Msg("discord bot is running")
}

// onGuildCreate is called when the bot joins a guild
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("bot added to guild")

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Info().Str("guild", g.Guild.ID).Msg("leaving blacklisted guild")
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to leave guild")
		}
		return
	}

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to register commands for new guild")
	}
}

// onMessageCreate dispatches plain guild messages to commands that watch
// the message stream, such as MEGA link auto-detection.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		return
	}

	for _, cmd := range core.AllCommands() {
		handler, ok := cmd.(core.MessageHandler)
		if !ok {
			continue
		}
		ctx := &core.MessageContext{
			Session:  s,
			Event:    m,
			Storage:  b.storage,
			Settings: b.settings,
		}
		if err := handler.Message(ctx); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("error running message handler")
		}
	}
}

// onInteractionCreate dispatches slash and component interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name

		cmd, ok := core.GetCommand(cmdName)
		if !ok {
			log.Warn().Str("command", cmdName).Msg("unknown command")
			return
		}

		ctx := &core.SlashInteractionContext{
			Session:  s,
			Event:    i,
			Storage:  b.storage,
			Settings: b.settings,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Error().Err(err).Str("command", cmdName).Msg("error running slash command")
			core.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		var matched core.Command
		for _, cmd := range core.AllCommands() {
			if customID == cmd.Name() ||
				len(customID) > len(cmd.Name()) && customID[:len(cmd.Name())+1] == cmd.Name()+":" {
				matched = cmd
				break
			}
		}
		if matched == nil {
			log.Warn().Str("custom_id", customID).Msg("no matching component handler")
			return
		}

		compHandler, ok := matched.(core.ComponentInteractionHandler)
		if !ok {
			log.Warn().Str("command", matched.Name()).Msg("command does not handle components")
			return
		}

		ctx := &core.ComponentInteractionContext{
			Session:  s,
			Event:    i,
			Storage:  b.storage,
			Settings: b.settings,
		}
		if err := compHandler.Component(ctx); err != nil {
			log.Error().Err(err).Str("command", matched.Name()).Msg("error running component handler")
			core.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
		}

	default:
		log.Debug().Int("type", int(i.Type)).Msg("unhandled interaction type")
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}

// stopAllPlayers disconnects every guild player on shutdown.
func (b *Bot) stopAllPlayers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for guildID, p := range b.players {
		if err := p.Stop(); err != nil && err != player.ErrNotConnected {
			log.Warn().Err(err).Str("guild", guildID).Msg("error stopping player")
		}
	}
}
