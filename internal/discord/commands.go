package discord

import (
	"sync"
	"time"

	"github.com/Darkatse/SimiluBot/internal/catbox"
	"github.com/Darkatse/SimiluBot/internal/command"
	"github.com/Darkatse/SimiluBot/internal/convert"
	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/mega"
	"github.com/rs/zerolog/log"

	"github.com/bwmarrin/discordgo"
)

// registerAllCommands populates the command registry with every command the
// bot exposes, wrapped in the shared middleware chain.
func (b *Bot) registerAllCommands() {
	mws := []core.Middleware{
		core.WithAccessControl(),
		core.WithGroupAccessCheck(),
		core.WithGuildOnly(),
		core.WithCommandLogger(),
	}

	if b.settings.Music.Enabled {
		core.RegisterCommand(core.ApplyMiddlewares(&command.MusicCommand{Bot: b}, mws...))
	} else {
		log.Info().Msg("music commands disabled by settings")
	}

	if s := b.settings.Upload.Service; s != "" && s != "catbox" {
		log.Warn().Str("service", s).Msg("unknown upload service, using catbox")
	}
	core.RegisterCommand(core.ApplyMiddlewares(&command.MediaCommand{
		Downloader: mega.NewDownloader(b.settings.Mega.TempDir),
		Converter:  convert.New(b.settings.Conversion.DefaultBitrate),
		Uploader:   catbox.NewUploader(b.cfg.CatboxUserHash),
	}, mws...))

	core.RegisterCommand(core.ApplyMiddlewares(&command.CommandsToggleCommand{}, mws...))
	core.RegisterCommand(core.ApplyMiddlewares(&command.HelpCommand{}, mws...))
	core.RegisterCommand(core.ApplyMiddlewares(&command.AboutCommand{}, mws...))
}

// registerCommands syncs slash commands for a guild with Discord:
// deletes obsolete ones, creates or updates commands whose definition changed.
func (b *Bot) registerCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	localHashes := loadGuildCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, cmd := range core.AllCommands() {
		if def := normalizeDefinition(cmd); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = hashCommand(def)
		}
	}

	// Delete obsolete
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; !ok {
			log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", old.Name).Msg("failed to delete command")
			}
			delete(localHashes, old.Name)
		}
	}

	// Create or update changed commands
	var changed []*discordgo.ApplicationCommand
	for _, cmd := range wanted {
		if localHashes[cmd.Name] != wantedHashes[cmd.Name] {
			changed = append(changed, cmd)
		}
	}

	if len(changed) > 0 {
		log.Info().Str("guild", guildID).Int("count", len(changed)).Msg("updating changed commands")
		b.registerCommandsWithRateLimit(appID, guildID, changed)
		for _, c := range changed {
			localHashes[c.Name] = wantedHashes[c.Name]
		}
	}

	saveGuildCommandHashes(guildID, localHashes)
	return nil
}

// normalizeDefinition extracts the slash definition from a command,
// defaulting the type for bare definitions.
func normalizeDefinition(cmd core.Command) *discordgo.ApplicationCommand {
	if slash, ok := cmd.(core.SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	return nil
}

// registerCommandsWithRateLimit creates commands spaced out to stay under
// Discord's application command rate limit.
func (b *Bot) registerCommandsWithRateLimit(appID, guildID string, cmds []*discordgo.ApplicationCommand) {
	rateLimit := time.Second / 40
	ticker := time.NewTicker(rateLimit)
	defer ticker.Stop()

	var wg sync.WaitGroup

	for _, job := range cmds {
		wg.Add(1)

		go func(cmd *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			_, err := b.dg.ApplicationCommandCreate(appID, guildID, cmd)
			if err != nil {
				log.Error().Err(err).Str("guild", guildID).Str("command", cmd.Name).Msg("can't create command")
			} else {
				log.Info().Str("guild", guildID).Str("command", cmd.Name).Msg("command created")
			}
		}(job)
	}

	wg.Wait()
}

// appID returns the bot's application ID, fetching from Discord if not
// cached in State yet.
func (b *Bot) appID() (string, error) {
	if id := b.dg.State.User.ID; id != "" {
		return id, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
