package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Darkatse/SimiluBot/internal/catbox"
	"github.com/Darkatse/SimiluBot/internal/convert"
	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/mega"
	"github.com/Darkatse/SimiluBot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// MediaCommand implements /media: download a mega.nz link, convert it to AAC
// and upload the result to catbox. It also reacts to MEGA links posted in
// ordinary messages when auto-detection is enabled.
type MediaCommand struct {
	Downloader *mega.Downloader
	Converter  *convert.Converter
	Uploader   *catbox.Uploader
}

func (c *MediaCommand) Name() string        { return "media" }
func (c *MediaCommand) Description() string { return "Download a MEGA link, convert to AAC and upload" }
func (c *MediaCommand) Aliases() []string   { return []string{} }

func (c *MediaCommand) Group() string    { return "media" }
func (c *MediaCommand) Category() string { return "📦 Media" }

func (c *MediaCommand) RequireAdmin() bool { return false }
func (c *MediaCommand) RequireDev() bool   { return false }

func (c *MediaCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "mega.nz file link",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "bitrate",
				Description: "AAC bitrate in kbps (default from config)",
				Required:    false,
			},
		},
	}
}

func (c *MediaCommand) Run(ctx interface{}) error {
	switch v := ctx.(type) {
	case *core.SlashInteractionContext:
		return c.runSlash(v)
	case *core.MessageContext:
		return c.Message(v)
	default:
		return nil
	}
}

func (c *MediaCommand) runSlash(slash *core.SlashInteractionContext) error {
	session, event := slash.Session, slash.Event

	var url string
	var bitrate int
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "url":
			url = opt.StringValue()
		case "bitrate":
			bitrate = int(opt.IntValue())
		}
	}

	if !mega.IsMegaLink(url) {
		return core.RespondEphemeral(session, event, "📦 That does not look like a mega.nz link.")
	}

	if err := core.RespondDeferred(session, event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	progress := func(stage string) {
		_ = core.EditResponseEmbed(session, event, &discordgo.MessageEmbed{
			Title:       "📦 Media Pipeline",
			Description: stage,
		})
	}

	userID := ""
	if event.Member != nil {
		userID = event.Member.User.ID
	}

	uploadURL, rec, err := c.runPipeline(context.Background(), url, bitrate, userID, progress)
	c.recordDownload(slash.Storage, slash.Settings.Mega.MaxTrackedFiles, event.GuildID, rec)
	if err != nil {
		return core.EditResponseEmbed(session, event, &discordgo.MessageEmbed{
			Title:       "❌ Media Pipeline Failed",
			Description: err.Error(),
		})
	}

	return core.EditResponseEmbed(session, event, &discordgo.MessageEmbed{
		Title:       "✅ Upload Complete",
		Description: fmt.Sprintf("**%s** (%d kbps)\n%s", rec.FileName, rec.Bitrate, uploadURL),
	})
}

// Message handles MEGA auto-detection on plain messages.
func (c *MediaCommand) Message(ctx *core.MessageContext) error {
	if ctx.Settings == nil || !ctx.Settings.Mega.AutoDetect {
		return nil
	}

	links := mega.ExtractLinks(ctx.Event.Content)
	if len(links) == 0 {
		return nil
	}

	session, channelID := ctx.Session, ctx.Event.ChannelID

	msg, err := session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "📦 Media Pipeline",
		Description: "MEGA link detected, downloading...",
		Color:       core.EmbedColor,
	})
	if err != nil {
		return err
	}

	progress := func(stage string) {
		embed := &discordgo.MessageEmbed{
			Title:       "📦 Media Pipeline",
			Description: stage,
			Color:       core.EmbedColor,
		}
		_, _ = session.ChannelMessageEditEmbed(channelID, msg.ID, embed)
	}

	uploadURL, rec, err := c.runPipeline(context.Background(), links[0], 0, ctx.Event.Author.ID, progress)
	c.recordDownload(ctx.Storage, ctx.Settings.Mega.MaxTrackedFiles, ctx.Event.GuildID, rec)
	if err != nil {
		_, _ = session.ChannelMessageEditEmbed(channelID, msg.ID, &discordgo.MessageEmbed{
			Title:       "❌ Media Pipeline Failed",
			Description: err.Error(),
			Color:       core.EmbedColor,
		})
		return nil
	}

	_, _ = session.ChannelMessageEditEmbed(channelID, msg.ID, &discordgo.MessageEmbed{
		Title:       "✅ Upload Complete",
		Description: fmt.Sprintf("**%s** (%d kbps)\n%s", rec.FileName, rec.Bitrate, uploadURL),
		Color:       core.EmbedColor,
	})
	return nil
}

// runPipeline executes download → convert → upload, reporting stages through
// progress. Temp files are removed before returning.
func (c *MediaCommand) runPipeline(ctx context.Context, url string, bitrate int, userID string, progress func(string)) (string, storage.DownloadRecord, error) {
	rec := storage.DownloadRecord{
		SourceURL: url,
		UserID:    userID,
		Status:    "failed",
		Datetime:  time.Now(),
	}

	progress("⬇️ Downloading from MEGA...")
	downloaded, err := c.Downloader.Download(ctx, url)
	if err != nil {
		return "", rec, fmt.Errorf("download failed: %w", err)
	}
	defer os.Remove(downloaded)
	rec.FileName = filepath.Base(downloaded)

	progress("🎛 Converting to AAC...")
	converted, usedBitrate, err := c.Converter.ToAACUnderLimit(ctx, downloaded, bitrate, catbox.MaxFileSize)
	if err != nil {
		return "", rec, fmt.Errorf("conversion failed: %w", err)
	}
	defer os.Remove(converted)
	rec.FileName = filepath.Base(converted)
	rec.Bitrate = usedBitrate
	if info, err := os.Stat(converted); err == nil {
		rec.SizeBytes = info.Size()
	}

	progress("⬆️ Uploading to catbox...")
	uploadURL, err := c.Uploader.Upload(ctx, converted)
	if err != nil {
		return "", rec, fmt.Errorf("upload failed: %w", err)
	}

	rec.UploadURL = uploadURL
	rec.Status = "completed"
	return uploadURL, rec, nil
}

func (c *MediaCommand) recordDownload(store *storage.Storage, maxTracked int, guildID string, rec storage.DownloadRecord) {
	if store == nil || guildID == "" {
		return
	}
	if err := store.AppendDownload(guildID, rec, maxTracked); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("failed to record download")
	}
}
