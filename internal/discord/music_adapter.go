package discord

import (
	"fmt"
	"time"

	"github.com/Darkatse/SimiluBot/internal/core"
	"github.com/Darkatse/SimiluBot/internal/music/player"
	"github.com/Darkatse/SimiluBot/internal/music/source_resolver"
)

// GetOrCreatePlayer returns the guild's player, creating it on first use.
func (b *Bot) GetOrCreatePlayer(guildID string) *player.Player {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.players[guildID]; ok {
		return p
	}

	if b.sourceResolver == nil {
		b.sourceResolver = source_resolver.New()
	}

	p := player.New(b.dg, guildID, b.sourceResolver, player.Config{
		MaxQueueSize:    b.settings.Music.MaxQueueSize,
		MaxSongDuration: time.Duration(b.settings.Music.MaxSongDuration) * time.Second,
		IdleTimeout:     time.Duration(b.settings.Music.AutoDisconnectTimeout) * time.Second,
	})
	b.players[guildID] = p

	return p
}

// FindUserVoiceState finds the voice state of a user within a guild.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*core.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &core.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}
