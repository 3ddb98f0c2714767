package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Darkatse/SimiluBot/internal/config"
	"github.com/Darkatse/SimiluBot/internal/discord"
	"github.com/Darkatse/SimiluBot/internal/logging"
	"github.com/Darkatse/SimiluBot/internal/storage"
	"github.com/Darkatse/SimiluBot/internal/version"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SettingsPath).Msg("failed to load settings")
	}

	logging.Setup(settings.Logging)
	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, settings, store)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("discord bot error")
		}
		cancel()
	}

	log.Info().Msg("bot exited cleanly")
}
