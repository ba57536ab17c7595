package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"kuf/internal/auth"
	"kuf/internal/config"
	"kuf/internal/data"
	"kuf/internal/kuf"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	// Without a database the server still runs; every pilot plays as a guest
	// with the baseline loadout and nothing persists.
	var store *data.Store
	if cfg.DatabaseURL != "" {
		store, err = data.NewStoreFromDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect database")
		}
		log.Info().Msg("database connected")
	} else {
		log.Warn().Msg("no database configured, running in guest mode")
	}

	game := kuf.NewGame(log, store)
	game.DefaultEncounter = cfg.Encounter
	go game.StartLoop()

	http.HandleFunc("/ws", kuf.NewWebsocketHandler(game))

	if store != nil {
		a := auth.NewAuth(store.DB(), log)
		http.HandleFunc("/api/register", a.RegisterHandler)
		http.HandleFunc("/api/login", a.LoginHandler)
	}

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Info().Str("addr", cfg.ListenAddr).Str("encounter", cfg.Encounter).Msg("server starting")
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
