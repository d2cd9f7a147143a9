package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/support-chat-cli/internal/adapters/backend/rest"
	"github.com/bnema/support-chat-cli/internal/adapters/kv/chain"
	filekv "github.com/bnema/support-chat-cli/internal/adapters/kv/file"
	pebblekv "github.com/bnema/support-chat-cli/internal/adapters/kv/pebble"
	"github.com/bnema/support-chat-cli/internal/adapters/linking/pending"
	transcriptadapter "github.com/bnema/support-chat-cli/internal/adapters/render/transcript"
	kvrepo "github.com/bnema/support-chat-cli/internal/adapters/repo/kv"
	tomlrepo "github.com/bnema/support-chat-cli/internal/adapters/repo/toml"
	"github.com/bnema/support-chat-cli/internal/application"
	"github.com/bnema/support-chat-cli/internal/config"
	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/logger"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type app struct {
	cfg        config.Config
	log        zerolog.Logger
	store      *application.SessionStore
	controller *application.ConversationController
	identity   *application.IdentityProvider
	linker     ports.ContactLinker
	renderer   func(domain.SessionCollection, transcriptadapter.RenderOptions) (string, error)
	now        func() time.Time
	closers    []func() error
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		renderer: transcriptadapter.Render,
		now:      time.Now,
	}

	repo, kv, err := a.wireStorage()
	if err != nil {
		a.close()
		return nil, err
	}

	client, err := rest.NewClient(rest.Config{
		BaseURL: cfg.Backend.BaseURL,
		Source:  cfg.Backend.Source,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("wire support backend: %w", err)
	}

	a.identity = application.NewIdentityProvider(kv, ports.UUIDGenerator{}, log)
	a.store = application.NewSessionStore(context.Background(), repo, ports.SystemClock{}, ports.UUIDGenerator{}, log)
	a.controller = application.NewConversationController(a.store, client, a.identity, application.ConversationOptions{
		PollDelay: cfg.Poll.Delay,
		PollLimit: cfg.Poll.Limit,
		Log:       log,
	})
	a.linker = pending.Linker{Log: log}

	return a, nil
}

func (a *app) wireStorage() (ports.SessionRepository, ports.KeyValueStore, error) {
	switch a.cfg.Storage.Backend {
	case config.StoragePebble:
		db, err := pebblekv.Open(a.cfg.Storage.PebbleDir())
		if err != nil {
			return nil, nil, fmt.Errorf("wire pebble storage: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		// The guest id may predate the switch to pebble.
		identityKV, err := chain.NewStore(db, filekv.NewStore(a.cfg.Storage.IdentityDir()))
		if err != nil {
			return nil, nil, fmt.Errorf("wire identity storage: %w", err)
		}
		return kvrepo.NewRepository(db), identityKV, nil
	default:
		repoCfg := viper.New()
		repoCfg.Set(tomlrepo.SessionsPathKey, a.cfg.Storage.SessionsPath())
		repo, err := tomlrepo.NewRepository(repoCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("wire session repository: %w", err)
		}
		return repo, filekv.NewStore(a.cfg.Storage.IdentityDir()), nil
	}
}

func (a *app) linkingCoordinator(prompter ports.ContactPrompter) *application.LinkingCoordinator {
	return application.NewLinkingCoordinator(a.store, a.linker, prompter, application.LinkingOptions{
		StatusTTL: a.cfg.Link.StatusTTL,
		Log:       a.log,
	})
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("release storage")
		}
	}
	a.closers = nil
}
