package main

import (
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/config"
	"github.com/kopi-vm/kopi-sub003/internal/download"
	"github.com/kopi-vm/kopi-sub003/internal/install"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/locking"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/metadata/source"
	"go.uber.org/zap"
)

// foojayBaseURL is the default remote metadata endpoint, overridable later
// via config once a KOPI_METADATA_URL-style knob is needed.
const foojayBaseURL = "https://api.foojay.io/disco/v3.0"

// appContext bundles the core packages every subcommand needs; each
// subcommand builds its own in RunE via newAppContext.
type appContext struct {
	paths   *kopipath.Registry
	cfg     config.Config
	logger  *zap.SugaredLogger
	locks   *locking.Controller
	cache   *metadata.Cache
	sources *source.Provider
	orch    *install.Orchestrator
	token   cancel.Token
}

func newAppContext() (*appContext, error) {
	home, err := kopipath.Resolve()
	if err != nil {
		return nil, err
	}
	paths := kopipath.New(home)

	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}

	logger := logging.New()
	locks := locking.New(paths, logger)
	cache := metadata.NewCache(paths)

	providers := &source.Provider{
		Sources: []source.Source{
			&source.RemoteAPI{BaseURL: foojayBaseURL, Logger: logger},
		},
		Cache:  cache,
		Locks:  locks,
		Logger: logger,
	}

	orch := &install.Orchestrator{
		Paths:      paths,
		Locks:      locks,
		Downloader: &download.Client{Logger: logger},
		Logger:     logger,
	}

	return &appContext{
		paths:   paths,
		cfg:     cfg,
		logger:  logger,
		locks:   locks,
		cache:   cache,
		sources: providers,
		orch:    orch,
		token:   cancel.Global(),
	}, nil
}

func (a *appContext) lockTimeout() time.Duration {
	return a.cfg.InstallLockTimeout
}
