package setup

import (
	"fmt"
	"time"

	"github.com/itchan-dev/forum/backend/internal/handler"
	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/backend/internal/storage/memory"
	"github.com/itchan-dev/forum/backend/internal/utils"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/jwt"
	"github.com/itchan-dev/forum/shared/logger"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/render"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *memory.Storage
	Forum          *service.Forum
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage := memory.New()
	if cfg.Public.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.Public.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		if err := storage.Seed(config.ToDomain(seed, time.Now())); err != nil {
			return nil, fmt.Errorf("apply seed: %w", err)
		}
		logger.Log.Info("seeded discussions", "count", storage.Count(), "file", cfg.Public.SeedFile)
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	forum := service.NewForum(storage, utils.NewForumValidator(cfg.Public))
	h := handler.New(forum, render.New(), logger.Log)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Forum:          forum,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService, cfg.Public.SecureCookies),
	}, nil
}
