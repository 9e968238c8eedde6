package main

import (
	"net/http"

	"go.uber.org/zap"

	"MovieKeeper/internal/config"
	"MovieKeeper/internal/handlers"
	"MovieKeeper/internal/middleware"
	"MovieKeeper/internal/omdb"
	"MovieKeeper/internal/repo"
	"MovieKeeper/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	movieRepo := repo.NewMovieRepository(gormDB)
	omdbClient := omdb.NewClient(cfg.OMDBBaseURL, cfg.OMDBAPIKey, sugar)

	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo, userRepo, omdbClient, sugar)

	h := handlers.NewHandler(userService, movieService, omdbClient, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"OMDBBaseURL", cfg.OMDBBaseURL,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
