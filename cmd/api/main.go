package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/acikkaynak/reliefhub-go/app"
	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/acikkaynak/reliefhub-go/geocode"
	"github.com/acikkaynak/reliefhub-go/pkg/config"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/repository"
	"go.uber.org/zap"
)

// @title						Relief Hub API
// @version					    1.0
// @description				    Relief hub registry, missing person reports and emergency help requests
// @BasePath					/
// @schemes					    https http
// @license.name				Apache License, Version 2.0 (the "License")
// @securityDefinitions.apiKey	ApiKeyAuth
// @in							header
// @name						X-Api-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Logger().Fatal("could not load config", zap.Error(err))
	}

	repo, err := repository.New(context.Background(), cfg.DBConnStr)
	if err != nil {
		log.Logger().Fatal("unable to connect to database", zap.Error(err))
	}
	defer repo.Close()

	kafkaProducer, err := broker.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Logger().Error("failed to init kafka producer", zap.Error(err))
	}
	publisher := broker.NewPublisher(kafkaProducer)
	defer publisher.Close()

	deps := app.Dependencies{
		Hubs:             repo,
		MissingPersons:   repo,
		Publisher:        publisher,
		GeocodeMinLength: cfg.GeocodeMinLength,
		APIKey:           cfg.APIKey,
	}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)
		defer redisCache.Close()
		deps.Cache = redisCache
	} else {
		log.Logger().Warn("RedisAddr is empty, caching responses in memory")
	}
	if cfg.GeocodeAPIKey != "" {
		deps.Geocoder = geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeAPIKey,
			geocode.WithMinLength(cfg.GeocodeMinLength),
			geocode.WithTimeout(cfg.RequestTimeout))
	}

	application := app.New(deps)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Logger().Info("application gracefully shutting down..")
		_ = application.Shutdown()
	}()

	if err := application.Listen(cfg.HTTPAddr); err != nil {
		log.Logger().Panic("app error", zap.Error(err))
	}
}
