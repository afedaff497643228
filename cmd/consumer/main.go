package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/acikkaynak/reliefhub-go/consumer"
	"github.com/acikkaynak/reliefhub-go/pkg/config"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/sms"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const consumerGroupName = "reliefhub_events_consumer"

// Message will be handled in ConsumeClaim method.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Logger().Fatal("could not load config", zap.Error(err))
	}

	http.HandleFunc("/healthcheck", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
			log.Logger().Error("server could not started or stopped", zap.Error(err))
		}
	}()

	client, err := broker.NewConsumerGroup(cfg.KafkaBrokers, consumerGroupName)
	if err != nil {
		log.Logger().Panic("could not create consumer group", zap.Error(err))
	}

	var responseCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)
		defer redisCache.Close()
		responseCache = redisCache
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateway := sms.NewGateway(cfg.SMSGatewayURL, cfg.SMSGatewayAPIKey)
	c := consumer.NewConsumer(client, gateway, cfg.EmergencyNumbers, responseCache)
	c.Start(ctx)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	healthy := true
	for healthy {
		select {
		case <-ctx.Done():
			log.Logger().Info("terminating: context cancelled")
			healthy = false
		case <-sigterm:
			log.Logger().Info("terminating: via signal")
			healthy = false
		}
	}

	cancel()
	if err = client.Close(); err != nil {
		log.Logger().Panic("Error closing client:", zap.Error(err))
	}
}
