package consumer

import (
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/reliefhub-go/hubs"
	mwcache "github.com/acikkaynak/reliefhub-go/middleware/cache"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/registry"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// hubRegisteredHandle drops cached hub listings so every API replica serves the new hub.
func (consumer *Consumer) hubRegisteredHandle(message *sarama.ConsumerMessage) error {
	var hub hubs.ReliefHub
	if err := jsoniter.Unmarshal(message.Value, &hub); err != nil {
		return fmt.Errorf("could not decode registered hub %s: %w", string(message.Value), err)
	}

	if consumer.cache != nil {
		if err := consumer.cache.DeletePrefix(mwcache.PathPrefix(registry.ListPath)); err != nil {
			return fmt.Errorf("could not evict hub listings after %s: %w", hub.ID, err)
		}
	}

	log.Logger().Info("relief hub registered",
		zap.String("id", hub.ID),
		zap.String("hubName", hub.HubName),
		zap.Strings("aidTypes", aidTypeNames(hub.AidTypes)))
	return nil
}

func aidTypeNames(types hubs.AidTypes) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
