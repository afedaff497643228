package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/reliefhub-go/helprequests"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/sms"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const smsTimeout = 30 * time.Second

// helpRequestHandle texts the request to every emergency number. Numbers that fail are
// reported together; the others still receive the message.
func (consumer *Consumer) helpRequestHandle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var hr helprequests.HelpRequest
	if err := jsoniter.Unmarshal(message.Value, &hr); err != nil {
		return fmt.Errorf("could not decode help request %s: %w", string(message.Value), err)
	}

	ctx, cancel := context.WithTimeout(ctx, smsTimeout)
	defer cancel()

	if err := sms.Fanout(ctx, consumer.sender, consumer.numbers, hr.SMSBody()); err != nil {
		return fmt.Errorf("could not deliver help request %s: %w", hr.ID, err)
	}

	log.Logger().Info("help request delivered",
		zap.String("id", hr.ID),
		zap.Int("recipients", len(consumer.numbers)))
	return nil
}
