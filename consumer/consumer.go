package consumer

import (
	"context"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/acikkaynak/reliefhub-go/metrics"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/sms"
	"go.uber.org/zap"
)

var Topics = []string{broker.HelpRequestsTopic, broker.HubRegisteredTopic}

// Consumer represents a Sarama consumer group consumer
type Consumer struct {
	Ready   chan bool
	group   sarama.ConsumerGroup
	sender  sms.Sender
	numbers []string
	cache   cache.Cache
}

func NewConsumer(group sarama.ConsumerGroup, sender sms.Sender, numbers []string, c cache.Cache) *Consumer {
	if len(numbers) == 0 {
		log.Logger().Warn("EMERGENCY_NUMBERS is empty, help requests will not be delivered")
	}
	return &Consumer{
		Ready:   make(chan bool),
		group:   group,
		sender:  sender,
		numbers: numbers,
		cache:   c,
	}
}

// Start joins the consumer group and blocks until the first session is set up.
func (consumer *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			if err := consumer.group.Consume(ctx, Topics, consumer); err != nil {
				log.Logger().Panic("Error from consumer:", zap.Error(err))
			}
			// check if context was cancelled, signaling that the consumer should stop
			if ctx.Err() != nil {
				return
			}
			consumer.Ready = make(chan bool)
		}
	}()
	<-consumer.Ready
	log.Logger().Info("Sarama consumer up and running!...")
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as Ready
	close(consumer.Ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			metrics.ConsumedMessages.WithLabelValues(message.Topic).Inc()
			if err := consumer.handle(session.Context(), message); err != nil {
				log.Logger().Error("could not handle message",
					zap.String("topic", message.Topic),
					zap.String("key", string(message.Key)),
					zap.Error(err))
			}
			session.MarkMessage(message, "")
			session.Commit()
		case <-session.Context().Done():
			return nil
		}
	}
}

func (consumer *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	switch message.Topic {
	case broker.HelpRequestsTopic:
		return consumer.helpRequestHandle(ctx, message)
	case broker.HubRegisteredTopic:
		return consumer.hubRegisteredHandle(message)
	}
	log.Logger().Debug("ignoring message from unexpected topic", zap.String("topic", message.Topic))
	return nil
}
