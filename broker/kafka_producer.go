package broker

import (
	"errors"
	"fmt"

	"github.com/Shopify/sarama"
	jsoniter "github.com/json-iterator/go"
)

const (
	HelpRequestsTopic  = "topic.help.requests"
	HubRegisteredTopic = "topic.reliefhubs.registered"
)

var errNoBrokers = errors.New("no kafka brokers configured")

func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	config := sarama.NewConfig()
	// Return success is required for sync producer.
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return sarama.NewSyncProducer(brokers, config)
}

// Publisher encodes events as JSON and sends them through a sync producer.
type Publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) Publish(topic, key string, v interface{}) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("could not publish to %s: producer is not initialised", topic)
	}
	payload, err := jsoniter.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode %s event: %w", topic, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("could not publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
