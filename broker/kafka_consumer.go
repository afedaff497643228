package broker

import (
	"github.com/Shopify/sarama"
)

func NewConsumerGroup(brokers []string, group string) (sarama.ConsumerGroup, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	config := sarama.NewConfig()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Offsets.AutoCommit.Enable = false

	return sarama.NewConsumerGroup(brokers, group, config)
}
