package broker

import (
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got map[string]string
		if err := jsoniter.Unmarshal(val, &got); err != nil {
			return err
		}
		if got["id"] != "hub-1" {
			return errors.New("unexpected payload " + string(val))
		}
		return nil
	})

	p := NewPublisher(producer)
	require.NoError(t, p.Publish(HubRegisteredTopic, "hub-1", map[string]string{"id": "hub-1"}))
	require.NoError(t, p.Close())
}

func TestPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := NewPublisher(producer).Publish(HelpRequestsTopic, "h1", struct{}{})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.NoError(t, producer.Close())
}

func TestPublishWithoutProducer(t *testing.T) {
	var p *Publisher
	assert.Error(t, p.Publish(HelpRequestsTopic, "h1", struct{}{}))
	assert.NoError(t, p.Close())
}

func TestNoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	assert.ErrorIs(t, err, errNoBrokers)

	_, err = NewConsumerGroup(nil, "group")
	assert.ErrorIs(t, err, errNoBrokers)
}
