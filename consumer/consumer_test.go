package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/acikkaynak/reliefhub-go/helprequests"
	"github.com/acikkaynak/reliefhub-go/hubs"
	mwcache "github.com/acikkaynak/reliefhub-go/middleware/cache"
	"github.com/acikkaynak/reliefhub-go/registry"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[string]string
	fail map[string]bool
}

func (s *fakeSender) Send(_ context.Context, number, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[number] {
		return errors.New("gateway rejected " + number)
	}
	if s.sent == nil {
		s.sent = map[string]string{}
	}
	s.sent[number] = body
	return nil
}

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "member" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg)
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func message(t *testing.T, topic string, v interface{}) *sarama.ConsumerMessage {
	t.Helper()
	b, err := jsoniter.Marshal(v)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: topic, Value: b}
}

func TestHelpRequestFansOutToEveryNumber(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"108": true}}
	c := NewConsumer(nil, sender, []string{"100", "101", "108"}, nil)
	hr := helprequests.HelpRequest{ID: "h1", Address: "12 Beach Road", EmergencyType: "Flood", Priority: "High"}

	err := c.handle(context.Background(), message(t, broker.HelpRequestsTopic, hr))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "108")
	assert.Equal(t, map[string]string{"100": hr.SMSBody(), "101": hr.SMSBody()}, sender.sent)
}

func TestHubRegisteredEvictsListings(t *testing.T) {
	store := cache.NewMemory()
	listing := mwcache.Key(registry.ListPath, registry.ListPath)
	store.SetKey(listing, []byte(`[]`), 0)
	store.SetKey(mwcache.Key("/missing-persons", "/missing-persons"), []byte(`{}`), 0)
	c := NewConsumer(nil, &fakeSender{}, nil, store)

	hub := hubs.ReliefHub{ID: "h1", HubName: "Central Camp", AidTypes: hubs.AidTypes{hubs.AidFood}}
	require.NoError(t, c.handle(context.Background(), message(t, broker.HubRegisteredTopic, hub)))

	_, ok := store.Get(listing)
	assert.False(t, ok)
	_, ok = store.Get(mwcache.Key("/missing-persons", "/missing-persons"))
	assert.True(t, ok)
}

func TestConsumeClaimCommitsEvenOnFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	c := NewConsumer(nil, &fakeSender{}, []string{"100"}, cache.NewMemory())

	claim.messages <- &sarama.ConsumerMessage{Topic: broker.HelpRequestsTopic, Value: []byte("not json")}
	claim.messages <- message(t, broker.HelpRequestsTopic, helprequests.HelpRequest{ID: "h2"})
	claim.messages <- message(t, "topic.unknown", struct{}{})
	close(claim.messages)

	require.NoError(t, c.ConsumeClaim(session, claim))
	assert.Len(t, session.marked, 3)
}
