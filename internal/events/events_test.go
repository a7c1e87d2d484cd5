package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caslkey/contracts/caslapi"
	"caslkey/internal/platform/kafka/producer"
	"caslkey/internal/trust"
)

type recordingProducer struct {
	mu   sync.Mutex
	msgs []*producer.Message
	err  error
}

func (r *recordingProducer) Produce(_ context.Context, msg *producer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingProducer) sent() []*producer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*producer.Message(nil), r.msgs...)
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, VerificationComplete) error { return f.err }

type EventsSuite struct {
	suite.Suite
	event VerificationComplete
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) SetupTest() {
	s.event = VerificationComplete{
		CASLKeyID:  "CK7QX2M",
		Score:      86,
		TrustLevel: trust.LevelVerified,
		HostSummary: caslapi.HostSummary{
			CASLKeyID:  "CK7QX2M",
			TrustLevel: string(trust.LevelVerified),
			GuestCount: 6,
		},
		OccurredAt: time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *EventsSuite) TestDispatcherDeliversInOrder() {
	d := NewDispatcher()
	var got []string
	d.Subscribe(func(_ context.Context, e VerificationComplete) { got = append(got, "first:"+e.CASLKeyID) })
	unsubscribe := d.Subscribe(func(context.Context, VerificationComplete) { got = append(got, "second") })
	d.Subscribe(func(context.Context, VerificationComplete) { got = append(got, "third") })

	s.Require().NoError(d.Publish(context.Background(), s.event))
	s.Equal([]string{"first:CK7QX2M", "second", "third"}, got)

	unsubscribe()
	unsubscribe()
	got = nil
	s.Require().NoError(d.Publish(context.Background(), s.event))
	s.Equal([]string{"first:CK7QX2M", "third"}, got)
}

func (s *EventsSuite) TestKafkaPublisherKeysByCASLKeyID() {
	prod := &recordingProducer{}
	pub := NewKafkaPublisher(prod, "casl.verifications")

	s.Require().NoError(pub.Publish(context.Background(), s.event))

	msgs := prod.sent()
	s.Require().Len(msgs, 1)
	s.Equal("casl.verifications", msgs[0].Topic)
	s.Equal([]byte("CK7QX2M"), msgs[0].Key)
	s.Equal(NameVerificationComplete, msgs[0].Headers["event-type"])

	var decoded VerificationComplete
	s.Require().NoError(json.Unmarshal(msgs[0].Value, &decoded))
	s.Equal(s.event, decoded)
}

func (s *EventsSuite) TestKafkaPublisherSurfacesProduceError() {
	pub := NewKafkaPublisher(&recordingProducer{err: errors.New("broker down")}, "t")
	s.ErrorContains(pub.Publish(context.Background(), s.event), "broker down")
}

func (s *EventsSuite) TestKafkaPublisherAsyncDrainsOnClose() {
	prod := &recordingProducer{}
	pub := NewKafkaPublisher(prod, "t", WithAsyncBuffer(8))
	for range 3 {
		s.Require().NoError(pub.Publish(context.Background(), s.event))
	}
	pub.Close()
	s.Len(prod.sent(), 3)
}

func (s *EventsSuite) TestMultiRunsEveryPublisher() {
	d := NewDispatcher()
	delivered := 0
	d.Subscribe(func(context.Context, VerificationComplete) { delivered++ })

	err := Multi{failingPublisher{err: errors.New("kafka down")}, nil, d, Noop{}}.Publish(context.Background(), s.event)
	s.ErrorContains(err, "kafka down")
	s.Equal(1, delivered)
}
