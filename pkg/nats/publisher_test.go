package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/abgdnv/productcompare/pkg/messaging/events"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockJetStream struct {
	mock.Mock
}

func (m *mockJetStream) Publish(ctx context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	args := m.Called(ctx, subject, payload)
	var ack *jetstream.PubAck
	if args.Get(0) != nil {
		ack = args.Get(0).(*jetstream.PubAck)
	}
	return ack, args.Error(1)
}

type brokenEvent struct{}

func (brokenEvent) Subject() string           { return "broken" }
func (brokenEvent) Payload() ([]byte, error) { return nil, errors.New("cannot encode") }

func Test_NatsPublisher_Publish(t *testing.T) {
	errPublish := errors.New("no responders")
	event := events.CatalogFetchSettledEvent{Fulfilled: true, ProductCount: 2}
	payload, _ := event.Payload()

	testCases := []struct {
		name        string
		setup       func(m *mockJetStream)
		expectError error
	}{
		{
			name: "success",
			setup: func(m *mockJetStream) {
				m.On("Publish", mock.Anything, event.Subject(), payload).Return(&jetstream.PubAck{Stream: "CATALOG"}, nil).Once()
			},
		},
		{
			name: "publish error",
			setup: func(m *mockJetStream) {
				m.On("Publish", mock.Anything, event.Subject(), payload).Return(nil, errPublish).Once()
			},
			expectError: errPublish,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			js := new(mockJetStream)
			tc.setup(js)
			publisher := &NatsPublisher{js: js}

			// when
			err := publisher.Publish(context.Background(), event)

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
			js.AssertExpectations(t)
		})
	}

	t.Run("payload error", func(t *testing.T) {
		// given
		js := new(mockJetStream)
		publisher := &NatsPublisher{js: js}

		// when
		err := publisher.Publish(context.Background(), brokenEvent{})

		// then
		assert.ErrorContains(t, err, "cannot encode")
		js.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}
