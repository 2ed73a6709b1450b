package broker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/broker"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

// recordingWriter keeps every message written so tests can inspect headers.
type recordingWriter struct {
	mu       sync.Mutex
	written  []kafka.Message
	err      error
	closeErr error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	return w.closeErr
}

func headerValue(headers []kafka.Header, key string) (string, bool) {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}

const requestJSON = `{"payload":{"version":"v2","notificationType":"Push","eventType":"Marketing","deviceToken":"d","message":"m"},"accountTier":"premium"}`

func newTestMessage(b *KafkaBroker, headers []kafka.Header) *KafkaMessage {
	return &KafkaMessage{
		broker: b,
		kafkaMsg: kafka.Message{
			Topic:   "notification-payloads",
			Offset:  42,
			Key:     []byte("k"),
			Value:   []byte(requestJSON),
			Headers: headers,
		},
		unmarshalled: domain.ValidationRequest{
			Payload: map[string]any{"version": "v2", "notificationType": "Push"},
		},
	}
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, 0, getRetryCount(nil))
	assert.Equal(t, 0, getRetryCount([]kafka.Header{{Key: RetryHeader, Value: []byte("abc")}}))
	assert.Equal(t, 4, getRetryCount([]kafka.Header{{Key: "other", Value: []byte("1")}, {Key: RetryHeader, Value: []byte("4")}}))

	original := []kafka.Header{{Key: "a", Value: []byte("1")}, {Key: RetryHeader, Value: []byte("1")}}
	updated := updateRetryHeader(original, 2)
	assert.Equal(t, "1", string(original[1].Value), "original headers are not modified")
	assert.Equal(t, 2, getRetryCount(updated))
	assert.Len(t, updated, 2)

	appended := setHeader(original, VariantHeader, "v1/Email")
	assert.Len(t, appended, 3)
	v, ok := headerValue(appended, VariantHeader)
	assert.True(t, ok)
	assert.Equal(t, "v1/Email", v)
}

func TestNewKafkaBroker_Errors(t *testing.T) {
	t.Cleanup(func() { configs.SetTestConfig(nil) })

	_, err := NewKafkaBroker(Config{})
	assert.Error(t, err)

	configs.SetTestConfig(nil)
	_, err = NewKafkaBroker(Config{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)

	configs.SetTestConfig(&configs.Config{KafkaTopic: "t", KafkaGroupID: "g"})
	_, err = NewKafkaBroker(Config{Brokers: []string{"localhost:9092"}})
	assert.ErrorContains(t, err, "KAFKA_VALID_TOPIC")
}

func TestKafkaMessage_Forward(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{}
	b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", "dlq-topic")
	msg := newTestMessage(b, []kafka.Header{{Key: RetryHeader, Value: []byte("1")}})

	reader.On("CommitMessages", mock.Anything, []kafka.Message{msg.kafkaMsg}).Return(nil).Once()

	err := msg.Forward(context.Background(), "v2/Push", "id-1")
	require.NoError(t, err)

	require.Len(t, writer.written, 1)
	out := writer.written[0]
	assert.Equal(t, "valid-topic", out.Topic)
	assert.Equal(t, []byte(requestJSON), out.Value)
	variant, _ := headerValue(out.Headers, VariantHeader)
	id, _ := headerValue(out.Headers, ValidationIDHeader)
	assert.Equal(t, "v2/Push", variant)
	assert.Equal(t, "id-1", id)
	reader.AssertExpectations(t)
}

func TestKafkaMessage_ForwardWriteError(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{err: errors.New("broker down")}
	b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", "dlq-topic")
	msg := newTestMessage(b, nil)

	err := msg.Forward(context.Background(), "v2/Push", "id-1")

	assert.ErrorContains(t, err, "broker down")
	reader.AssertNotCalled(t, "CommitMessages", mock.Anything, mock.Anything)
}

func TestKafkaMessage_Retry(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{}
	b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", "dlq-topic")
	msg := newTestMessage(b, []kafka.Header{{Key: RetryHeader, Value: []byte("1")}})
	reader.On("CommitMessages", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, msg.Retry(context.Background(), time.Millisecond))

	require.Len(t, writer.written, 1)
	assert.Equal(t, "notification-payloads", writer.written[0].Topic)
	assert.Equal(t, 2, getRetryCount(writer.written[0].Headers))
	reader.AssertExpectations(t)
}

func TestKafkaMessage_RetryCancelled(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{}
	b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", "dlq-topic")
	msg := newTestMessage(b, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := msg.Retry(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, writer.written)
}

func TestKafkaMessage_MoveToDLQ(t *testing.T) {
	tests := []struct {
		name          string
		dlqTopic      string
		expectWritten int
	}{
		{name: "publishes with reason", dlqTopic: "dlq-topic", expectWritten: 1},
		{name: "discards without dlq topic", dlqTopic: "", expectWritten: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reader := new(MockReader)
			writer := &recordingWriter{}
			b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", tc.dlqTopic)
			msg := newTestMessage(b, []kafka.Header{{Key: RetryHeader, Value: []byte("2")}})
			reader.On("CommitMessages", mock.Anything, mock.Anything).Return(nil).Once()

			reason := errors.New("missing required field: deviceToken; missing required field: message")
			require.NoError(t, msg.MoveToDLQ(context.Background(), broker.CauseInvalidPayload, reason))

			require.Len(t, writer.written, tc.expectWritten)
			if tc.expectWritten == 1 {
				out := writer.written[0]
				assert.Equal(t, "dlq-topic", out.Topic)
				got, _ := headerValue(out.Headers, DLQReasonHeader)
				assert.Equal(t, reason.Error(), got)
				assert.Equal(t, 2, getRetryCount(out.Headers))
			}
			reader.AssertExpectations(t)
		})
	}
}

func TestKafkaBroker_Consume(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{}
	b := newKafkaBroker(reader, writer, "notification-payloads", "g", "valid-topic", "dlq-topic")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := kafka.Message{Topic: "notification-payloads", Offset: 1, Value: []byte(requestJSON)}
	poison := kafka.Message{Topic: "notification-payloads", Offset: 2, Value: []byte("{not json")}

	reader.On("FetchMessage", mock.Anything).Return(good, nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(poison, nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, context.Canceled).Run(func(mock.Arguments) { cancel() })
	reader.On("CommitMessages", mock.Anything, []kafka.Message{poison}).Return(nil).Once()

	var received []domain.ValidationRequest
	err := b.Consume(ctx, func(ctx context.Context, msg broker.Message) error {
		received = append(received, msg.Data())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, domain.AccountTier("premium"), received[0].AccountTier)
	payload, ok := received[0].Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Push", payload["notificationType"])

	require.Len(t, writer.written, 1)
	assert.Equal(t, "dlq-topic", writer.written[0].Topic)
	reason, _ := headerValue(writer.written[0].Headers, DLQReasonHeader)
	assert.Contains(t, reason, "unmarshalling error")
	reader.AssertExpectations(t)
}

func TestKafkaBroker_Close(t *testing.T) {
	reader := new(MockReader)
	writer := &recordingWriter{closeErr: errors.New("writer close failed")}
	reader.On("Close").Return(errors.New("reader close failed")).Once()
	b := newKafkaBroker(reader, writer, "t", "g", "v", "d")

	err := b.Close()

	require.Error(t, err)
	assert.ErrorContains(t, err, "reader close failed")
	assert.ErrorContains(t, err, "writer close failed")
}
