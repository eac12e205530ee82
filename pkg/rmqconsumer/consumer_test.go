package rmqconsumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"person-registry-api/config"
	"person-registry-api/internal/infrastructure/mq"
	"person-registry-api/internal/interface/api/rest/dto/person"
)

func eventBody(t *testing.T, method string) []byte {
	t.Helper()
	e := mq.NewEvent(method, person.Person{
		ID:        7,
		Name:      "Josias Barreto",
		Addresses: person.Addresses{{ID: 70, Street: "Avenida X"}},
	})
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return b
}

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		body       []byte
		wantMsg    string
		wantErr    bool
	}
	cases := []tc{
		{"POST -> PersonCreated", "POST", eventBody(t, "POST"), "PersonCreated", false},
		{"PUT -> PersonUpdated", "PUT", eventBody(t, "PUT"), "PersonUpdated", false},
		{"DELETE -> PersonDeleted", "DELETE", eventBody(t, "DELETE"), "PersonDeleted", false},
		{"unknown routing key", "PATCH", eventBody(t, "PATCH"), "", true},
		{"malformed body", "POST", []byte("{not json"), "", true},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			c := New(config.MQ{}, zap.New(core))

			err := c.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: tt.body})
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, logs.Len())
				return
			}

			require.NoError(t, err)
			entries := logs.FilterMessage(tt.wantMsg).All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, int64(7), fields["person_id"])
			assert.Equal(t, "Josias Barreto", fields["name"])
			assert.Equal(t, int64(1), fields["addresses"])
		})
	}
}

func TestDeliveryWorker_StopsOnClosedChannel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := New(config.MQ{}, zap.New(core))

	ch := make(chan amqp091.Delivery)
	close(ch)
	c.chDelivery = ch

	done := make(chan struct{})
	go func() {
		c.DeliveryWorker(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, 1, logs.FilterMessage("delivery channel closed").Len())
}

func TestDeliveryWorker_StopsOnCancel(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop())
	c.chDelivery = make(chan amqp091.Delivery)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.DeliveryWorker(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop())

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
	require.NoError(t, c.Close())
}
