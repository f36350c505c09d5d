package kafka

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWriterReusesWriterPerTopic(t *testing.T) {
	producer := NewProducer(DefaultConfig())

	first := producer.getWriter(Topics.CartEvents)
	second := producer.getWriter(Topics.CartEvents)

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, Topics.CartEvents, first.Topic)
}

func TestGetWriterConcurrentFirstUse(t *testing.T) {
	producer := NewProducer(DefaultConfig())
	topics := []string{Topics.CartEvents, Topics.DeliveryOptionEvents, Topics.PickupLocationEvents}

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		topic := topics[i%len(topics)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			producer.getWriter(topic)
		}()
	}
	wg.Wait()

	producer.mu.Lock()
	defer producer.mu.Unlock()
	assert.Len(t, producer.writers, len(topics))
}
