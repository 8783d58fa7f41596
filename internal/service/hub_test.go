package service_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"flow-ai/threadview/internal/service"
)

func TestHub_PublishCoalesces(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := service.NewHub()
	ch, cancel := hub.Subscribe("t1")
	defer cancel()

	hub.Publish("t1")
	hub.Publish("t1")
	hub.Publish("t1")

	assert.Len(t, ch, 1, "bursts collapse into one pending notification")
	<-ch
	assert.Len(t, ch, 0)
}

func TestHub_PublishOnlyReachesThread(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := service.NewHub()
	ch1, cancel1 := hub.Subscribe("t1")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("t2")
	defer cancel2()

	hub.Publish("t2")

	assert.Len(t, ch1, 0)
	assert.Len(t, ch2, 1)
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := service.NewHub()
	ch, cancel := hub.Subscribe("t1")
	assert.Equal(t, 1, hub.Subscribers("t1"))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("t1"))

	assert.NotPanics(t, func() { hub.Publish("t1") })
}

func TestHub_ConcurrentSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := service.NewHub()
	const n = 20

	var ready, done sync.WaitGroup
	ready.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer done.Done()
			ch, cancel := hub.Subscribe("t1")
			defer cancel()
			ready.Done()
			<-ch
		}()
	}

	ready.Wait()
	hub.Publish("t1")
	done.Wait()

	assert.Equal(t, 0, hub.Subscribers("t1"))
}
