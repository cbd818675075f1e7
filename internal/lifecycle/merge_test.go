package lifecycle

import (
	"sync"
	"testing"
	"time"
)

func TestMergePreservesPublishOrder(t *testing.T) {
	m := NewMerge(16)
	want := []Event{
		{KindLaunched, 100},
		{KindActivated, 100},
		{KindDeactivated, 100},
		{KindTerminated, 100},
	}
	for _, e := range want {
		m.Publish(e.Kind, e.PID)
	}
	_ = m.Close()
	got := make([]Event, 0, len(want))
	for e := range m.Events() {
		got = append(got, e)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestMergeCloseIsIdempotentAndSafeBeforeDelivery(t *testing.T) {
	m := NewMerge(1)
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	// publishing after close must not panic or deliver
	m.Publish(KindActivated, 7)
	if _, ok := <-m.Events(); ok {
		t.Fatalf("expected closed channel with no events")
	}
}

func TestMergeCloseUnblocksPublisherOnFullBuffer(t *testing.T) {
	m := NewMerge(1)
	m.Publish(KindActivated, 1) // fill the buffer, nobody consumes

	published := make(chan struct{})
	go func() {
		m.Publish(KindActivated, 2) // parks until Close releases it
		close(published)
	}()
	// give the publisher time to park inside Publish
	time.Sleep(20 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		_ = m.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close blocked behind a publisher parked on a full buffer")
	}
	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatalf("publisher still parked after Close")
	}
	// the pre-close event is still delivered, then the channel closes
	if ev, ok := <-m.Events(); !ok || ev.PID != 1 {
		t.Fatalf("expected buffered event pid 1, got %+v ok=%v", ev, ok)
	}
}

func TestMergeConcurrentProducers(t *testing.T) {
	m := NewMerge(256)
	const perProducer = 50
	kinds := []Kind{KindLaunched, KindTerminated, KindActivated, KindDeactivated}
	var wg sync.WaitGroup
	for _, k := range kinds {
		wg.Add(1)
		go func(k Kind) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				m.Publish(k, i)
			}
		}(k)
	}
	wg.Wait()
	_ = m.Close()
	count := 0
	for range m.Events() {
		count++
	}
	if count != len(kinds)*perProducer {
		t.Fatalf("expected %d events, got %d", len(kinds)*perProducer, count)
	}
}

func TestKindString(t *testing.T) {
	if KindActivated.String() != "activated" || Kind(99).String() != "invalid" {
		t.Fatalf("unexpected Kind string values")
	}
}
