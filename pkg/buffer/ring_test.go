package buffer

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	cerrors "github.com/c360/streamkit/errors"
	"github.com/stretchr/testify/require"
)

func TestRingBufferDequeueBlocksUntilEnqueue(t *testing.T) {
	buf, err := NewRingBuffer[int](3)
	require.NoError(t, err)
	defer buf.Close()

	results := make(chan int, 1)
	errs := make(chan error, 1)

	go func() {
		value, err := buf.Dequeue(context.Background())
		if err != nil {
			errs <- err
			return
		}
		results <- value
	}()

	// Give the consumer time to park on the not-empty condition
	time.Sleep(50 * time.Millisecond)

	ok, err := buf.TryEnqueue(42)
	require.NoError(t, err)
	require.True(t, ok)

	select {
	case value := <-results:
		if value != 42 {
			t.Errorf("Expected blocked consumer to receive 42, got %d", value)
		}
	case err := <-errs:
		t.Fatalf("Dequeue failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("Blocked consumer was not woken by enqueue")
	}

	if buf.Size() != 0 {
		t.Errorf("Expected size 0, got %d", buf.Size())
	}
}

func TestRingBufferEnqueueBlocksUntilDequeue(t *testing.T) {
	buf, err := NewRingBuffer[int](1)
	require.NoError(t, err)
	defer buf.Close()

	ok, err := buf.TryEnqueue(1)
	require.NoError(t, err)
	require.True(t, ok)

	enqueued := make(chan error, 1)
	go func() {
		enqueued <- buf.Enqueue(context.Background(), 2)
	}()

	// Producer must still be parked while the buffer is full
	select {
	case err := <-enqueued:
		t.Fatalf("Enqueue on full buffer returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	value, ok := buf.TryDequeue()
	require.True(t, ok)
	require.Equal(t, 1, value)

	select {
	case err := <-enqueued:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Blocked producer was not woken by dequeue")
	}

	value, ok = buf.TryDequeue()
	require.True(t, ok)
	require.Equal(t, 2, value)
}

func TestRingBufferEnqueueCancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		buf, err := NewRingBuffer[int](2)
		require.NoError(t, err)
		defer buf.Close()

		_, _ = buf.TryEnqueue(1)
		_, _ = buf.TryEnqueue(2)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = buf.Enqueue(ctx, 3)
		require.ErrorIs(t, err, context.Canceled)

		// Buffer state is unchanged: same size, same contents
		require.Equal(t, 2, buf.Size())
		value, _ := buf.TryDequeue()
		require.Equal(t, 1, value)
		value, _ = buf.TryDequeue()
		require.Equal(t, 2, value)
	})

	t.Run("cancelled mid wait", func(t *testing.T) {
		buf, err := NewRingBuffer[int](1)
		require.NoError(t, err)
		defer buf.Close()

		_, _ = buf.TryEnqueue(1)

		ctx, cancel := context.WithCancel(context.Background())
		enqueued := make(chan error, 1)
		go func() {
			enqueued <- buf.Enqueue(ctx, 2)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-enqueued:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("Cancelled producer was not woken")
		}

		require.Equal(t, 1, buf.Size())
		value, _ := buf.TryDequeue()
		require.Equal(t, 1, value)
	})
}

func TestRingBufferDequeueCancellation(t *testing.T) {
	buf, err := NewRingBuffer[int](2)
	require.NoError(t, err)
	defer buf.Close()

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan error, 1)
	go func() {
		_, err := buf.Dequeue(ctx)
		results <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-results:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Cancelled consumer was not woken")
	}

	if buf.Size() != 0 {
		t.Errorf("Cancellation must not alter buffer state, size=%d", buf.Size())
	}
}

func TestRingBufferEnqueueTimeout(t *testing.T) {
	buf, err := NewRingBuffer[int](1)
	require.NoError(t, err)
	defer buf.Close()

	_, _ = buf.TryEnqueue(1)

	start := time.Now()
	err = buf.EnqueueTimeout(2, 50*time.Millisecond)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	if elapsed < 40*time.Millisecond {
		t.Errorf("EnqueueTimeout returned too early: %v", elapsed)
	}
	require.Equal(t, 1, buf.Size())
}

func TestRingBufferDequeueTimeout(t *testing.T) {
	buf, err := NewRingBuffer[int](2)
	require.NoError(t, err)
	defer buf.Close()

	_, err = buf.DequeueTimeout(50 * time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// With an item available the timeout variant returns immediately
	_, _ = buf.TryEnqueue(7)
	value, err := buf.DequeueTimeout(time.Second)
	require.NoError(t, err)
	require.Equal(t, 7, value)
}

func TestRingBufferOverwriteEnqueueNeverBlocks(t *testing.T) {
	buf, err := NewRingBuffer[int](2, WithOverwrite[int]())
	require.NoError(t, err)
	defer buf.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if err := buf.Enqueue(context.Background(), i); err != nil {
				t.Errorf("Overwrite enqueue failed: %v", err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked in overwrite mode")
	}

	require.Equal(t, 2, buf.Size())
	value, _ := buf.TryDequeue()
	require.Equal(t, 98, value)
}

func TestRingBufferCloseWakesWaiters(t *testing.T) {
	t.Run("blocked consumers", func(t *testing.T) {
		buf, err := NewRingBuffer[int](2)
		require.NoError(t, err)

		const waiters = 3
		results := make(chan error, waiters)
		for i := 0; i < waiters; i++ {
			go func() {
				_, err := buf.Dequeue(context.Background())
				results <- err
			}()
		}

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, buf.Close())

		for i := 0; i < waiters; i++ {
			select {
			case err := <-results:
				require.ErrorIs(t, err, cerrors.ErrBufferClosed)
			case <-time.After(2 * time.Second):
				t.Fatal("Close did not wake all blocked consumers")
			}
		}
	})

	t.Run("blocked producers", func(t *testing.T) {
		buf, err := NewRingBuffer[int](1)
		require.NoError(t, err)

		_, _ = buf.TryEnqueue(1)

		results := make(chan error, 1)
		go func() {
			results <- buf.Enqueue(context.Background(), 2)
		}()

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, buf.Close())

		select {
		case err := <-results:
			require.ErrorIs(t, err, cerrors.ErrBufferClosed)
		case <-time.After(2 * time.Second):
			t.Fatal("Close did not wake blocked producer")
		}

		// The item enqueued before Close still drains
		value, ok := buf.TryDequeue()
		require.True(t, ok)
		require.Equal(t, 1, value)
	})
}

func TestRingBufferConcurrentProducersConsumers(t *testing.T) {
	const (
		producers        = 4
		consumers        = 4
		itemsPerProducer = 250
	)
	total := producers * itemsPerProducer

	buf, err := NewRingBuffer[int](16)
	require.NoError(t, err)
	defer buf.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				if err := buf.Enqueue(ctx, base+i); err != nil {
					t.Errorf("Enqueue failed: %v", err)
					return
				}
			}
		}(p * itemsPerProducer)
	}

	var mu sync.Mutex
	seen := make(map[int]int, total)

	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if len(seen) >= total {
					mu.Unlock()
					return
				}
				mu.Unlock()

				value, err := buf.DequeueTimeout(200 * time.Millisecond)
				if err != nil {
					continue
				}
				mu.Lock()
				seen[value]++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if len(seen) != total {
		t.Fatalf("Expected %d distinct values consumed, got %d", total, len(seen))
	}
	for value, count := range seen {
		if count != 1 {
			t.Errorf("Value %d consumed %d times, expected exactly once", value, count)
		}
	}
	if buf.Size() != 0 {
		t.Errorf("Expected empty buffer after balanced run, got size %d", buf.Size())
	}

	stats := buf.Stats()
	if stats.Enqueues() != int64(total) || stats.Dequeues() != int64(total) {
		t.Errorf("Stats mismatch: %d enqueues, %d dequeues, expected %d each",
			stats.Enqueues(), stats.Dequeues(), total)
	}
}

func TestRingBufferConcurrentTryOperations(t *testing.T) {
	buf, err := NewRingBuffer[int](32)
	require.NoError(t, err)
	defer buf.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if id%2 == 0 {
					_, _ = buf.TryEnqueue(i)
				} else {
					buf.TryDequeue()
				}
				if size := buf.Size(); size < 0 || size > buf.Capacity() {
					t.Errorf("Size %d out of bounds [0, %d]", size, buf.Capacity())
					return
				}
			}
		}(g)
	}
	wg.Wait()

	// Conservation: size equals enqueues minus dequeues
	stats := buf.Stats()
	expected := stats.Enqueues() - stats.Dequeues()
	if int64(buf.Size()) != expected {
		t.Errorf("Size %d does not match enqueues-dequeues %d", buf.Size(), expected)
	}
}

func TestRingBufferOverwriteConcurrentReader(t *testing.T) {
	// A reader racing an overwriting writer always observes live, distinct
	// elements and never a corrupted cursor state.
	buf, err := NewRingBuffer[int](10, WithOverwrite[int]())
	require.NoError(t, err)
	defer buf.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for i := 0; i < 15; i++ {
			if err := buf.Enqueue(ctx, i); err != nil {
				t.Errorf("Writer failed: %v", err)
				return
			}
		}
	}()

	seen := make(map[int]bool)
	for len(seen) < 5 {
		value, err := buf.Dequeue(ctx)
		require.NoError(t, err)
		if value < 0 || value >= 15 {
			t.Fatalf("Read value %d outside the inserted range", value)
		}
		if seen[value] {
			t.Fatalf("Value %d read twice", value)
		}
		seen[value] = true
	}

	<-writerDone
	if size := buf.Size(); size > buf.Capacity() {
		t.Errorf("Size %d exceeds capacity %d", size, buf.Capacity())
	}
}

func TestRingBufferNoGoroutineLeak(t *testing.T) {
	buf, err := NewRingBuffer[int](1)
	require.NoError(t, err)

	before := runtime.NumGoroutine()

	// Timed-out waits, cancelled waits, and Close-woken waits must all
	// release their cancellation watcher
	for i := 0; i < 20; i++ {
		_, _ = buf.DequeueTimeout(time.Millisecond)
	}
	_, _ = buf.TryEnqueue(1)
	for i := 0; i < 20; i++ {
		_ = buf.EnqueueTimeout(2, time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = buf.Enqueue(context.Background(), 3)
	}()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, buf.Close())
	<-done

	// Allow watcher goroutines to observe done channels
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Goroutine count grew from %d to %d", before, runtime.NumGoroutine())
}
