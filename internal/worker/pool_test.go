package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryJob(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var ran atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		p.Submit(func() {
			ran.Add(1)
			wg.Done()
		})
	}
	wg.Wait()

	assert.Equal(t, int64(100), ran.Load())
	assert.Equal(t, int64(100), p.Submitted())
}

func TestSubmitNeverBlocks(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	block := make(chan struct{})
	p.Submit(func() { <-block })

	// The single worker is pinned; further submissions must still
	// return immediately.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			p.Submit(func() {})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked with a busy worker")
	}
	close(block)
}

func TestActiveCounter(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		p.Submit(func() {
			started <- struct{}{}
			<-block
		})
	}
	<-started
	<-started
	assert.Equal(t, 2, p.Active())

	close(block)
	require.Eventually(t, func() bool { return p.Active() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestSubmitAfterCloseIsNoop(t *testing.T) {
	p := NewPool(1)
	p.Close()

	p.Submit(func() { t.Error("job ran after close") })
	time.Sleep(50 * time.Millisecond)
}
