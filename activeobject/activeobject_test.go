package activeobject

import (
	"sync"
	"testing"

	"GraphCompute/queue"
)

func TestProcessesAllItemsBeforeStopReturns(t *testing.T) {
	in := queue.New[int](8)
	var mu sync.Mutex
	var sum int

	ao := New(in, func(v int) {
		mu.Lock()
		sum += v
		mu.Unlock()
	})
	ao.Start()

	for i := 1; i <= 5; i++ {
		in.Push(i)
	}
	ao.Stop()

	mu.Lock()
	defer mu.Unlock()
	if sum != 15 {
		t.Fatalf("sum = %d, want 15", sum)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	in := queue.New[int](1)
	ao := New(in, func(int) {})
	ao.Start()
	ao.Stop()
	ao.Stop()
}
