package queue

import (
	"testing"
	"time"
)

func TestPushPopFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 4; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("pop = %v, %v; want %v, true", v, ok, i)
		}
	}
}

func TestPushBlocksUntilCapacityAvailable(t *testing.T) {
	q := New[int](1)
	q.Push(1)

	done := make(chan struct{})
	go func() {
		q.Push(2)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("push should have blocked while queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	q.Pop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push never unblocked after pop freed capacity")
	}
}

func TestCloseDrainsBufferedItemsBeforeTerminating(t *testing.T) {
	q := New[int](4)
	q.Push(1)
	q.Push(2)
	q.Close()

	v, ok := q.Pop()
	if !ok || v != 1 {
		t.Fatalf("pop = %v, %v; want 1, true", v, ok)
	}
	v, ok = q.Pop()
	if !ok || v != 2 {
		t.Fatalf("pop = %v, %v; want 2, true", v, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected closed-and-drained queue to report false")
	}
}

func TestPushAfterCloseFails(t *testing.T) {
	q := New[int](1)
	q.Close()
	if q.Push(1) {
		t.Fatal("expected push on a closed queue to fail")
	}
}

func TestPopBlocksUntilItemOrClose(t *testing.T) {
	q := New[int](1)
	done := make(chan bool)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	select {
	case <-done:
		t.Fatal("pop should have blocked on an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	q.Close()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected pop to report false on an empty closed queue")
		}
	case <-time.After(time.Second):
		t.Fatal("pop never unblocked after close")
	}
}
