package pool

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

func TestRingBufferFIFOAndBounds(t *testing.T) {
	r := NewRingBuffer[int](4)
	for i := 0; i < 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("enqueue into full ring accepted")
	}
	if r.Len() != 4 || r.Cap() != 4 {
		t.Fatalf("len/cap = %d/%d", r.Len(), r.Cap())
	}
	for i := 0; i < 4; i++ {
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("dequeue = %d,%v want %d", v, ok, i)
		}
	}
	if _, ok := r.Dequeue(); ok {
		t.Fatal("dequeue from empty ring succeeded")
	}
}

func TestRingBufferPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non power of two")
		}
	}()
	NewRingBuffer[int](3)
}

// Every producer's items arrive exactly once and in that producer's order.
func TestQueueBackendsMultiProducer(t *testing.T) {
	const producers, perProducer = 4, 2000
	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			q, err := NewQueue[[2]int](backend, 64)
			if err != nil {
				t.Fatal(err)
			}
			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perProducer; i++ {
						for !q.Enqueue([2]int{p, i}) {
							time.Sleep(time.Microsecond)
						}
					}
				}(p)
			}

			next := make([]int, producers)
			deadline := time.Now().Add(10 * time.Second)
			for got := 0; got < producers*perProducer; {
				v, ok := q.Dequeue()
				if !ok {
					if time.Now().After(deadline) {
						t.Fatalf("timed out after %d items", got)
					}
					continue
				}
				if v[1] != next[v[0]] {
					t.Fatalf("producer %d out of order: got %d want %d", v[0], v[1], next[v[0]])
				}
				next[v[0]]++
				got++
			}
			wg.Wait()
			if q.Len() != 0 {
				t.Fatalf("queue not drained: %d", q.Len())
			}
		})
	}
}

func TestNewQueueCapacity(t *testing.T) {
	q, err := NewQueue[int](BackendLockFree, 100)
	if err != nil {
		t.Fatal(err)
	}
	if q.Cap() != 128 {
		t.Fatalf("lockfree cap = %d, want 128", q.Cap())
	}
	m, _ := NewQueue[int](BackendMutex, 2)
	m.Enqueue(1)
	m.Enqueue(2)
	if m.Enqueue(3) {
		t.Fatal("mutex queue exceeded capacity")
	}
	if _, err := NewQueue[int]("bogus", 8); err == nil {
		t.Fatal("unknown backend accepted")
	}
	if _, err := NewQueue[int](BackendChan, 0); err == nil {
		t.Fatal("zero capacity accepted")
	}
}

// Randomized single-threaded operations keep Len in step with a model count.
func TestQueueLenProperty(t *testing.T) {
	for _, backend := range Backends() {
		for seed := int64(0); seed < 10; seed++ {
			q, err := NewQueue[int](backend, 64)
			if err != nil {
				t.Fatal(err)
			}
			rng := rand.New(rand.NewSource(seed))
			size := 0
			for i := 0; i < 5000; i++ {
				if rng.Intn(2) == 0 {
					if q.Enqueue(rng.Intn(100000)) {
						size++
					}
				} else if _, ok := q.Dequeue(); ok {
					size--
				}
				if q.Len() != size {
					t.Fatalf("%s seed %d: len %d, model %d", backend, seed, q.Len(), size)
				}
				if size < 0 || size > q.Cap() {
					t.Fatalf("%s seed %d: size %d out of [0, %d]", backend, seed, size, q.Cap())
				}
			}
		}
	}
}
