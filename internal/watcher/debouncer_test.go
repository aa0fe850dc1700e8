package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerBatchesEvents(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var mu sync.Mutex
	var batches [][]string
	handler := func(files []string) error {
		mu.Lock()
		batches = append(batches, files)
		mu.Unlock()
		return nil
	}

	// Rapid events for the same path collapse into one entry.
	for i := 0; i < 3; i++ {
		d.add(FileChangeEvent{Path: "a.py", Operation: "WRITE", Timestamp: time.Now()}, handler)
	}
	d.add(FileChangeEvent{Path: "b.py", Operation: "WRITE", Timestamp: time.Now()}, handler)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if len(batches[0]) != 2 {
		t.Errorf("batch has %d files, want 2 (deduplicated): %v", len(batches[0]), batches[0])
	}
}

func TestDebouncerResetsOnNewEvents(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	var mu sync.Mutex
	fired := 0
	handler := func(files []string) error {
		mu.Lock()
		fired++
		mu.Unlock()
		return nil
	}

	d.add(FileChangeEvent{Path: "a.py", Operation: "WRITE", Timestamp: time.Now()}, handler)
	time.Sleep(15 * time.Millisecond)

	mu.Lock()
	if fired != 0 {
		mu.Unlock()
		t.Fatal("handler fired before the debounce window elapsed")
	}
	mu.Unlock()

	// A second event inside the window restarts the timer.
	d.add(FileChangeEvent{Path: "a.py", Operation: "WRITE", Timestamp: time.Now()}, handler)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
}
