package collection

import (
	"fmt"
	"testing"

	"playground-client/internal/storage"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestInsert_NewestFirst(t *testing.T) {
	b := NewBounded[entry](storage.NewMemory(), 5)

	var list []entry
	list = b.Insert(list, entry{ID: 1})
	list = b.Insert(list, entry{ID: 2})
	list = b.Insert(list, entry{ID: 3})

	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].ID != 3 || list[1].ID != 2 || list[2].ID != 1 {
		t.Errorf("order = %v, want newest first", list)
	}
}

func TestInsert_NeverExceedsCapacity(t *testing.T) {
	b := NewBounded[entry](storage.NewMemory(), 3)

	var list []entry
	for i := 1; i <= 10; i++ {
		list = b.Insert(list, entry{ID: i})
		if len(list) > b.Capacity() {
			t.Fatalf("after insert %d: len = %d exceeds capacity %d", i, len(list), b.Capacity())
		}
	}

	if len(list) != 3 {
		t.Fatalf("final len = %d, want 3", len(list))
	}
	// Most recent three survive, oldest evicted
	if list[0].ID != 10 || list[1].ID != 9 || list[2].ID != 8 {
		t.Errorf("list = %v, want [10 9 8]", list)
	}
}

func TestInsert_EvictsOldest(t *testing.T) {
	capacity := 4
	b := NewBounded[entry](storage.NewMemory(), capacity)

	list := b.Insert(nil, entry{ID: 99, Name: "X"})
	for i := 0; i < capacity; i++ {
		list = b.Insert(list, entry{ID: i})
	}

	for _, item := range list {
		if item.ID == 99 {
			t.Errorf("item X still present after %d newer inserts", capacity)
		}
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	b := NewBounded[entry](kv, 50)

	list := b.Insert(nil, entry{ID: 1, Name: "first"})
	list = b.Insert(list, entry{ID: 2, Name: "second"})

	if err := b.Save("user-1/favorites", list); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := b.Load("user-1/favorites")
	if len(loaded) != 2 {
		t.Fatalf("Load() len = %d, want 2", len(loaded))
	}
	if loaded[0].Name != "second" || loaded[1].Name != "first" {
		t.Errorf("Load() = %v, lost ordering", loaded)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	b := NewBounded[entry](storage.NewMemory(), 50)

	list := b.Load("user-1/favorites")
	if list == nil || len(list) != 0 {
		t.Errorf("Load(missing) = %v, want empty list", list)
	}
}

func TestLoad_CorruptState(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Put("user-1/favorites", []byte("{not json")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	b := NewBounded[entry](kv, 50)
	list := b.Load("user-1/favorites")
	if len(list) != 0 {
		t.Errorf("Load(corrupt) = %v, want empty list", list)
	}
}

func TestLoad_TruncatesOversizedState(t *testing.T) {
	kv := storage.NewMemory()
	big := NewBounded[entry](kv, 10)

	var list []entry
	for i := 0; i < 10; i++ {
		list = big.Insert(list, entry{ID: i})
	}
	if err := big.Save("k", list); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A smaller capacity re-reads the same key
	small := NewBounded[entry](kv, 3)
	loaded := small.Load("k")
	if len(loaded) != 3 {
		t.Errorf("Load() len = %d, want capacity 3", len(loaded))
	}
}

func TestNamespacedKeysAreIsolated(t *testing.T) {
	kv := storage.NewMemory()
	b := NewBounded[entry](kv, 50)

	if err := b.Save("user-a/favorites", b.Insert(nil, entry{ID: 1})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := b.Load("user-b/favorites"); len(got) != 0 {
		t.Errorf("user-b sees user-a favorites: %v", got)
	}
}

func ExampleBounded_Insert() {
	b := NewBounded[int](storage.NewMemory(), 2)

	list := b.Insert(nil, 1)
	list = b.Insert(list, 2)
	list = b.Insert(list, 3)

	fmt.Println(list)
	// Output: [3 2]
}
