package portrait

import (
	"sync"
	"testing"
	"time"
)

func insertFixture() InsertPortrait {
	return InsertPortrait{
		OriginalImageURL:  "data:image/jpeg;base64,b3JpZ2luYWw=",
		GeneratedImageURL: "data:image/webp;base64,Z2VuZXJhdGVk",
		YearWar:           "1863",
		Side:              "Union",
		Rank:              "Captain",
		Branch:            "infantry",
		ArtStyle:          "oil",
	}
}

func TestCreatePortraitSequentialIDs(t *testing.T) {
	store := NewMemStore()

	for want := 1; want <= 3; want++ {
		record := store.CreatePortrait(insertFixture())
		if record.ID != want {
			t.Fatalf("expected id %d, got %d", want, record.ID)
		}
		if _, err := time.Parse(time.RFC3339, record.CreatedAt); err != nil {
			t.Fatalf("createdAt not RFC3339: %q", record.CreatedAt)
		}
	}
}

func TestCreatePortraitConcurrent(t *testing.T) {
	store := NewMemStore()
	const workers = 100

	ids := make(chan int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			ids <- store.CreatePortrait(insertFixture()).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, workers)
	for id := range ids {
		if id < 1 || id > workers {
			t.Fatalf("id %d out of range", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct ids, got %d", workers, len(seen))
	}
	if store.PortraitCount() != workers {
		t.Fatalf("expected %d stored records, got %d", workers, store.PortraitCount())
	}
}

func TestGetPortraitNotFound(t *testing.T) {
	store := NewMemStore()

	if _, err := store.GetPortrait(42); err == nil {
		t.Fatalf("expected not-found error")
	} else if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %s", KindOf(err))
	}
}

func TestGetPortraitRoundTrip(t *testing.T) {
	store := NewMemStore()
	insert := insertFixture()
	created := store.CreatePortrait(insert)

	fetched, err := store.GetPortrait(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetched.YearWar != insert.YearWar || fetched.Side != insert.Side ||
		fetched.Rank != insert.Rank || fetched.Branch != insert.Branch ||
		fetched.ArtStyle != insert.ArtStyle ||
		fetched.OriginalImageURL != insert.OriginalImageURL ||
		fetched.GeneratedImageURL != insert.GeneratedImageURL {
		t.Fatalf("fetched record does not match input: %+v", fetched)
	}
}

func TestStoredPortraitImmutable(t *testing.T) {
	store := NewMemStore()
	created := store.CreatePortrait(insertFixture())

	// Mutating the returned copy must not affect the stored record
	created.Rank = "General"

	fetched, err := store.GetPortrait(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Rank != "Captain" {
		t.Fatalf("stored record was mutated through the returned copy")
	}

	fetched.Side = "Confederate"
	again, err := store.GetPortrait(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Side != "Union" {
		t.Fatalf("stored record was mutated through a lookup result")
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := NewMemStore()

	created := store.CreateUser(InsertUser{Username: "archivist", Password: "secret"})
	if created.ID != 1 {
		t.Fatalf("expected user id 1, got %d", created.ID)
	}

	byID, ok := store.GetUser(created.ID)
	if !ok || byID.Username != "archivist" {
		t.Fatalf("user lookup by id failed")
	}

	byName, ok := store.GetUserByUsername("archivist")
	if !ok || byName.ID != created.ID {
		t.Fatalf("user lookup by username failed")
	}

	if _, ok := store.GetUserByUsername("nobody"); ok {
		t.Fatalf("expected miss for unknown username")
	}
}
