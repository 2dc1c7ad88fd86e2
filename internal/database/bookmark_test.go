package database

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

func testBookmarkRow(id int, bookmarkedAt int64) domain.BookmarkRow {
	genres := "18,80"
	return domain.BookmarkRow{
		ID:               id,
		Title:            "Bookmarked",
		ReleaseDate:      "2020-01-01",
		VoteAverage:      8.0,
		VoteCount:        500,
		GenreIDs:         &genres,
		OriginalLanguage: "en",
		BookmarkedAt:     bookmarkedAt,
	}
}

func TestBookmarkRepoMembership(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	bookmarked, err := repo.IsBookmarked(ctx, 1)
	if err != nil {
		t.Fatalf("is bookmarked: %v", err)
	}
	if bookmarked {
		t.Error("empty store reports id as bookmarked")
	}

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	bookmarked, err = repo.IsBookmarked(ctx, 1)
	if err != nil {
		t.Fatalf("is bookmarked: %v", err)
	}
	if !bookmarked {
		t.Error("id not reported as bookmarked after upsert")
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	bookmarked, err = repo.IsBookmarked(ctx, 1)
	if err != nil {
		t.Fatalf("is bookmarked: %v", err)
	}
	if bookmarked {
		t.Error("id still reported as bookmarked after delete")
	}
}

func TestBookmarkRepoListOrdersMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	for i, at := range []int64{100, 300, 200} {
		if err := repo.Upsert(ctx, testBookmarkRow(i+1, at)); err != nil {
			t.Fatalf("upsert %d: %v", i+1, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list size = %d, want 3", len(list))
	}
	for i, wantID := range []int{2, 3, 1} {
		if list[i].ID != wantID {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, wantID)
		}
	}
}

func TestBookmarkRepoAllIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, testBookmarkRow(7, 200)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ids, err := repo.AllIDs(ctx)
	if err != nil {
		t.Fatalf("all ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("id set size = %d, want 2", len(ids))
	}
	for _, id := range []int{1, 7} {
		if _, ok := ids[id]; !ok {
			t.Errorf("id %d missing from set", id)
		}
	}
}

// receive reads one value from ch or fails the test after a timeout.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription push")
		panic("unreachable")
	}
}

func TestBookmarkRepoMembershipSubscription(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	ch, cancel := repo.SubscribeMembership(1)
	defer cancel()

	if got := receive(t, ch); got {
		t.Error("initial membership = true, want false")
	}

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := receive(t, ch); !got {
		t.Error("membership after upsert = false, want true")
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := receive(t, ch); got {
		t.Error("membership after delete = true, want false")
	}
}

func TestBookmarkRepoMembershipSubscriptionNotifiedBeforeReturn(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	ch, cancel := repo.SubscribeMembership(1)
	defer cancel()
	receive(t, ch) // initial state

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// The push has to be buffered already; no other goroutine runs.
	select {
	case got := <-ch:
		if !got {
			t.Error("membership push = false, want true")
		}
	default:
		t.Error("no membership push buffered when the mutation returned")
	}
}

func TestBookmarkRepoListSubscription(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	ch, cancel := repo.SubscribeList()
	defer cancel()

	if got := receive(t, ch); len(got) != 0 {
		t.Errorf("initial list size = %d, want 0", len(got))
	}

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := receive(t, ch); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("list after upsert = %+v, want one row with id 1", got)
	}

	if err := repo.Upsert(ctx, testBookmarkRow(2, 200)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := receive(t, ch); len(got) != 2 || got[0].ID != 2 {
		t.Errorf("list after second upsert = %+v, want id 2 first", got)
	}
}

func TestBookmarkRepoSubscriptionConflatesToLatest(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	ch, cancel := repo.SubscribeMembership(1)
	defer cancel()

	// Do not read the initial push; mutate twice. Only the latest state may
	// be observed.
	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := receive(t, ch); got {
		t.Error("conflated membership = true, want latest state false")
	}
}

func TestBookmarkRepoCancelStopsPushes(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepo(zerolog.Nop(), db)
	ctx := context.Background()

	ch, cancel := repo.SubscribeMembership(1)
	receive(t, ch)
	cancel()
	cancel() // double cancel is safe

	if err := repo.Upsert(ctx, testBookmarkRow(1, 100)); err != nil {
		t.Fatalf("upsert after cancel: %v", err)
	}

	// Channel is closed; the only receivable value is the zero value.
	if v, ok := <-ch; ok {
		t.Errorf("received %v on cancelled subscription", v)
	}
}
