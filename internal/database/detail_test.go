package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

func testDetailRow(id int) domain.DetailRow {
	genres := `[{"id":28,"name":"Action"}]`
	return domain.DetailRow{
		ID:               id,
		Title:            "Heat",
		OriginalTitle:    "Heat",
		Overview:         "overview",
		PosterPath:       "/poster.jpg",
		BackdropPath:     "/backdrop.jpg",
		ReleaseDate:      "1995-12-15",
		VoteAverage:      8.3,
		VoteCount:        7000,
		Genres:           &genres,
		Runtime:          170,
		Status:           "Released",
		Tagline:          "A Los Angeles crime saga",
		ImdbID:           "tt0113277",
		OriginalLanguage: "en",
		LastUpdated:      1700000000000,
	}
}

func TestDetailRepoGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewDetailRepo(zerolog.Nop(), db)

	got, err := repo.Get(context.Background(), 949)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("detail = %+v, want nil for uncached id", got)
	}
}

func TestDetailRepoUpsertOverwritesWholesale(t *testing.T) {
	db := newTestDB(t)
	repo := NewDetailRepo(zerolog.Nop(), db)
	ctx := context.Background()

	row := testDetailRow(949)
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	row.Tagline = ""
	row.Runtime = 0
	row.Genres = nil
	row.LastUpdated = 1700000001000
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, 949)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("detail missing after upsert")
	}
	if got.Tagline != "" || got.Runtime != 0 || got.Genres != nil {
		t.Errorf("detail = %+v, want cleared fields (wholesale overwrite)", got)
	}
	if got.LastUpdated != 1700000001000 {
		t.Errorf("last_updated = %d, want 1700000001000", got.LastUpdated)
	}
}

func TestDetailRepoDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewDetailRepo(zerolog.Nop(), db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, testDetailRow(949)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Delete(ctx, 949); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.Get(ctx, 949)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("detail = %+v, want nil after delete", got)
	}
}
