package domain

import (
	"context"
	"time"
)

// Clock supplies the current time. Injected so staleness and bookmark
// timestamps are deterministic under test.
type Clock func() time.Time

// MovieRepo defines the store operations for cached catalog rows and the
// per-category pagination metadata that travels with them.
type MovieRepo interface {
	Upsert(ctx context.Context, rows []MovieRow) error
	GetByCategoryAndPage(ctx context.Context, category string, page int) ([]MovieRow, error)
	// GetByCategory returns every cached row of a category ordered by page
	// ascending.
	GetByCategory(ctx context.Context, category string) ([]MovieRow, error)
	DeleteByCategory(ctx context.Context, category string) error
	// RefreshPage persists one fetched page as a single atomic unit: for
	// page 1 it deletes every prior row of the category first (full reset),
	// then inserts rows and writes metadata. A reader never observes the
	// delete without the insert.
	RefreshPage(ctx context.Context, category string, page int, rows []MovieRow, meta PaginationMetadata) error
	UpsertMetadata(ctx context.Context, meta PaginationMetadata) error
	// GetMetadata returns nil when no metadata has been written for the
	// category yet.
	GetMetadata(ctx context.Context, category string) (*PaginationMetadata, error)
}

// DetailRepo defines the store operations for cached detail records.
type DetailRepo interface {
	Upsert(ctx context.Context, row DetailRow) error
	// Get returns nil when no record is cached for the id.
	Get(ctx context.Context, id int) (*DetailRow, error)
	Delete(ctx context.Context, id int) error
}

// BookmarkRepo defines the store operations for the bookmark overlay. Every
// mutation notifies all live membership and list subscribers before the call
// returns.
type BookmarkRepo interface {
	Upsert(ctx context.Context, row BookmarkRow) error
	Delete(ctx context.Context, id int) error
	// Get returns nil when the id is not bookmarked.
	Get(ctx context.Context, id int) (*BookmarkRow, error)
	// List returns bookmarks most-recently-bookmarked first.
	List(ctx context.Context) ([]BookmarkRow, error)
	IsBookmarked(ctx context.Context, id int) (bool, error)
	AllIDs(ctx context.Context) (map[int]struct{}, error)
	// SubscribeMembership delivers the current membership immediately and
	// again after every bookmark mutation. The cancel func must be called
	// when the caller stops observing.
	SubscribeMembership(id int) (<-chan bool, func())
	// SubscribeList delivers the current bookmark list immediately and again
	// after every bookmark mutation, most-recently-bookmarked first.
	SubscribeList() (<-chan []BookmarkRow, func())
}
