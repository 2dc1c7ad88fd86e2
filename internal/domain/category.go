package domain

// CategoryKind identifies which remote collection a category maps to.
type CategoryKind int

const (
	KindTrending CategoryKind = iota
	KindNowPlaying
	KindSearch
)

// Category is a tagged identifier for a partition of the paginated cache.
// Search categories carry their query so distinct queries never share a
// partition; the zero value is the trending category.
type Category struct {
	kind  CategoryKind
	query string
}

func Trending() Category {
	return Category{kind: KindTrending}
}

func NowPlaying() Category {
	return Category{kind: KindNowPlaying}
}

func Search(query string) Category {
	return Category{kind: KindSearch, query: query}
}

func (c Category) Kind() CategoryKind {
	return c.kind
}

// Query returns the search query, or "" for non-search categories.
func (c Category) Query() string {
	return c.query
}

// Key returns the store partition key for this category. Search keys are
// namespaced with a "search_" prefix so a literal query can never collide
// with the fixed category names.
func (c Category) Key() string {
	switch c.kind {
	case KindNowPlaying:
		return "now_playing"
	case KindSearch:
		return "search_" + c.query
	default:
		return "trending"
	}
}
