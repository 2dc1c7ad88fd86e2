package domain

import "testing"

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		name string
		cat  Category
		want string
	}{
		{name: "trending", cat: Trending(), want: "trending"},
		{name: "now playing", cat: NowPlaying(), want: "now_playing"},
		{name: "search", cat: Search("blade runner"), want: "search_blade runner"},
		{name: "search cannot collide with a fixed name", cat: Search("trending"), want: "search_trending"},
		{name: "zero value is trending", cat: Category{}, want: "trending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cat.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryQueriesAreDistinct(t *testing.T) {
	if Search("alien").Key() == Search("aliens").Key() {
		t.Error("distinct queries share a partition key")
	}
}

func TestResultConstructors(t *testing.T) {
	loading := Loading[int]()
	if loading.Status != StatusLoading || loading.Data != nil {
		t.Errorf("Loading = %+v, want no data", loading)
	}

	success := Success(42)
	if success.Status != StatusSuccess || success.Data == nil || *success.Data != 42 {
		t.Errorf("Success = %+v, want data 42", success)
	}

	failure := Failure[int]("Offline", nil)
	if failure.Status != StatusError || failure.Data != nil || failure.Message != "Offline" {
		t.Errorf("Failure = %+v, want data-less error", failure)
	}

	withData := FailureWith("Offline", 7, nil)
	if withData.Status != StatusError || withData.Data == nil || *withData.Data != 7 {
		t.Errorf("FailureWith = %+v, want error carrying 7", withData)
	}
}

func TestMovieDerivedFields(t *testing.T) {
	m := Movie{PosterPath: "/p.jpg", BackdropPath: "/b.jpg", ReleaseDate: "1999-03-31"}
	if got := m.PosterURL(); got != "https://image.tmdb.org/t/p/w500/p.jpg" {
		t.Errorf("PosterURL = %q", got)
	}
	if got := m.BackdropURL(); got != "https://image.tmdb.org/t/p/w780/b.jpg" {
		t.Errorf("BackdropURL = %q", got)
	}
	if got := m.Year(); got != "1999" {
		t.Errorf("Year = %q, want 1999", got)
	}

	empty := Movie{}
	if empty.PosterURL() != "" || empty.BackdropURL() != "" || empty.Year() != "" {
		t.Error("derived fields of an empty movie should be empty")
	}
}

func TestRuntimeFormatted(t *testing.T) {
	tests := []struct {
		runtime int
		want    string
	}{
		{runtime: 0, want: ""},
		{runtime: 45, want: "45m"},
		{runtime: 60, want: "1h 0m"},
		{runtime: 136, want: "2h 16m"},
	}

	for _, tt := range tests {
		d := MovieDetail{Runtime: tt.runtime}
		if got := d.RuntimeFormatted(); got != tt.want {
			t.Errorf("RuntimeFormatted(%d) = %q, want %q", tt.runtime, got, tt.want)
		}
	}
}

func TestIsTransport(t *testing.T) {
	err := NewTransportError("fetch page", errTimeout{})
	if !IsTransport(err) {
		t.Error("transport error not recognized")
	}
	if IsTransport(errTimeout{}) {
		t.Error("plain error recognized as transport")
	}
}

type errTimeout struct{}

func (errTimeout) Error() string { return "timeout" }
