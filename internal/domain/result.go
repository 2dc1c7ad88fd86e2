package domain

// Status discriminates the three result states of a read stream.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Result is the tri-state value emitted on read streams. Loading carries no
// data, Success always carries data, and Error may carry the best available
// cached data alongside its message. Err holds the typed cause on the error
// variant so callers can tell a transport failure from a broken local store.
type Result[T any] struct {
	Status  Status
	Data    *T
	Message string
	Err     error
}

func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: &data}
}

// Failure builds an error result without data.
func Failure[T any](message string, err error) Result[T] {
	return Result[T]{Status: StatusError, Message: message, Err: err}
}

// FailureWith builds an error result carrying fallback data.
func FailureWith[T any](message string, data T, err error) Result[T] {
	return Result[T]{Status: StatusError, Data: &data, Message: message, Err: err}
}

// PaginatedResult is one page of a paginated collection plus its position
// within the full result set.
type PaginatedResult[T any] struct {
	Data         []T
	CurrentPage  int
	TotalPages   int
	TotalResults int
}
