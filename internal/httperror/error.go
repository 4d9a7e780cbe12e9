package httperror

// Error is the response body for requests that failed.
type Error struct {
	Message string `json:"error" example:"you must specify a transaction ID"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}
