package cache

// ErrorHandler carries the HTTP status a cache failure should map to,
// so the delivery layer does not have to guess.
type ErrorHandler struct {
	Err        error
	StatusCode int
}

func NewErrorHandler(err error, statusCode int) ErrorHandler {
	return ErrorHandler{Err: err, StatusCode: statusCode}
}

func (e ErrorHandler) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e ErrorHandler) Unwrap() error { return e.Err }
