package models

// Result is the outcome of a store mutation.
//
// Err is nil on success and otherwise one of the shared sentinel errors, so callers can use errors.Is.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Ok builds a successful Result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail builds a failed Result.
func Fail(err error, message string) Result {
	return Result{Success: false, Message: message, Err: err}
}

// AsError returns nil on success, or an error carrying both Err and Message.
func (r Result) AsError() error {
	if r.Success {
		return nil
	}
	return resultError{r}
}

type resultError struct{ r Result }

func (e resultError) Error() string {
	if e.r.Err == nil {
		return e.r.Message
	}
	return e.r.Err.Error() + ": " + e.r.Message
}

func (e resultError) Unwrap() error { return e.r.Err }
