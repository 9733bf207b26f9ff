package session

// Result is the uniform outcome of every session operation. Failures
// are returned, never raised past the session boundary; Message carries
// the human-readable reason when OK is false.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func success() Result {
	return Result{OK: true}
}

func failure(message string) Result {
	return Result{OK: false, Message: message}
}

func failureFromError(err error, fallback string) Result {
	if err == nil || err.Error() == "" {
		return failure(fallback)
	}
	return failure(err.Error())
}
