package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedTimestamp is logged when temporal text cannot be parsed. It never crosses the codec boundary.
	ErrMalformedTimestamp = zerr.New("malformed timestamp")

	// ErrMalformedDate is logged when calendar date text cannot be parsed.
	ErrMalformedDate = zerr.New("malformed calendar date")

	// ErrNoActiveSession is returned by a UserProvider when nobody is signed in.
	ErrNoActiveSession = zerr.New("no active session")

	// ErrResolutionMismatch is returned when a summary is stored under a key of a different resolution.
	ErrResolutionMismatch = zerr.New("summary resolution does not match cache key")

	// ErrUnknownResolution is returned for resolutions other than daily and weekly.
	ErrUnknownResolution = zerr.New("unknown resolution")

	// ErrEmptyResponse is returned when the server reports success without a payload.
	ErrEmptyResponse = zerr.New("response carried no data")

	// ErrUnexpectedStatus is returned when the server answers with a non-2xx status and no envelope.
	ErrUnexpectedStatus = zerr.New("unexpected response status")

	// ErrMalformedResponse is returned when a response body is not a valid envelope.
	ErrMalformedResponse = zerr.New("malformed response body")

	// ErrSessionNotLoaded is returned when an edit operation runs before Load.
	ErrSessionNotLoaded = zerr.New("edit session not loaded")

	// ErrCommitInProgress is returned when a commit or delete is issued while another is still running.
	ErrCommitInProgress = zerr.New("commit already in progress")

	// ErrNothingToCommit is returned when commit is requested while confirm is disabled.
	ErrNothingToCommit = zerr.New("nothing to commit")

	// ErrDeleteNotAllowed is returned when deleting a meal that has not been saved yet.
	ErrDeleteNotAllowed = zerr.New("meal cannot be deleted")

	// ErrIngredientNotFound is returned when an ingredient id is not part of the working meal.
	ErrIngredientNotFound = zerr.New("ingredient not found")

	// ErrIngredientNotAdjustable is returned for ingredients without a persistent id.
	ErrIngredientNotAdjustable = zerr.New("ingredient quantity cannot be adjusted")

	// ErrInvalidConsumeTime is returned when a picked date-time does not exist.
	ErrInvalidConsumeTime = zerr.New("invalid consume time")

	// ErrInvalidRange is returned when a day count is not positive.
	ErrInvalidRange = zerr.New("day count must be positive")

	// ErrConfigInvalid is returned when configuration values fail validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrSessionStoreFailed is returned when the session file cannot be read or written.
	ErrSessionStoreFailed = zerr.New("session store failure")
)
