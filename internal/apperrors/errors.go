package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Expired composition sessions surface as ErrNotFound as well.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrSubmission indicates the upstream ERP API rejected a submitted payload.
// The server message is carried verbatim and never reinterpreted.
var ErrSubmission = errors.New("submission rejected by server")

// ErrTransitionNotAllowed indicates a lifecycle call was made while its guard
// (canPost/canCancel/status) was false. The UI should make this unreachable,
// but the engine still rejects it rather than trust the caller.
var ErrTransitionNotAllowed = errors.New("lifecycle transition not allowed")

// ErrEntryImmutable indicates a mutation was attempted on an entry that is no
// longer a draft.
var ErrEntryImmutable = errors.New("entry is no longer a draft and cannot be modified")

// ErrUpstreamUnavailable indicates the upstream ERP API could not be reached.
var ErrUpstreamUnavailable = errors.New("upstream ERP API unavailable")
