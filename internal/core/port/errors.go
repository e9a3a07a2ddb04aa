package port

import "errors"

// Error taxonomy for the campaign tracker. Adapters map driver and
// filesystem failures into these sentinels; callers match them with
// errors.Is. Write operations never surface raw driver errors.
var (
	// ErrValidation indicates bad or missing input, such as an empty
	// campaign name or a non-PDF upload.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the referenced campaign does not exist.
	ErrNotFound = errors.New("campaign not found")

	// ErrConflict indicates a duplicate generated filename or a spec
	// version collision.
	ErrConflict = errors.New("conflict")

	// ErrTransaction indicates a database unit failed and was rolled back;
	// no partial state is visible.
	ErrTransaction = errors.New("transaction failed")

	// ErrIO indicates a filesystem read or write failure.
	ErrIO = errors.New("file i/o failed")

	// ErrConnectivity indicates the initial database connection could not
	// be established after retries.
	ErrConnectivity = errors.New("database unreachable")
)
