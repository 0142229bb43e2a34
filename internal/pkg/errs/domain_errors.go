package errs

// Cross-layer sentinel errors shared by the store, the use cases and the engine
var (
	// Reservation errors
	ErrReservationNotFound = New("reservation not found")

	// Engine errors
	ErrEngineStopped = New("reservation engine stopped")
	ErrAskTimeout    = New("reservation engine did not reply in time")

	// Operation errors
	ErrStoreOperationFailed = New("store operation failed")
)
