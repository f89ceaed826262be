package engine

// ErrorKind classifies a rejected contract operation. Every kind is a
// caller-input or business-rule violation surfaced verbatim to the UI;
// none is retried.
type ErrorKind string

const (
	ErrDuplicateItem                 ErrorKind = "DuplicateItem"
	ErrNotAwaitingVerification       ErrorKind = "NotAwaitingVerification"
	ErrFraudDetected                 ErrorKind = "FraudDetected"
	ErrItemNotFound                  ErrorKind = "ItemNotFound"
	ErrItemNotTransferable           ErrorKind = "ItemNotTransferable"
	ErrUnitMismatch                  ErrorKind = "UnitMismatch"
	ErrInsufficientQuantity          ErrorKind = "InsufficientQuantity"
	ErrQualityBelowThreshold         ErrorKind = "QualityBelowThreshold"
	ErrManufacturerNotFound          ErrorKind = "ManufacturerNotFound"
	ErrInsufficientOrMismatchedBatch ErrorKind = "InsufficientOrMismatchedBatches"
)

// Result is the discriminated outcome of a contract operation.
type Result struct {
	OK      bool      `json:"success"`
	Kind    ErrorKind `json:"errorKind,omitempty"`
	Message string    `json:"message"`
}

func success(msg string) Result {
	return Result{OK: true, Message: msg}
}

func failure(kind ErrorKind, msg string) Result {
	return Result{OK: false, Kind: kind, Message: msg}
}
