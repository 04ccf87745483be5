package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Dataset errors
	ErrMalformedValue = fmt.Errorf("malformed field value")
	ErrMissingHeader  = fmt.Errorf("missing or unknown CSV header")
	ErrEmptyDataset   = fmt.Errorf("dataset is empty")

	// Report errors
	ErrUnknownReport = fmt.Errorf("unknown report")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
