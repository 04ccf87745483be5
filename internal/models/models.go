package models

// Record defines the base interface for all persisted dataset rows.
// Implementations include Customer, RepLink, and ImportBatch.
type Record interface {
	Key() string     // Key returns the identifying value for this record
	Validate() error // Validate checks if the record's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific record types.
type Repository[T Record] interface {
	Insert(record T) error                     // Insert adds a new record to the database
	InsertMany(records []T) error              // InsertMany adds records in a single transaction
	List(criteria map[string]any) ([]T, error) // List retrieves all records matching the given criteria
	Count() (int, error)                       // Count returns the number of stored records
}
