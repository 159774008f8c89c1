package driver

// ContentRow is a raw row from a content table. Title and Excerpt are
// nullable in the schema.
type ContentRow struct {
	ID      string
	Slug    string
	Title   *string
	Excerpt *string
}

// DriverError represents an error from the driver layer
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
