package download

// Deliverer defines the interface for the download service.
type Deliverer interface {
	// Stage stores data and returns a handle that can be delivered.
	Stage(data []byte) (*Handle, error)

	// Deliver publishes the staged data under name and returns the final path.
	Deliver(h *Handle, name string) (string, error)

	// Revoke releases the staged data. Revoking twice is not an error.
	Revoke(h *Handle) error

	// OutputDirectory returns the directory deliveries land in
	OutputDirectory() string

	// SetOutputDirectory sets the delivery directory
	SetOutputDirectory(dir string)
}
