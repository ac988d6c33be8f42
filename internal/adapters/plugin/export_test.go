package plugin

// SetIDGenerator replaces the execution ID source.
// This is exported for testing purposes only.
func (f *Factory) SetIDGenerator(fn func() string) {
	f.newID = fn
}
