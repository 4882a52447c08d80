// Package cleaner provides the text-cleaning stages that turn the raw HTML body
// of an order-notification email into plain text.
//
// Each stage is a Cleaner: a pure, synchronous transform with no shared state.
// Stages are composed in a fixed order with NewChain; each stage assumes the
// output shape produced by the one before it.
package cleaner

// Cleaner transforms email content into a cleaner form.
type Cleaner interface {
	// Clean transforms the input text.
	// Built-in stages never return an error; degraded input passes through.
	Clean(content string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
