package nestplate

import "errors"

// Sentinel errors for template construction.
var (
	// ErrEmptyEnclosure indicates an empty begin or end delimiter.
	// An empty delimiter matches at every index and can never be scanned.
	ErrEmptyEnclosure = errors.New("enclosure delimiter must not be empty")
)

// Sentinel errors for resolution and lookup.
var (
	// ErrStepLimit is recorded on the resolve span when a resolution is cut
	// short by WithMaxSteps. Resolve itself never returns it.
	ErrStepLimit = errors.New("resolve step limit reached")

	// ErrLengthLimit is recorded on the resolve span when a substitution
	// would grow the message past WithMaxLength.
	ErrLengthLimit = errors.New("resolve length limit reached")

	// ErrTemplateNotFound indicates a Set has no template under the name.
	ErrTemplateNotFound = errors.New("template not found")
)
