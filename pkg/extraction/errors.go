package extraction

import "errors"

// Stable failure kinds for the pipeline. Callers match with errors.Is; the
// wrapped message names the offending input.
var (
	// ErrUnsupportedModelKind reports a model that is neither a decision
	// tree nor a forest of decision trees.
	ErrUnsupportedModelKind = errors.New("unsupported model kind")

	// ErrUnknownSelectionMethod reports a selection method other than CBC.
	ErrUnknownSelectionMethod = errors.New("unknown selection method")

	// ErrDegenerateDataset reports an empty or malformed dataset on entry.
	ErrDegenerateDataset = errors.New("degenerate dataset")

	// ErrCancelled reports cooperative cancellation. No partial decision
	// list is returned.
	ErrCancelled = errors.New("extraction cancelled")

	// ErrInternalInvariant reports a broken internal invariant. It should
	// never be observed.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
