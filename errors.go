package smudge

import "errors"

var (
	// ErrNotInitialized is returned by BlendBrush before Initialize.
	ErrNotInitialized = errors.New("smudge: strategy not initialized")

	// ErrInvalidConfig is returned for out-of-range or unknown settings.
	ErrInvalidConfig = errors.New("smudge: invalid config")

	// ErrStrokeAborted is returned by a stroke after a dab failed to
	// allocate its scratch buffers. The stroke accepts no further dabs.
	ErrStrokeAborted = errors.New("smudge: stroke aborted")
)
