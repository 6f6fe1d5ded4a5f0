package borders

import "errors"

var (
	// ErrInvalidParameter reports an out-of-range tunable such as a depth,
	// threshold or sampling density.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDecodeFailure reports that the image or one of its frames could not
	// be decoded or composited.
	ErrDecodeFailure = errors.New("decode failure")
)
