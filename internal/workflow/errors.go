package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrNoContext      = errors.New("no content available for project")
	ErrGenerateFailed = errors.New("generation failed")
	ErrClassifyFailed = errors.New("classification failed")
	ErrOutlineFailed  = errors.New("outline synthesis failed")
)
