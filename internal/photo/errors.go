package photo

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrDecode            = errors.New("Failed to load image")
	ErrRead              = errors.New("Failed to read file")
	ErrSizeLimitExceeded = errors.New("image exceeds size limit")
)

// ValidationError is returned by Validate with a message fit for the reporter.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// SizeLimitError means the image stayed over the budget at the floor quality.
type SizeLimitError struct {
	LimitKB float64
	// Attempts lists every JPEG quality tried, in percent.
	Attempts []int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("Could not compress image below %sKB. Try a smaller image or lower quality.",
		strconv.FormatFloat(e.LimitKB, 'f', -1, 64))
}

func (e *SizeLimitError) Is(target error) bool {
	return target == ErrSizeLimitExceeded
}
