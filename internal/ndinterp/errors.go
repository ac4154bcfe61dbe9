package ndinterp

import "errors"

var (
	// ErrInsufficientPoints is returned by the linear method for fewer than two
	// calibration points.
	ErrInsufficientPoints = errors.New("not enough points for interpolation")
	// ErrSingularSystem is returned when the least squares solve yields no
	// usable coefficients.
	ErrSingularSystem = errors.New("failed to solve the linear system using SVD")
	// ErrEmptyDataset is returned by the nearest method for an empty dataset.
	ErrEmptyDataset = errors.New("no points available for interpolation")
	// ErrDimensionMismatch is returned when calibration points or targets
	// disagree on their number of coordinates.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnknownMethod     = errors.New("unknown interpolation method")
)
