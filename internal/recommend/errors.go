// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrDataUnavailable covers a missing or unloadable bundle and an empty corpus
	// where a corpus mean is required.
	ErrDataUnavailable = errors.New("recommendation data unavailable")

	// ErrRequiredCategoryUnresolved means top, bottom, or shoes ended up empty.
	ErrRequiredCategoryUnresolved = errors.New("required category unresolved")

	// ErrCandidateVectorization marks a candidate excluded from scoring.
	ErrCandidateVectorization = errors.New("candidate vectorization skipped")
)

// DataUnavailableError reports missing bundle or corpus data.
type DataUnavailableError struct {
	Reason string
	Cause  error
}

// NewDataUnavailableError creates a DataUnavailableError.
func NewDataUnavailableError(reason string, cause error) *DataUnavailableError {
	return &DataUnavailableError{Reason: reason, Cause: cause}
}

// Error implements the error interface.
func (e *DataUnavailableError) Error() string {
	if e.Cause != nil {
		return ErrDataUnavailable.Error() + ": " + e.Reason + ": " + e.Cause.Error()
	}
	return ErrDataUnavailable.Error() + ": " + e.Reason
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *DataUnavailableError) Unwrap() error {
	return e.Cause
}

// Is matches ErrDataUnavailable.
func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

// RequiredCategoryUnresolvedError reports a required slot left empty.
type RequiredCategoryUnresolvedError struct {
	Category Category

	// Offered is the size of the candidate pool for the slot.
	Offered int

	// Skipped is how many of those candidates could not be vectorized.
	Skipped int
}

// Error implements the error interface.
func (e *RequiredCategoryUnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s (offered=%d, skipped=%d)",
		ErrRequiredCategoryUnresolved, e.Category, e.Offered, e.Skipped)
}

// Is matches ErrRequiredCategoryUnresolved.
func (e *RequiredCategoryUnresolvedError) Is(target error) bool {
	return target == ErrRequiredCategoryUnresolved
}

// CandidateSkip records a candidate excluded from scoring.
// Skips are returned with the result and logged; they never fail a request on their own.
type CandidateSkip struct {
	Category   Category `json:"category"`
	ItemID     int      `json:"item_id"`
	Descriptor string   `json:"descriptor"`
	Reason     string   `json:"reason"`
}

// Error implements the error interface so a skip can be logged with Err.
func (s CandidateSkip) Error() string {
	return fmt.Sprintf("%s: %s item %d: %s", ErrCandidateVectorization, s.Category, s.ItemID, s.Reason)
}

// Is matches ErrCandidateVectorization.
func (s CandidateSkip) Is(target error) bool {
	return target == ErrCandidateVectorization
}
