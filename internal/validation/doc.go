// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata on first use and is safe for concurrent use.
//
// # Quick Start
//
//	type TrainingConfig struct {
//	    SentenceDim int     `validate:"required,min=1,max=1024"`
//	    ColorWeight float64 `validate:"gte=0,lte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid training config: %w", verr)
//	}
//
// # Custom Tags
//
//   - loglevel: one of trace, debug, info, warn, warning, error, fatal, panic, disabled
//
// # Error Messages
//
// Field errors are translated to short sentences ("SentenceDim must be at
// least 1") and joined with "; " in RequestValidationError.Error.
package validation
