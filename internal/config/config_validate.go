// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package config

import (
	"fmt"

	"github.com/tomtom215/closetmate/internal/validation"
)

// Validate checks field ranges with struct tags, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.Hyperparameters().Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}
	if err := c.SkipGramConfig().Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}
	return nil
}
