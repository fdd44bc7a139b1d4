package promo

import (
	"context"
	"fmt"
	"sync"

	"tram-kitchen/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator over code sets loaded at startup.
type validator struct {
	codeSets []CodeSet
	logger   zerolog.Logger
	// No mutex needed - code sets are read-only after initialization
}

// NewValidator creates a new promo code validator. All code files are loaded
// concurrently at initialization time; any load failure is fatal.
func NewValidator(ctx context.Context, filePaths []string, loader Loader, logger zerolog.Logger) (Validator, error) {
	logger = logger.With().Str("component", "promo-validator").Logger()

	logger.Info().
		Int("file_count", len(filePaths)).
		Msg("initialising promo validator")

	v := &validator{
		codeSets: make([]CodeSet, 0, len(filePaths)),
		logger:   logger,
	}

	type loadResult struct {
		index int
		set   CodeSet
		err   error
	}

	resultChan := make(chan loadResult, len(filePaths))
	var wg sync.WaitGroup

	for i, filePath := range filePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(filePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", filePaths[i]).
				Msg("failed to load promo code file")
			return nil, fmt.Errorf("failed to load promo code file %s: %w", filePaths[i], result.err)
		}
		v.codeSets = append(v.codeSets, result.set)
		logger.Info().
			Str("file", filePaths[i]).
			Int("size", result.set.Size()).
			Msg("promo code file loaded")
	}

	return v, nil
}

// Validate checks if a promo code is valid.
// A valid promo code must:
// - Be between 8 and 10 characters in length
// - Appear in at least one configured code file
func (v *validator) Validate(ctx context.Context, code string) error {
	// Validate length first (cheap check)
	if len(code) < 8 || len(code) > 10 {
		v.logger.Debug().
			Str("promo_code", code).
			Int("length", len(code)).
			Msg("promo code length invalid")
		return model.ErrInvalidPromoCode
	}

	for _, set := range v.codeSets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if set.Contains(code) {
			v.logger.Debug().Str("promo_code", code).Msg("promo code validated successfully")
			return nil
		}
	}

	v.logger.Debug().Str("promo_code", code).Msg("promo code not found")
	return model.ErrInvalidPromoCode
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	// Clear code sets to allow GC to reclaim memory
	v.codeSets = nil

	v.logger.Info().Msg("promo validator closed")

	return nil
}
