// SPDX-License-Identifier: MIT

package ga

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults used by DefaultConfig.
const (
	DefaultPopulationSize     = 500
	DefaultMutationRate       = 0.1
	DefaultTournamentSize     = 5
	DefaultMaxGenerations     = 1500
	DefaultGenerationInterval = 50 * time.Millisecond
)

// Config holds the tunables of one run. It is immutable for the run's
// lifetime once Start accepted it.
type Config struct {
	// PopulationSize is the fixed number of tours per generation.
	PopulationSize int `json:"populationSize" validate:"gte=2"`
	// MutationRate is the probability that one swap is applied to a child.
	MutationRate float64 `json:"mutationRate" validate:"gte=0,lte=1"`
	// TournamentSize is the number of draws per selection; larger values
	// raise selection pressure. Values above PopulationSize are valid.
	TournamentSize int `json:"tournamentSize" validate:"gte=1"`
	// MaxGenerations terminates the run with ReasonMaxGenerations.
	MaxGenerations int `json:"maxGenerations" validate:"gte=1"`
	// GenerationInterval is the wall-clock cadence a Driver ticks at. It is
	// decoupled from how long a generation takes to compute.
	GenerationInterval time.Duration `json:"generationInterval" validate:"gte=0s"`
	// Seed selects the random stream; 0 maps to tour.DefaultSeed.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:     DefaultPopulationSize,
		MutationRate:       DefaultMutationRate,
		TournamentSize:     DefaultTournamentSize,
		MaxGenerations:     DefaultMaxGenerations,
		GenerationInterval: DefaultGenerationInterval,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every bound and reports the first violation wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s violates %s=%s (got %v)",
			ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
