package gsea

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Mode selects the kind of analysis.
type Mode string

const (
	// ModeGSEA ranks an expression matrix by a two-class statistic.
	ModeGSEA Mode = "gsea"
	// ModePrerank scores a caller-supplied ranking.
	ModePrerank Mode = "prerank"
	// ModeSingleSample scores one sample's expression with a summed running sum.
	ModeSingleSample Mode = "ssgsea"
)

// PermutationType selects how null distributions are built.
type PermutationType string

const (
	// PermutePhenotype shuffles class labels and re-ranks.
	PermutePhenotype PermutationType = "phenotype"
	// PermuteGeneSet shuffles gene set membership against a fixed ranking.
	PermuteGeneSet PermutationType = "gene_set"
)

// Config holds the parameters of one run.
type Config struct {
	Mode Mode `yaml:"mode" validate:"omitempty,oneof=gsea prerank ssgsea"`
	// Method names the ranking statistic for ModeGSEA.
	Method          string          `yaml:"method" validate:"omitempty,oneof=signal_to_noise t_test ratio_of_classes diff_of_classes log2_ratio_of_classes"`
	PermutationType PermutationType `yaml:"permutation_type" validate:"omitempty,oneof=phenotype gene_set"`
	// WeightedScoreType is the exponent p of the tag weight |c|^p.
	// 0 scores every hit equally.
	WeightedScoreType float64 `yaml:"weighted_score_type" validate:"gte=0"`
	Permutations      int     `yaml:"permutations" validate:"gte=0"`
	// Seed makes Source deterministic. Nil seeds from entropy.
	Seed      *int64 `yaml:"seed"`
	Ascending bool   `yaml:"ascending"`
	// Scale divides single-sample scores by the number of genes.
	Scale bool `yaml:"scale"`
}

// DefaultConfig returns the conventional GSEA parameters.
func DefaultConfig() Config {
	return Config{
		Mode:              ModeGSEA,
		Method:            "signal_to_noise",
		PermutationType:   PermutePhenotype,
		WeightedScoreType: 1,
		Permutations:      1000,
	}
}

// withDefaults fills unset enumerations.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.PermutationType == "" {
		c.PermutationType = d.PermutationType
	}
	return c
}

// Source returns a new random source built from Seed.
func (c Config) Source() *Source {
	if c.Seed == nil {
		return NewRandomSource()
	}
	return NewSource(*c.Seed)
}

var validate = validator.New()

// Validate checks every field. Failures wrap ErrInvalidParameter.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidParameter, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q must be one of: %s", e.Field(), e.Value(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
