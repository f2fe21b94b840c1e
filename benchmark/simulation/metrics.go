package simulation

import (
	"github.com/discochess/gsea"
)

// Outcome pairs a gene set result with its planted state.
type Outcome struct {
	Replicate int
	Truth     Truth
	Result    gsea.GeneSetResult
}

// Detected reports whether the set is called at the FDR threshold with the
// planted direction. Null sets are detected in either direction.
func (o Outcome) Detected(maxFDR float64) bool {
	if o.Result.FDR > maxFDR {
		return false
	}
	switch o.Truth {
	case Up:
		return o.Result.NES > 0
	case Down:
		return o.Result.NES < 0
	default:
		return true
	}
}

// Outcomes labels every result of a report with its truth.
func Outcomes(r *gsea.Report, truth map[string]Truth, replicate int) []Outcome {
	out := make([]Outcome, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, Outcome{Replicate: replicate, Truth: truth[res.Term], Result: res})
	}
	return out
}

// Split separates planted from null outcomes.
func Split(outcomes []Outcome) (planted, null []Outcome) {
	for _, o := range outcomes {
		if o.Truth == Null {
			null = append(null, o)
		} else {
			planted = append(planted, o)
		}
	}
	return planted, null
}

// PValues returns the nominal p-values of outcomes.
func PValues(outcomes []Outcome) []float64 {
	out := make([]float64, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Result.PValue
	}
	return out
}

// AbsNES returns the absolute normalized scores of outcomes.
func AbsNES(outcomes []Outcome) []float64 {
	out := make([]float64, len(outcomes))
	for i, o := range outcomes {
		v := o.Result.NES
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}
