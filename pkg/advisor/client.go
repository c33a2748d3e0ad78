// Package advisor renders the free-form advisory text attached to an
// analysis snapshot. The implementation is chosen once at construction:
// an OpenAI-compatible endpoint when configured, the deterministic mock
// otherwise.
package advisor

import (
	"cropwatch/entities"
	"cropwatch/pkg/vegetation"
)

type Client interface {
	Advise(f *entities.Field, eval entities.HealthEvaluation, diag vegetation.Diagnosis) string
}
