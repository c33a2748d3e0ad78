package advisor

import (
	"fmt"
	"strings"

	"cropwatch/entities"
	"cropwatch/pkg/vegetation"
)

type mock struct{}

// NewMock builds advisory text straight from the diagnosis, no external call.
func NewMock() Client { return &mock{} }

func (m *mock) Advise(f *entities.Field, eval entities.HealthEvaluation, diag vegetation.Diagnosis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: overall condition %s.", f.Name, diag.Overall)
	if len(diag.Issues) > 0 {
		fmt.Fprintf(&b, " Observed: %s.", strings.Join(diag.Issues, "; "))
	}
	if len(diag.Actions) > 0 {
		fmt.Fprintf(&b, " Suggested next steps: %s.", strings.Join(diag.Actions, "; "))
	} else {
		b.WriteString(" No action needed; keep the regular monitoring schedule.")
	}
	return b.String()
}
