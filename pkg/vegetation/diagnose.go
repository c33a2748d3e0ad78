package vegetation

import "cropwatch/entities"

// Diagnosis is the rule-based assessment built from the per-index statuses.
// It coexists with AggregateSimpleStatus on purpose: the simple average
// feeds the per-result badge, the diagnosis feeds issues and actions.
type Diagnosis struct {
	Overall entities.HealthStatus `json:"overall"`
	Issues  []string              `json:"issues"`
	Actions []string              `json:"actions"`
}

// Diagnose applies the agronomic rule set. Overall is good only when every
// index is good; poor when vegetation is poor, or moisture and nutrition are
// both poor; moderate otherwise. Issues and actions accumulate from
// independent per-index rules.
func Diagnose(ndvi, ndmi, ndre entities.HealthStatus) Diagnosis {
	d := Diagnosis{Issues: []string{}, Actions: []string{}}

	if ndvi == entities.StatusPoor {
		d.Issues = append(d.Issues, "low vegetation vigor")
		d.Actions = append(d.Actions, "inspect the field for stress, pests or damage")
	}

	switch ndmi {
	case entities.StatusPoor:
		d.Issues = append(d.Issues, "water stress")
		d.Actions = append(d.Actions, "consider irrigation")
	case entities.StatusModerate:
		if ndvi != entities.StatusGood {
			d.Actions = append(d.Actions, "review water management")
		}
	}

	switch ndre {
	case entities.StatusPoor:
		d.Issues = append(d.Issues, "possible nitrogen deficiency")
		d.Actions = append(d.Actions, "consider nitrogen fertilization")
	case entities.StatusModerate:
		if ndvi != entities.StatusGood {
			d.Actions = append(d.Actions, "review the fertilization plan")
		}
	}

	switch {
	case ndvi == entities.StatusGood && ndmi == entities.StatusGood && ndre == entities.StatusGood:
		d.Overall = entities.StatusGood
	case ndvi == entities.StatusPoor,
		ndmi == entities.StatusPoor && ndre == entities.StatusPoor:
		d.Overall = entities.StatusPoor
	default:
		d.Overall = entities.StatusModerate
	}
	return d
}
