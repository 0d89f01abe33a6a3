package models

// Entities holds the entity lists extracted by the classification stage.
type Entities struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Money         []string `json:"money"`
	Dates         []string `json:"dates"`
}

// DocumentContext is the ephemeral per-decision fact record built from a
// classification result. It exists only for the duration of one routing
// decision and is never persisted.
type DocumentContext struct {
	DocType    string
	Confidence float64
	Priority   int
	RiskScore  float64
	Entities   Entities
}

// Fields projects the context into the flat field map evaluated against
// rule conditions. Entity lists are exposed both under "entities" and as
// the flattened persons/organizations/amounts/dates keys.
func (c *DocumentContext) Fields() map[string]any {
	return map[string]any{
		"doc_type":   c.DocType,
		"confidence": c.Confidence,
		"priority":   c.Priority,
		"risk_score": c.RiskScore,
		"entities": map[string]any{
			"persons":       c.Entities.Persons,
			"organizations": c.Entities.Organizations,
			"money":         c.Entities.Money,
			"dates":         c.Entities.Dates,
		},
		"persons":       c.Entities.Persons,
		"organizations": c.Entities.Organizations,
		"amounts":       c.Entities.Money,
		"dates":         c.Entities.Dates,
	}
}
