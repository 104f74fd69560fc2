package ga

import (
	"encoding/json"

	"connect6engine/eval"
	"connect6engine/pvs"
)

// Export is the portable record written after a tuning run: a weight
// vector plus the search configuration it was tuned under.
type Export struct {
	Name       string               `json:"name"`
	ExportedAt string               `json:"exportedAt"`
	Weights    eval.EvaluationWeights `json:"weights"`
	Search     pvs.Config           `json:"searchConfig"`
	Note       string               `json:"note"`
}

// Marshal renders an Export as indented JSON.
func Marshal(e Export) ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Unmarshal parses an Export, setting only the fields present in data;
// absent fields keep their zero values, matching the "re-ingestion
// sets only the listed fields" rule.
func Unmarshal(data []byte) (Export, error) {
	var e Export
	err := json.Unmarshal(data, &e)
	return e, err
}
