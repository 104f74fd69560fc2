package ga

import (
	"testing"

	"connect6engine/eval"
	"connect6engine/pvs"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	e := Export{
		Name:       "gen-10-champion",
		ExportedAt: "2026-07-30T00:00:00Z",
		Weights:    eval.EvaluationWeights{Road3: 100, Road4: 350, Live4: 3000, Live5: 10000, VCDTBonus: 1500},
		Search:     pvs.Config{MaxDepth: 4, TimeLimitMs: 2000},
		Note:       "tuned over 10 generations",
	}
	data, err := Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got != e {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, e)
	}
}

func TestUnmarshalOnlySetsListedFields(t *testing.T) {
	data := []byte(`{"name": "partial", "weights": {"Road3": 90}}`)
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Name != "partial" {
		t.Fatalf("expected name to be set, got %q", got.Name)
	}
	if got.Weights.Road3 != 90 {
		t.Fatalf("expected Road3 = 90, got %v", got.Weights.Road3)
	}
	if got.Weights.Live4 != 0 {
		t.Fatalf("expected unset fields to stay zero, got Live4 = %v", got.Weights.Live4)
	}
	if got.Note != "" {
		t.Fatalf("expected Note to stay zero, got %q", got.Note)
	}
}
