package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArtifactFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monte_carlo_results.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadMonteCarloArtifact(t *testing.T) {
	path := writeArtifactFile(t, `{
		"population": 1000000,
		"joint_prevalence": {
			"hypertension": 0.21,
			"diabetes": 0.09,
			"cardio": 0.05,
			"hypertension_diabetes": 0.12,
			"hypertension_cardio": 0.08,
			"diabetes_cardio": 0.05,
			"hypertension_diabetes_cardio": 0.03,
			"none": 0.30
		},
		"average_costs": {
			"hypertension": 2000,
			"hypertension_diabetes_cardio": 44000,
			"none": 0
		},
		"total_cost": 8654000000
	}`)

	mc, err := ReadMonteCarloArtifact(path)
	if err != nil {
		t.Fatalf("ReadMonteCarloArtifact: %v", err)
	}

	if mc.Population != 1000000 {
		t.Errorf("population = %d, want 1000000", mc.Population)
	}
	if got := mc.JointPrevalence["hypertension"]; got != 0.21 {
		t.Errorf("hypertension prevalence = %v, want 0.21", got)
	}
	if got := mc.JointPrevalence["hypertension_diabetes_cardio"]; got != 0.03 {
		t.Errorf("all-three prevalence = %v, want 0.03", got)
	}
	if got := mc.AverageCosts["hypertension_diabetes_cardio"]; got != 44000 {
		t.Errorf("all-three cost = %v, want 44000", got)
	}
	if mc.TotalCost != 8654000000 {
		t.Errorf("total cost = %v, want 8654000000", mc.TotalCost)
	}
}

func TestReadMonteCarloArtifactSkipsUnknownFields(t *testing.T) {
	path := writeArtifactFile(t, `{
		"schema_version": "1.2",
		"metadata": {"tool": "mcsim", "nested": [1, 2, 3]},
		"population": 500,
		"total_cost": 12.5
	}`)

	mc, err := ReadMonteCarloArtifact(path)
	if err != nil {
		t.Fatalf("ReadMonteCarloArtifact: %v", err)
	}
	if mc.Population != 500 {
		t.Errorf("population = %d, want 500", mc.Population)
	}
	if mc.TotalCost != 12.5 {
		t.Errorf("total cost = %v, want 12.5", mc.TotalCost)
	}
}

func TestReadMonteCarloArtifactBOM(t *testing.T) {
	path := writeArtifactFile(t, "\xEF\xBB\xBF{\"population\": 42}")

	mc, err := ReadMonteCarloArtifact(path)
	if err != nil {
		t.Fatalf("ReadMonteCarloArtifact: %v", err)
	}
	if mc.Population != 42 {
		t.Errorf("population = %d, want 42", mc.Population)
	}
}

// Malformed values degrade to zero instead of halting the run.
func TestReadMonteCarloArtifactMalformedValue(t *testing.T) {
	path := writeArtifactFile(t, `{
		"joint_prevalence": {"hypertension": "oops", "diabetes": "0.15"}
	}`)

	mc, err := ReadMonteCarloArtifact(path)
	if err != nil {
		t.Fatalf("ReadMonteCarloArtifact: %v", err)
	}
	if got := mc.JointPrevalence["hypertension"]; got != 0 {
		t.Errorf("malformed value = %v, want 0", got)
	}
	// Quoted numbers still parse.
	if got := mc.JointPrevalence["diabetes"]; got != 0.15 {
		t.Errorf("quoted value = %v, want 0.15", got)
	}
}

func TestReadMonteCarloArtifactMissingFile(t *testing.T) {
	_, err := ReadMonteCarloArtifact("/nonexistent/results.json")
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestReadMonteCarloArtifactNotJSON(t *testing.T) {
	path := writeArtifactFile(t, "population,cost\n100,200\n")
	_, err := ReadMonteCarloArtifact(path)
	if err == nil {
		t.Fatal("expected error for non-JSON artifact")
	}
}

func TestProfileFromArtifact(t *testing.T) {
	mc := &MonteCarloResult{
		JointPrevalence: map[string]float64{
			"hypertension":                 0.21,
			"diabetes":                     0.09,
			"cardio":                       0.05,
			"hypertension_diabetes":        0.12,
			"hypertension_cardio":          0.08,
			"diabetes_cardio":              0.05,
			"hypertension_diabetes_cardio": 0.03,
		},
	}

	profile, joint := profileFromArtifact(mc)

	if got := profile[Hypertension]; got != 0.21 {
		t.Errorf("hypertension = %v, want 0.21", got)
	}
	if got := profile[Diabetes]; got != 0.09 {
		t.Errorf("diabetes = %v, want 0.09", got)
	}
	if got := profile[Cardiovascular]; got != 0.05 {
		t.Errorf("cardio = %v, want 0.05", got)
	}
	// Depression is not modeled by the sampler; fixed assumption applies.
	if got := profile[Depression]; got != depressionDefault {
		t.Errorf("depression = %v, want %v", got, depressionDefault)
	}

	if len(joint) != 4 {
		t.Fatalf("joint clusters = %d, want 4", len(joint))
	}
	wantFractions := map[string]float64{
		"hypertension_diabetes":        0.12,
		"hypertension_cardio":          0.08,
		"diabetes_cardio":              0.05,
		"hypertension_diabetes_cardio": 0.03,
	}
	for _, jc := range joint {
		want, ok := wantFractions[jc.Label()]
		if !ok {
			t.Errorf("unexpected cluster %q", jc.Label())
			continue
		}
		if jc.Fraction != want {
			t.Errorf("cluster %q fraction = %v, want %v", jc.Label(), jc.Fraction, want)
		}
	}
}

// Keys absent from the artifact read as zero.
func TestProfileFromArtifactMissingKeys(t *testing.T) {
	mc := &MonteCarloResult{JointPrevalence: map[string]float64{}}

	profile, joint := profileFromArtifact(mc)

	for _, c := range []Condition{Hypertension, Diabetes, Cardiovascular} {
		if got := profile[c]; got != 0 {
			t.Errorf("%s = %v, want 0", c, got)
		}
	}
	if got := profile[Depression]; got != depressionDefault {
		t.Errorf("depression = %v, want %v", got, depressionDefault)
	}
	for _, jc := range joint {
		if jc.Fraction != 0 {
			t.Errorf("cluster %q fraction = %v, want 0", jc.Label(), jc.Fraction)
		}
	}
}
