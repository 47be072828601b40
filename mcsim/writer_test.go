package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func sampleResult() (*SimulationResult, map[string]int64) {
	counts := map[string]int64{
		"hypertension":          300,
		"hypertension_diabetes": 120,
		"diabetes_hypertension": 15,
		noneCluster:             565,
	}
	result := &SimulationResult{
		Population:      1000,
		JointPrevalence: map[string]float64{},
		AverageCosts:    map[string]float64{},
	}
	for label, n := range counts {
		cost := clusterCost(label, defaultCosts())
		result.JointPrevalence[label] = float64(n) / 1000
		result.AverageCosts[label] = cost
		result.TotalCost += float64(n) * cost
	}
	return result, counts
}

func TestWriteArtifactRoundTrip(t *testing.T) {
	result, _ := sampleResult()
	path := filepath.Join(t.TempDir(), "monte_carlo_results.json")

	if err := writeArtifact(path, result); err != nil {
		t.Fatalf("writeArtifact: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}

	var decoded SimulationResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding artifact: %v", err)
	}

	if decoded.Population != result.Population {
		t.Errorf("population = %d, want %d", decoded.Population, result.Population)
	}
	if decoded.TotalCost != result.TotalCost {
		t.Errorf("total cost = %v, want %v", decoded.TotalCost, result.TotalCost)
	}
	if len(decoded.JointPrevalence) != len(result.JointPrevalence) {
		t.Fatalf("prevalence clusters = %d, want %d", len(decoded.JointPrevalence), len(result.JointPrevalence))
	}
	for label, want := range result.JointPrevalence {
		if got := decoded.JointPrevalence[label]; got != want {
			t.Errorf("cluster %q prevalence = %v, want %v", label, got, want)
		}
	}
	for label, want := range result.AverageCosts {
		if got := decoded.AverageCosts[label]; got != want {
			t.Errorf("cluster %q cost = %v, want %v", label, got, want)
		}
	}
}

func TestClusterRowsSorted(t *testing.T) {
	result, counts := sampleResult()

	rows := clusterRows(result, counts)

	if len(rows) != len(counts) {
		t.Fatalf("rows = %d, want %d", len(rows), len(counts))
	}
	if !sort.SliceIsSorted(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label }) {
		t.Errorf("rows not sorted by label: %v", rows)
	}
	for _, row := range rows {
		if row.Count != counts[row.Label] {
			t.Errorf("cluster %q count = %d, want %d", row.Label, row.Count, counts[row.Label])
		}
		if row.Prevalence != result.JointPrevalence[row.Label] {
			t.Errorf("cluster %q prevalence = %v, want %v", row.Label, row.Prevalence, result.JointPrevalence[row.Label])
		}
		if row.Cost != result.AverageCosts[row.Label] {
			t.Errorf("cluster %q cost = %v, want %v", row.Label, row.Cost, result.AverageCosts[row.Label])
		}
	}
}

func readClusterRows(t *testing.T, path string) []ClusterRow {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[ClusterRow](f)
	defer reader.Close()

	rows := make([]ClusterRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		t.Fatalf("read parquet: %v", err)
	}
	return rows[:n]
}

func TestWriteClusterParquetRoundTrip(t *testing.T) {
	result, counts := sampleResult()
	path := filepath.Join(t.TempDir(), "clusters.parquet")

	if err := writeClusterParquet(path, result, counts); err != nil {
		t.Fatalf("writeClusterParquet: %v", err)
	}

	got := readClusterRows(t, path)
	want := clusterRows(result, counts)

	if len(got) != len(want) {
		t.Fatalf("rows read = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
