package main

import (
	"math/rand"
	"sort"
	"strings"
)

const noneCluster = "none"

// assignCluster draws one synthetic individual. A single uniform draw is
// compared sequentially against the joint-probability slices (three
// conditions first, then each pair); if none is hit, three independent
// draws decide single-condition membership and the label is the sorted
// underscore join of the conditions hit.
//
// Note the label asymmetry: dedicated joint slices emit fixed labels in
// hypertension→diabetes→cardio order, while co-occurring independent
// singles sort alphabetically (e.g. "diabetes_hypertension"). Consumers
// read only the fixed joint labels; the sorted variants stay in the
// artifact as observed clusters.
func assignCluster(rng *rand.Rand, base BasePrevalences, joint JointPrevalences) string {
	r := rng.Float64()
	threshold := joint.AllThree
	if r < threshold {
		return "hypertension_diabetes_cardio"
	}
	threshold += joint.HypDia
	if r < threshold {
		return "hypertension_diabetes"
	}
	threshold += joint.HypCardio
	if r < threshold {
		return "hypertension_cardio"
	}
	threshold += joint.DiaCardio
	if r < threshold {
		return "diabetes_cardio"
	}

	var flags []string
	if rng.Float64() < base.Hypertension {
		flags = append(flags, "hypertension")
	}
	if rng.Float64() < base.Diabetes {
		flags = append(flags, "diabetes")
	}
	if rng.Float64() < base.Cardio {
		flags = append(flags, "cardio")
	}
	if len(flags) == 0 {
		return noneCluster
	}
	sort.Strings(flags)
	return strings.Join(flags, "_")
}

// clusterCost sums the per-condition costs named in a cluster label.
// The "none" sentinel and unknown condition keys cost 0.
func clusterCost(label string, costs map[string]float64) float64 {
	if label == noneCluster {
		return 0
	}
	var total float64
	for _, key := range strings.Split(label, "_") {
		total += costs[key]
	}
	return total
}

// simulate runs the single-pass population simulation and aggregates the
// cluster tallies. Returns the artifact record plus the raw counts (the
// artifact itself carries only fractions). A zero population yields empty
// maps and zero total cost rather than dividing by zero.
func simulate(rng *rand.Rand, population int64, base BasePrevalences, joint JointPrevalences, costs map[string]float64) (*SimulationResult, map[string]int64) {
	counts := make(map[string]int64)
	for i := int64(0); i < population; i++ {
		counts[assignCluster(rng, base, joint)]++
	}

	result := &SimulationResult{
		Population:      population,
		JointPrevalence: make(map[string]float64, len(counts)),
		AverageCosts:    make(map[string]float64, len(counts)),
	}

	for label, n := range counts {
		cost := clusterCost(label, costs)
		result.JointPrevalence[label] = float64(n) / float64(population)
		result.AverageCosts[label] = cost
		result.TotalCost += float64(n) * cost
	}

	return result, counts
}
