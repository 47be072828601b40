package main

// SimulationResult is the artifact emitted after a run, consumed by the
// savings projector's Monte Carlo input path. Cluster labels are
// underscore-joined condition keys, plus the "none" sentinel.
type SimulationResult struct {
	Population      int64              `json:"population"`
	JointPrevalence map[string]float64 `json:"joint_prevalence"`
	AverageCosts    map[string]float64 `json:"average_costs"`
	TotalCost       float64            `json:"total_cost"`
}

// BasePrevalences are the independent single-condition probabilities used
// when an individual falls outside every dedicated joint slice.
type BasePrevalences struct {
	Hypertension float64
	Diabetes     float64
	Cardio       float64
}

// JointPrevalences are the dedicated joint-cluster probability slices.
// Each consumes a disjoint interval of [0,1); slices that push the
// cumulative total past 1 silently starve the branches after them.
type JointPrevalences struct {
	HypDia    float64
	HypCardio float64
	DiaCardio float64
	AllThree  float64
}

// defaultCosts is the annual monetized cost per condition key.
func defaultCosts() map[string]float64 {
	return map[string]float64{
		"hypertension": 2000,
		"diabetes":     12000,
		"cardio":       30000,
	}
}

// ClusterRow is the Parquet projection of one cluster tally.
type ClusterRow struct {
	Label      string  `parquet:"label"`
	Count      int64   `parquet:"count"`
	Prevalence float64 `parquet:"prevalence"`
	Cost       float64 `parquet:"cost"`
}
