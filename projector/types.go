package main

import "strings"

// Condition identifies one of the comorbid conditions tracked by the model.
type Condition int

const (
	Hypertension Condition = iota
	Diabetes
	Cardiovascular
	Depression
)

// conditions in a fixed iteration order, so output is deterministic.
var conditions = [...]Condition{Hypertension, Diabetes, Cardiovascular, Depression}

var conditionNames = [...]string{
	"Hypertension",
	"Diabetes",
	"Cardiovascular Event",
	"Depression",
}

// Artifact keys used by the Monte Carlo sampler for single conditions.
var conditionKeys = [...]string{
	"hypertension",
	"diabetes",
	"cardio",
	"depression",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "unknown"
}

// Key returns the lowercase artifact key for the condition.
func (c Condition) Key() string {
	if int(c) < len(conditionKeys) {
		return conditionKeys[c]
	}
	return "unknown"
}

// comorbidityCosts is the annual monetized cost of each adverse event.
var comorbidityCosts = map[Condition]float64{
	Hypertension:   2000,
	Diabetes:       12000,
	Cardiovascular: 30000,
	Depression:     5000,
}

// riskReduction is the fractional risk reduction attributable to adherent
// OSA treatment, per condition.
var riskReduction = map[Condition]float64{
	Hypertension:   0.40,
	Diabetes:       0.25,
	Cardiovascular: 0.50,
	Depression:     0.30,
}

const projectionYears = 20

// ModelParameters are the population and rate assumptions for one run.
// Constructed once per computation and never mutated. Fractions are
// expected in [0,1] but not validated; out-of-range values compute
// through (a target below current yields negative savings, not an error).
type ModelParameters struct {
	Population           int
	OSAPrevalence        float64
	CurrentDiagnosisRate float64
	TargetDiagnosisRate  float64
	TreatmentAdherence   float64
	DiagnosisCost        float64
	AnnualTreatmentCost  float64
	DiscountRate         float64
}

// ComorbidityProfile maps each condition to its prevalence among patients
// with the primary condition. Conditions are independent, not mutually
// exclusive; the values need not sum to 1. A missing condition reads as 0.
type ComorbidityProfile map[Condition]float64

// JointCluster is a combination of simultaneously present conditions with
// its observed joint fraction. The member set is explicit; nothing parses
// condition names back out of a label string.
//
// Cluster savings are added on top of the single-condition savings, so an
// individual in a joint cluster is also counted under each single
// condition. That double counting matches the upstream model and is kept
// deliberately.
type JointCluster struct {
	Conditions []Condition
	Fraction   float64
}

// Label returns the underscore-joined artifact key for the cluster,
// e.g. "hypertension_diabetes_cardio".
func (jc JointCluster) Label() string {
	keys := make([]string, len(jc.Conditions))
	for i, c := range jc.Conditions {
		keys[i] = c.Key()
	}
	return strings.Join(keys, "_")
}

// CombinedCost sums the per-condition costs of the cluster's members.
func (jc JointCluster) CombinedCost() float64 {
	var total float64
	for _, c := range jc.Conditions {
		total += comorbidityCosts[c]
	}
	return total
}

// AnnualRecord is one projected year. All monetary values are discounted
// to present value. Records are immutable once computed and ordered by year.
type AnnualRecord struct {
	Year          int
	CostAvoided   float64
	TreatmentCost float64
	NetSavings    float64
}
