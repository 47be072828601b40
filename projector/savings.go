package main

import "math"

// discountedValue shrinks v to present value at the given annual rate.
// A zero rate degenerates to the identity.
func discountedValue(v float64, year int, rate float64) float64 {
	return v / math.Pow(1+rate, float64(year))
}

// meanRiskReduction averages the risk reduction across all conditions.
// Joint clusters use this blended figure rather than per-condition values.
func meanRiskReduction() float64 {
	var sum float64
	for _, c := range conditions {
		sum += riskReduction[c]
	}
	return sum / float64(len(conditions))
}

// computeSavings runs the 20-year discounted cash-flow projection and
// returns the total NPV plus the per-year series. Pure function of its
// inputs; performs no I/O.
//
// The incrementally treated stratum is fixed across all years:
// population × prevalence × (target − current) × adherence. Each year's
// cost avoided sums the single-condition reductions plus the joint-cluster
// adjustment; treatment cost is the annual cost plus the one-time
// diagnosis cost in year 1. Everything is discounted before netting.
func computeSavings(p ModelParameters, profile ComorbidityProfile, joint []JointCluster) (float64, []AnnualRecord) {
	newlyTreated := float64(p.Population) * p.OSAPrevalence *
		(p.TargetDiagnosisRate - p.CurrentDiagnosisRate) * p.TreatmentAdherence

	meanRR := meanRiskReduction()

	var total float64
	series := make([]AnnualRecord, 0, projectionYears)

	for year := 1; year <= projectionYears; year++ {
		var avoided float64

		for _, c := range conditions {
			reduced := newlyTreated * profile[c] * riskReduction[c] * comorbidityCosts[c]
			avoided += discountedValue(reduced, year, p.DiscountRate)
		}

		for _, jc := range joint {
			reduced := newlyTreated * jc.Fraction * jc.CombinedCost() * meanRR
			avoided += discountedValue(reduced, year, p.DiscountRate)
		}

		treatment := newlyTreated * p.AnnualTreatmentCost
		if year == 1 {
			treatment += newlyTreated * p.DiagnosisCost
		}
		treatment = discountedValue(treatment, year, p.DiscountRate)

		net := avoided - treatment
		total += net

		series = append(series, AnnualRecord{
			Year:          year,
			CostAvoided:   avoided,
			TreatmentCost: treatment,
			NetSavings:    net,
		})
	}

	return total, series
}
