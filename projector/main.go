package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
)

func main() {
	population := flag.Int("pop", 100000, "Modeled population size")
	prevalence := flag.Float64("prevalence", 0.25, "OSA prevalence (fraction)")
	currentRate := flag.Float64("current", 0.20, "Current diagnosis rate (fraction)")
	targetRate := flag.Float64("target", 0.50, "Target diagnosis rate (fraction)")
	adherence := flag.Float64("adherence", 0.60, "Treatment adherence (fraction)")
	diagnosisCost := flag.Float64("diagnosis-cost", 1000, "One-time diagnosis cost ($)")
	treatmentCost := flag.Float64("treatment-cost", 1500, "Annual treatment cost ($)")
	discountRate := flag.Float64("discount", 0.03, "Annual discount rate (fraction)")

	mcFile := flag.String("mc", "", "Monte Carlo artifact JSON (replaces manual comorbidity entry)")

	hypertension := flag.Float64("hypertension", 0.30, "Hypertension prevalence (manual entry)")
	diabetes := flag.Float64("diabetes", 0.15, "Diabetes prevalence (manual entry)")
	cardio := flag.Float64("cardio", 0.10, "Cardiovascular event prevalence (manual entry)")
	depression := flag.Float64("depression", 0.25, "Depression prevalence (manual entry)")
	hypDia := flag.Float64("hyp-dia", 0.12, "Hypertension + Diabetes joint fraction (manual entry)")
	hypCardio := flag.Float64("hyp-cardio", 0.08, "Hypertension + Cardio joint fraction (manual entry)")
	diaCardio := flag.Float64("dia-cardio", 0.05, "Diabetes + Cardio joint fraction (manual entry)")
	allThree := flag.Float64("all-three", 0.03, "Hypertension + Diabetes + Cardio joint fraction (manual entry)")

	parquetOut := flag.String("out", "", "Write the annual series to a Parquet file")
	pgConn := flag.String("pg", "", "PostgreSQL connection string (store the run)")
	initSchema := flag.Bool("init", false, "Initialize database schema before storing")

	flag.Parse()

	params := ModelParameters{
		Population:           *population,
		OSAPrevalence:        *prevalence,
		CurrentDiagnosisRate: *currentRate,
		TargetDiagnosisRate:  *targetRate,
		TreatmentAdherence:   *adherence,
		DiagnosisCost:        *diagnosisCost,
		AnnualTreatmentCost:  *treatmentCost,
		DiscountRate:         *discountRate,
	}

	var profile ComorbidityProfile
	var joint []JointCluster

	if *mcFile != "" {
		mc, err := ReadMonteCarloArtifact(*mcFile)
		if err != nil {
			log.Fatalf("Monte Carlo artifact required but unusable: %v", err)
		}
		log.Printf("Loaded Monte Carlo artifact: population %d, %d clusters",
			mc.Population, len(mc.JointPrevalence))
		profile, joint = profileFromArtifact(mc)
	} else {
		profile = ComorbidityProfile{
			Hypertension:   *hypertension,
			Diabetes:       *diabetes,
			Cardiovascular: *cardio,
			Depression:     *depression,
		}
		joint = []JointCluster{
			{Conditions: []Condition{Hypertension, Diabetes}, Fraction: *hypDia},
			{Conditions: []Condition{Hypertension, Cardiovascular}, Fraction: *hypCardio},
			{Conditions: []Condition{Diabetes, Cardiovascular}, Fraction: *diaCardio},
			{Conditions: []Condition{Hypertension, Diabetes, Cardiovascular}, Fraction: *allThree},
		}
	}

	total, series := computeSavings(params, profile, joint)

	fmt.Printf("Total NPV savings over %d years: %s\n", projectionYears, formatMoney(total))
	fmt.Printf("Modeled population: %d members\n\n", params.Population)
	printSeries(os.Stdout, series)

	if *parquetOut != "" {
		if err := writeSeriesParquet(*parquetOut, series); err != nil {
			log.Fatalf("Failed to write Parquet: %v", err)
		}
		log.Printf("Wrote annual series to %s", *parquetOut)
	}

	if *pgConn != "" {
		ctx := context.Background()
		pool, err := connectPool(ctx, *pgConn, *initSchema)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		runID, err := storeRun(ctx, pool, params, total, series)
		if err != nil {
			log.Fatalf("Failed to store run: %v", err)
		}
		log.Printf("Stored model run with ID: %d", runID)
	}
}

// printSeries renders the annual breakdown table with a derived cumulative
// net savings column.
func printSeries(w *os.File, series []AnnualRecord) {
	fmt.Fprintf(w, "%4s  %16s  %16s  %16s  %16s\n",
		"Year", "Cost Avoided", "Treatment Cost", "Net Savings", "Cumulative")
	var cumulative float64
	for _, rec := range series {
		cumulative += rec.NetSavings
		fmt.Fprintf(w, "%4d  %16s  %16s  %16s  %16s\n",
			rec.Year,
			formatMoney(rec.CostAvoided),
			formatMoney(rec.TreatmentCost),
			formatMoney(rec.NetSavings),
			formatMoney(cumulative))
	}
}

// formatMoney renders a dollar amount with thousands separators and no
// decimals, e.g. -1234567.8 → "-$1,234,568".
func formatMoney(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))

	s := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}

	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
