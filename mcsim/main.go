package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"
)

func main() {
	population := flag.Int64("n", 1_000_000, "Number of synthetic individuals")

	hyp := flag.Float64("hyp", 0.30, "Hypertension base prevalence")
	dia := flag.Float64("dia", 0.15, "Diabetes base prevalence")
	cardio := flag.Float64("cardio", 0.10, "Cardiovascular base prevalence")

	hypDia := flag.Float64("hyp-dia", 0.12, "Hypertension + Diabetes joint probability")
	hypCardio := flag.Float64("hyp-cardio", 0.08, "Hypertension + Cardio joint probability")
	diaCardio := flag.Float64("dia-cardio", 0.05, "Diabetes + Cardio joint probability")
	allThree := flag.Float64("all-three", 0.03, "Three-condition joint probability")

	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outFile := flag.String("out", "monte_carlo_results.json", "Output artifact path")
	parquetOut := flag.String("parquet", "", "Also write cluster tallies to a Parquet file")
	pgConn := flag.String("pg", "", "PostgreSQL connection string (store the run)")
	initSchema := flag.Bool("init", false, "Initialize database schema before storing")

	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	base := BasePrevalences{Hypertension: *hyp, Diabetes: *dia, Cardio: *cardio}
	joint := JointPrevalences{HypDia: *hypDia, HypCardio: *hypCardio, DiaCardio: *diaCardio, AllThree: *allThree}

	start := time.Now()
	result, counts := simulate(rng, *population, base, joint, defaultCosts())
	log.Printf("Simulated %d individuals into %d clusters in %s",
		*population, len(counts), time.Since(start).Round(time.Millisecond))

	if err := writeArtifact(*outFile, result); err != nil {
		log.Fatalf("Failed to write artifact: %v", err)
	}

	if *parquetOut != "" {
		if err := writeClusterParquet(*parquetOut, result, counts); err != nil {
			log.Fatalf("Failed to write Parquet: %v", err)
		}
		log.Printf("Wrote cluster tallies to %s", *parquetOut)
	}

	if *pgConn != "" {
		ctx := context.Background()
		pool, err := connectPool(ctx, *pgConn, *initSchema)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		runID, err := storeSimulation(ctx, pool, *seed, result, counts)
		if err != nil {
			log.Fatalf("Failed to store simulation: %v", err)
		}
		log.Printf("Stored simulation run with ID: %d", runID)
	}

	fmt.Printf("Simulation complete. Total economic burden: $%.0f\n", result.TotalCost)
	fmt.Printf("Output saved to %s\n", *outFile)
}
