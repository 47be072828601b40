package main

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"osatool/db"
)

// storeSimulation persists the run metadata and per-cluster tallies in a
// single transaction. Returns the new run id.
func storeSimulation(ctx context.Context, pool *pgxpool.Pool, seed int64, result *SimulationResult, counts map[string]int64) (int32, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	q := db.New(tx)

	runID, err := q.InsertSimulationRun(ctx, db.InsertSimulationRunParams{
		Population: result.Population,
		Seed:       seed,
		TotalCost:  floatToNumeric(result.TotalCost),
	})
	if err != nil {
		tx.Rollback(ctx)
		return 0, fmt.Errorf("insert simulation run: %w", err)
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		err := q.InsertSimulationCluster(ctx, db.InsertSimulationClusterParams{
			RunID:       runID,
			Label:       label,
			Count:       counts[label],
			Prevalence:  result.JointPrevalence[label],
			ClusterCost: floatToNumeric(result.AverageCosts[label]),
		})
		if err != nil {
			tx.Rollback(ctx)
			return 0, fmt.Errorf("insert cluster %q: %w", label, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// connectPool dials PostgreSQL and optionally bootstraps the schema.
func connectPool(ctx context.Context, connStr string, initSchema bool) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if initSchema {
		if _, err := pool.Exec(ctx, db.Schema); err != nil {
			pool.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}

	return pool, nil
}

func floatToNumeric(f float64) pgtype.Numeric {
	bf := big.NewFloat(f)
	text := bf.Text('f', -1)
	var num pgtype.Numeric
	num.Scan(text)
	return num
}
