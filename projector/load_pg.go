package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"osatool/db"
)

// storeRun persists the model parameters, total NPV and the annual series
// in a single transaction. Returns the new run id.
func storeRun(ctx context.Context, pool *pgxpool.Pool, p ModelParameters, total float64, series []AnnualRecord) (int32, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	q := db.New(tx)

	runID, err := q.InsertModelRun(ctx, db.InsertModelRunParams{
		Population:           int32(p.Population),
		OsaPrevalence:        p.OSAPrevalence,
		CurrentDiagnosisRate: p.CurrentDiagnosisRate,
		TargetDiagnosisRate:  p.TargetDiagnosisRate,
		TreatmentAdherence:   p.TreatmentAdherence,
		DiagnosisCost:        floatToNumeric(p.DiagnosisCost),
		AnnualTreatmentCost:  floatToNumeric(p.AnnualTreatmentCost),
		DiscountRate:         p.DiscountRate,
		TotalNpv:             floatToNumeric(total),
	})
	if err != nil {
		tx.Rollback(ctx)
		return 0, fmt.Errorf("insert model run: %w", err)
	}

	var cumulative float64
	for _, rec := range series {
		cumulative += rec.NetSavings
		err := q.InsertAnnualSaving(ctx, db.InsertAnnualSavingParams{
			RunID:         runID,
			Year:          int32(rec.Year),
			CostAvoided:   floatToNumeric(rec.CostAvoided),
			TreatmentCost: floatToNumeric(rec.TreatmentCost),
			NetSavings:    floatToNumeric(rec.NetSavings),
			CumulativeNet: floatToNumeric(cumulative),
		})
		if err != nil {
			tx.Rollback(ctx)
			return 0, fmt.Errorf("insert year %d: %w", rec.Year, err)
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
