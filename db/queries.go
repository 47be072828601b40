package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertModelRun = `
INSERT INTO model_runs (
    population, osa_prevalence, current_diagnosis_rate, target_diagnosis_rate,
    treatment_adherence, diagnosis_cost, annual_treatment_cost, discount_rate, total_npv
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

type InsertModelRunParams struct {
	Population           int32
	OsaPrevalence        float64
	CurrentDiagnosisRate float64
	TargetDiagnosisRate  float64
	TreatmentAdherence   float64
	DiagnosisCost        pgtype.Numeric
	AnnualTreatmentCost  pgtype.Numeric
	DiscountRate         float64
	TotalNpv             pgtype.Numeric
}

func (q *Queries) InsertModelRun(ctx context.Context, arg InsertModelRunParams) (int32, error) {
	row := q.db.QueryRow(ctx, insertModelRun,
		arg.Population,
		arg.OsaPrevalence,
		arg.CurrentDiagnosisRate,
		arg.TargetDiagnosisRate,
		arg.TreatmentAdherence,
		arg.DiagnosisCost,
		arg.AnnualTreatmentCost,
		arg.DiscountRate,
		arg.TotalNpv,
	)
	var id int32
	err := row.Scan(&id)
	return id, err
}

const getModelRun = `
SELECT id, population, osa_prevalence, current_diagnosis_rate, target_diagnosis_rate,
       treatment_adherence, diagnosis_cost, annual_treatment_cost, discount_rate,
       total_npv, created_at
FROM model_runs
WHERE id = $1`

func (q *Queries) GetModelRun(ctx context.Context, id int32) (ModelRun, error) {
	row := q.db.QueryRow(ctx, getModelRun, id)
	var r ModelRun
	err := row.Scan(
		&r.ID,
		&r.Population,
		&r.OsaPrevalence,
		&r.CurrentDiagnosisRate,
		&r.TargetDiagnosisRate,
		&r.TreatmentAdherence,
		&r.DiagnosisCost,
		&r.AnnualTreatmentCost,
		&r.DiscountRate,
		&r.TotalNpv,
		&r.CreatedAt,
	)
	return r, err
}

const insertAnnualSaving = `
INSERT INTO annual_savings (run_id, year, cost_avoided, treatment_cost, net_savings, cumulative_net)
VALUES ($1, $2, $3, $4, $5, $6)`

type InsertAnnualSavingParams struct {
	RunID         int32
	Year          int32
	CostAvoided   pgtype.Numeric
	TreatmentCost pgtype.Numeric
	NetSavings    pgtype.Numeric
	CumulativeNet pgtype.Numeric
}

func (q *Queries) InsertAnnualSaving(ctx context.Context, arg InsertAnnualSavingParams) error {
	_, err := q.db.Exec(ctx, insertAnnualSaving,
		arg.RunID,
		arg.Year,
		arg.CostAvoided,
		arg.TreatmentCost,
		arg.NetSavings,
		arg.CumulativeNet,
	)
	return err
}

const listAnnualSavings = `
SELECT id, run_id, year, cost_avoided, treatment_cost, net_savings, cumulative_net
FROM annual_savings
WHERE run_id = $1
ORDER BY year`

func (q *Queries) ListAnnualSavings(ctx context.Context, runID int32) ([]AnnualSaving, error) {
	rows, err := q.db.Query(ctx, listAnnualSavings, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AnnualSaving
	for rows.Next() {
		var s AnnualSaving
		if err := rows.Scan(&s.ID, &s.RunID, &s.Year, &s.CostAvoided, &s.TreatmentCost, &s.NetSavings, &s.CumulativeNet); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const countAnnualSavings = `SELECT count(*) FROM annual_savings WHERE run_id = $1`

func (q *Queries) CountAnnualSavings(ctx context.Context, runID int32) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countAnnualSavings, runID).Scan(&n)
	return n, err
}

const insertSimulationRun = `
INSERT INTO simulation_runs (population, seed, total_cost)
VALUES ($1, $2, $3)
RETURNING id`

type InsertSimulationRunParams struct {
	Population int64
	Seed       int64
	TotalCost  pgtype.Numeric
}

func (q *Queries) InsertSimulationRun(ctx context.Context, arg InsertSimulationRunParams) (int32, error) {
	row := q.db.QueryRow(ctx, insertSimulationRun, arg.Population, arg.Seed, arg.TotalCost)
	var id int32
	err := row.Scan(&id)
	return id, err
}

const getSimulationRun = `
SELECT id, population, seed, total_cost, created_at
FROM simulation_runs
WHERE id = $1`

func (q *Queries) GetSimulationRun(ctx context.Context, id int32) (SimulationRun, error) {
	row := q.db.QueryRow(ctx, getSimulationRun, id)
	var r SimulationRun
	err := row.Scan(&r.ID, &r.Population, &r.Seed, &r.TotalCost, &r.CreatedAt)
	return r, err
}

const insertSimulationCluster = `
INSERT INTO simulation_clusters (run_id, label, count, prevalence, cluster_cost)
VALUES ($1, $2, $3, $4, $5)`

type InsertSimulationClusterParams struct {
	RunID       int32
	Label       string
	Count       int64
	Prevalence  float64
	ClusterCost pgtype.Numeric
}

func (q *Queries) InsertSimulationCluster(ctx context.Context, arg InsertSimulationClusterParams) error {
	_, err := q.db.Exec(ctx, insertSimulationCluster,
		arg.RunID,
		arg.Label,
		arg.Count,
		arg.Prevalence,
		arg.ClusterCost,
	)
	return err
}

const listSimulationClusters = `
SELECT id, run_id, label, count, prevalence, cluster_cost
FROM simulation_clusters
WHERE run_id = $1
ORDER BY label`

func (q *Queries) ListSimulationClusters(ctx context.Context, runID int32) ([]SimulationCluster, error) {
	rows, err := q.db.Query(ctx, listSimulationClusters, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SimulationCluster
	for rows.Next() {
		var c SimulationCluster
		if err := rows.Scan(&c.ID, &c.RunID, &c.Label, &c.Count, &c.Prevalence, &c.ClusterCost); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const countSimulationClusters = `SELECT count(*) FROM simulation_clusters WHERE run_id = $1`

func (q *Queries) CountSimulationClusters(ctx context.Context, runID int32) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countSimulationClusters, runID).Scan(&n)
	return n, err
}
