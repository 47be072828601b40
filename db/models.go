package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type ModelRun struct {
	ID                   int32
	Population           int32
	OsaPrevalence        float64
	CurrentDiagnosisRate float64
	TargetDiagnosisRate  float64
	TreatmentAdherence   float64
	DiagnosisCost        pgtype.Numeric
	AnnualTreatmentCost  pgtype.Numeric
	DiscountRate         float64
	TotalNpv             pgtype.Numeric
	CreatedAt            time.Time
}

type AnnualSaving struct {
	ID            int32
	RunID         int32
	Year          int32
	CostAvoided   pgtype.Numeric
	TreatmentCost pgtype.Numeric
	NetSavings    pgtype.Numeric
	CumulativeNet pgtype.Numeric
}

type SimulationRun struct {
	ID         int32
	Population int64
	Seed       int64
	TotalCost  pgtype.Numeric
	CreatedAt  time.Time
}

type SimulationCluster struct {
	ID          int32
	RunID       int32
	Label       string
	Count       int64
	Prevalence  float64
	ClusterCost pgtype.Numeric
}
