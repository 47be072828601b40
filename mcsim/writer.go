package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// writeArtifact writes the simulation result as indented JSON, the format
// the projector's -mc path consumes.
func writeArtifact(path string, result *SimulationResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		file.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	return file.Close()
}

// clusterRows flattens the tallies into Parquet rows, sorted by label for
// deterministic output.
func clusterRows(result *SimulationResult, counts map[string]int64) []ClusterRow {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([]ClusterRow, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, ClusterRow{
			Label:      label,
			Count:      counts[label],
			Prevalence: result.JointPrevalence[label],
			Cost:       result.AverageCosts[label],
		})
	}
	return rows
}

// ClusterWriter writes cluster tallies to a Parquet file.
type ClusterWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[ClusterRow]
	count  int
}

func NewClusterWriter(filename string) (*ClusterWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[ClusterRow](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("osatool", "1.0", ""),
	)

	return &ClusterWriter{file: file, writer: writer}, nil
}

func (w *ClusterWriter) Write(rows []ClusterRow) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

func (w *ClusterWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *ClusterWriter) Count() int {
	return w.count
}

// writeClusterParquet writes all cluster rows to path.
func writeClusterParquet(path string, result *SimulationResult, counts map[string]int64) error {
	w, err := NewClusterWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(clusterRows(result, counts)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
