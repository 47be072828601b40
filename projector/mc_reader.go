package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MonteCarloResult holds the fields of the sampler artifact consumed by the
// projector. Cluster labels it does not recognize stay in the maps untouched.
type MonteCarloResult struct {
	Population      int64
	JointPrevalence map[string]float64
	AverageCosts    map[string]float64
	TotalCost       float64
}

// flexFraction decodes a JSON value that should be a number but may arrive
// as a quoted string (or as garbage, which reads as 0 — a malformed value
// degrades the run rather than halting it).
type flexFraction float64

func (f *flexFraction) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFraction(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		cleaned := strings.ReplaceAll(str, ",", "")
		if num, err := strconv.ParseFloat(cleaned, 64); err == nil {
			*f = flexFraction(num)
			return nil
		}
	}
	*f = 0
	return nil
}

// ReadMonteCarloArtifact streams the sampler's JSON output. The file is
// walked token by token so unknown fields are skipped rather than rejected.
// A missing or unreadable file is an error: the artifact is a required
// precondition of the Monte Carlo input path.
func ReadMonteCarloArtifact(path string) (*MonteCarloResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 64*1024)

	// Skip UTF-8 BOM if present
	bom, err := reader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		reader.Discard(3)
	}

	decoder := json.NewDecoder(reader)

	tok, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected '{', got %v", tok)
	}

	result := &MonteCarloResult{
		JointPrevalence: make(map[string]float64),
		AverageCosts:    make(map[string]float64),
	}

	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("read field name: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", tok)
		}

		switch key {
		case "population":
			var v flexFraction
			if err := decoder.Decode(&v); err != nil {
				return nil, fmt.Errorf("decode population: %w", err)
			}
			result.Population = int64(v)

		case "joint_prevalence":
			m, err := decodeFractionMap(decoder)
			if err != nil {
				return nil, fmt.Errorf("decode joint_prevalence: %w", err)
			}
			result.JointPrevalence = m

		case "average_costs":
			m, err := decodeFractionMap(decoder)
			if err != nil {
				return nil, fmt.Errorf("decode average_costs: %w", err)
			}
			result.AverageCosts = m

		case "total_cost":
			var v flexFraction
			if err := decoder.Decode(&v); err != nil {
				return nil, fmt.Errorf("decode total_cost: %w", err)
			}
			result.TotalCost = float64(v)

		default:
			var skip json.RawMessage
			if err := decoder.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip field %s: %w", key, err)
			}
		}
	}

	return result, nil
}

func decodeFractionMap(decoder *json.Decoder) (map[string]float64, error) {
	var raw map[string]flexFraction
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	m := make(map[string]float64, len(raw))
	for k, v := range raw {
		m[k] = float64(v)
	}
	return m, nil
}

// depressionDefault is assumed when the Monte Carlo path is used: the
// sampler does not model depression, so its prevalence is fixed.
const depressionDefault = 0.25

// profileFromArtifact maps the artifact onto the model's inputs. Missing
// keys read as 0 through the map zero value.
func profileFromArtifact(mc *MonteCarloResult) (ComorbidityProfile, []JointCluster) {
	jp := mc.JointPrevalence

	profile := ComorbidityProfile{
		Hypertension:   jp["hypertension"],
		Diabetes:       jp["diabetes"],
		Cardiovascular: jp["cardio"],
		Depression:     depressionDefault,
	}

	joint := []JointCluster{
		{Conditions: []Condition{Hypertension, Diabetes}, Fraction: jp["hypertension_diabetes"]},
		{Conditions: []Condition{Hypertension, Cardiovascular}, Fraction: jp["hypertension_cardio"]},
		{Conditions: []Condition{Diabetes, Cardiovascular}, Fraction: jp["diabetes_cardio"]},
		{Conditions: []Condition{Hypertension, Diabetes, Cardiovascular}, Fraction: jp["hypertension_diabetes_cardio"]},
	}

	return profile, joint
}
