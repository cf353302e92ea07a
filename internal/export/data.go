package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/chemlab/internal/dynamo"
)

type ExportData struct {
	Topic   string             `json:"topic"`
	Ticks   int                `json:"ticks"`
	Keys    []string           `json:"keys"`
	Times   []float64          `json:"times"`
	Samples []dynamo.Sample    `json:"samples"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// outputKeys is the sorted union of output names across samples.
func outputKeys(samples []dynamo.Sample) []string {
	seen := make(map[string]struct{})
	for _, s := range samples {
		for k := range s.Outputs {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteJSON writes samples as one indented JSON document.
func WriteJSON(w io.Writer, topic string, samples []dynamo.Sample, metrics map[string]float64) error {
	data := ExportData{
		Topic:   topic,
		Ticks:   len(samples),
		Keys:    outputKeys(samples),
		Times:   make([]float64, len(samples)),
		Samples: samples,
		Metrics: metrics,
	}
	for i, s := range samples {
		data.Times[i] = s.Time
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per sample: topic, tick, time, then every output
// in sorted key order. Outputs missing from a sample are left empty.
func WriteCSV(w io.Writer, topic string, samples []dynamo.Sample) error {
	keys := outputKeys(samples)
	cw := csv.NewWriter(w)

	header := append([]string{"topic", "tick", "time"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, s := range samples {
		row[0] = topic
		row[1] = strconv.Itoa(s.Tick)
		row[2] = strconv.FormatFloat(s.Time, 'f', -1, 64)
		for i, k := range keys {
			v, ok := s.Outputs[k]
			if !ok {
				row[3+i] = ""
				continue
			}
			row[3+i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
