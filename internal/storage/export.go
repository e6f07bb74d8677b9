package storage

import (
	"encoding/json"
	"io"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

type ExportBody struct {
	Name         string      `json:"name"`
	Color        string      `json:"color,omitempty"`
	Radius       float64     `json:"radius"`
	Albedo       float64     `json:"albedo"`
	Positions    [][]float64 `json:"positions"`
	Temperatures []float64   `json:"temperatures"`
}

type ExportData struct {
	ID       string             `json:"id,omitempty"`
	Scenario string             `json:"scenario"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Bodies   []ExportBody       `json:"bodies"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExport(meta RunMetadata, h *dynamo.History) ExportData {
	data := ExportData{
		ID:       meta.ID,
		Scenario: meta.Scenario,
		Dt:       h.Dt,
		Duration: h.Duration,
		Steps:    h.Len(),
		Times:    h.Times,
		Bodies:   make([]ExportBody, 0, len(h.Order)),
		Metrics:  h.Metrics,
	}

	for _, name := range h.Order {
		data.Bodies = append(data.Bodies, ExportBody{
			Name:         name,
			Color:        h.Colors[name],
			Radius:       h.Radii[name],
			Albedo:       h.Albedos[name],
			Positions:    triples(h.Positions(name)),
			Temperatures: h.Temperatures(name),
		})
	}
	return data
}

func triples(ps []r3.Vec) [][]float64 {
	out := make([][]float64, len(ps))
	for i, p := range ps {
		out[i] = []float64{p.X, p.Y, p.Z}
	}
	return out
}

// ExportJSON writes a stored run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, h *dynamo.History) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExport(meta, h))
}
