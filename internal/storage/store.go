package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
)

// ErrCorrupt reports a stored run whose files disagree with each other.
var ErrCorrupt = errors.New("storage: corrupt run")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Workers   int                `json:"workers,omitempty"`
	Bodies    []string           `json:"bodies"`
	Colors    map[string]string  `json:"colors"`
	Radii     map[string]float64 `json:"radii"`
	Albedos   map[string]float64 `json:"albedos"`
	Center    string             `json:"center,omitempty"`
	Trail     float64            `json:"trail,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills the run-describing fields from a finished history.
func NewMetadata(scenario string, h *dynamo.History) RunMetadata {
	return RunMetadata{
		Scenario: scenario,
		Dt:       h.Dt,
		Duration: h.Duration,
		Steps:    h.Len(),
		Bodies:   append([]string(nil), h.Order...),
		Colors:   h.Colors,
		Radii:    h.Radii,
		Albedos:  h.Albedos,
		Metrics:  h.Metrics,
	}
}

// Save writes a run directory and returns its ID. ID and Timestamp in meta
// are overwritten.
func (s *Store) Save(meta RunMetadata, h *dynamo.History) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	meta.Timestamp = now

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, h); err != nil {
		return "", err
	}
	return meta.ID, f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes one row per step: step, time, then x, y, z and
// temperature for every body in h.Order.
func WriteCSV(w io.Writer, h *dynamo.History) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "time"}
	for _, name := range h.Order {
		header = append(header, name+"_x", name+"_y", name+"_z", name+"_t")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for k := 0; k < h.Len(); k++ {
		row[0] = strconv.Itoa(k)
		row[1] = formatFloat(h.Times[k])
		col := 2
		for _, name := range h.Order {
			p := h.Positions(name)[k]
			row[col] = formatFloat(p.X)
			row[col+1] = formatFloat(p.Y)
			row[col+2] = formatFloat(p.Z)
			row[col+3] = formatFloat(h.Temperatures(name)[k])
			col += 4
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Shortest exact representation, so a stored run reloads bit-identical.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory rebuilds the recorded History of a stored run.
func (s *Store) LoadHistory(runID string) (*dynamo.History, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, historyFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := ReadCSV(f, meta.Bodies, meta.Dt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	for name, c := range meta.Colors {
		h.Colors[name] = c
	}
	for name, r := range meta.Radii {
		h.Radii[name] = r
	}
	for name, a := range meta.Albedos {
		h.Albedos[name] = a
	}
	for name, v := range meta.Metrics {
		h.Metrics[name] = v
	}
	return h, nil
}

// ReadCSV parses what WriteCSV wrote for the given body order.
func ReadCSV(r io.Reader, bodies []string, dt float64) (*dynamo.History, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2 + 4*len(bodies)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrCorrupt)
	}
	for i, name := range bodies {
		if records[0][2+4*i] != name+"_x" {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrCorrupt, 2+4*i, records[0][2+4*i], name+"_x")
		}
	}

	rows := records[1:]
	h := dynamo.NewHistory(bodies, len(rows), dt)
	vals := make([]float64, cr.FieldsPerRecord)
	for k, rec := range rows {
		for c, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrCorrupt, k+1, err)
			}
			vals[c] = v
		}
		h.Times[k] = vals[0]
		for i, name := range bodies {
			base := 1 + 4*i
			pos := r3.Vec{X: vals[base], Y: vals[base+1], Z: vals[base+2]}
			if err := h.Set(k, name, pos, vals[base+3]); err != nil {
				return nil, err
			}
		}
	}
	return h, nil
}
