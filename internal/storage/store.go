package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/partfield/internal/metrics"
)

const (
	metadataFile  = "metadata.json"
	telemetryFile = "telemetry.csv"
)

// Store keeps trace run telemetry under baseDir, one directory per run.
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
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Particles int                `json:"particles"`
	Frames    int                `json:"frames"`
	Backend   string             `json:"backend"`
	Script    string             `json:"script"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the per-frame series. ID and Timestamp are filled in
// when empty. It returns the run ID.
func (s *Store) Save(meta RunMetadata, series *metrics.Series) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		name := meta.Preset
		if name == "" {
			name = "run"
		}
		meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	}
	if series != nil {
		meta.Frames = series.Len()
		if meta.Metrics == nil {
			meta.Metrics = series.Last()
		}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if series == nil {
		return meta.ID, nil
	}
	if err := writeTelemetry(filepath.Join(runDir, telemetryFile), series); err != nil {
		return "", fmt.Errorf("write telemetry: %w", err)
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTelemetry(path string, series *metrics.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{"frame", "mode"}, series.Names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < series.Len(); i++ {
		row := []string{strconv.Itoa(i), series.Modes[i]}
		for _, name := range series.Names {
			row = append(row, strconv.FormatFloat(series.Values[name][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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

// Telemetry is a loaded telemetry.csv: one column per metric.
type Telemetry struct {
	Names  []string
	Modes  []string
	Values map[string][]float64
}

func (t *Telemetry) Len() int { return len(t.Modes) }

func (s *Store) LoadTelemetry(runID string) (*Telemetry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, telemetryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty telemetry", runID)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "frame" || header[1] != "mode" {
		return nil, fmt.Errorf("run %s: unexpected telemetry header %v", runID, header)
	}

	t := &Telemetry{
		Names:  append([]string(nil), header[2:]...),
		Values: make(map[string][]float64, len(header)-2),
	}
	for _, record := range records[1:] {
		t.Modes = append(t.Modes, record[1])
		for j, name := range t.Names {
			val, err := strconv.ParseFloat(record[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %s: %w", runID, name, err)
			}
			t.Values[name] = append(t.Values[name], val)
		}
	}
	return t, nil
}
