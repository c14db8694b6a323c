package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/molsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was configured.
type RunInfo struct {
	Label       string      `json:"label"`
	Seed        int64       `json:"seed"`
	Ticks       int         `json:"ticks"`
	Temperature float64     `json:"temperature"`
	Spawn       []sim.Spawn `json:"spawn"`
}

type RunMetadata struct {
	RunInfo
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	TicksTaken int                `json:"ticks_taken"`
	SimTime    float64            `json:"sim_time"`
	Collisions int                `json:"collisions"`
	WallHits   int                `json:"wall_hits"`
	Instances  int                `json:"instances"`
	Metrics    map[string]float64 `json:"metrics"`
}

func newMetadata(id string, info RunInfo, result *sim.Result) RunMetadata {
	return RunMetadata{
		RunInfo:    info,
		ID:         id,
		Timestamp:  time.Now(),
		TicksTaken: result.TicksTaken,
		SimTime:    result.SimTime,
		Collisions: result.Collisions,
		WallHits:   result.WallHits,
		Instances:  result.Instances,
		Metrics:    result.Metrics,
	}
}

// Save writes metadata.json and series.csv into a new run directory and
// returns the run ID.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	label := info.Label
	if label == "" {
		label = "run"
	}
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newMetadata(runID, info, result)); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSeries(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

func seriesNames(result *sim.Result) []string {
	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeSeries(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	names := seriesNames(result)

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i, t := range result.Times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range names {
			v := 0.0
			if i < len(result.Series[name]) {
				v = result.Series[name][i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads series.csv back as sample times and one column per
// metric. Unparseable rows are skipped.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64)
	if len(records) < 2 {
		return []float64{}, series, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for j := 1; j < len(record); j++ {
			v, _ := strconv.ParseFloat(record[j], 64)
			series[header[j]] = append(series[header[j]], v)
		}
	}
	return times, series, nil
}

type ExportData struct {
	RunMetadata
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a saved run, metadata and samples, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	times, series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Times: times, Series: series})
}
