package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yairfalse/kulut/internal/logger"
	"github.com/yairfalse/kulut/pkg/types"
)

// datePattern matches strict YYYY-MM-DD directory names. Anything else
// under raw/ is skipped silently.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const manifestName = "all_resources.json"

// manifest is the combined per-date file: every resource bucket plus
// collection metadata.
type manifest struct {
	Metadata  manifestMetadata            `json:"metadata"`
	Resources map[string][]types.Resource `json:"resources"`
}

type manifestMetadata struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	ResourceCounts map[string]int `json:"resource_counts"`
	TotalResources int            `json:"total_resources"`
}

// LocalStore keeps one directory per snapshot date under <base>/raw,
// holding a JSON file per resource type plus the combined manifest.
type LocalStore struct {
	rawDir string
	log    logger.Logger
}

// NewLocalStore creates a filesystem store rooted at baseDir.
func NewLocalStore(baseDir string, log logger.Logger) (*LocalStore, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".kulut")
	}
	if log == nil {
		log = logger.NewNop()
	}

	rawDir := filepath.Join(baseDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", rawDir, err)
	}

	return &LocalStore{rawDir: rawDir, log: log}, nil
}

// Save writes the inventory for a date. A save either fully replaces the
// prior snapshot or leaves it intact: everything is written to a
// temporary directory first and committed with a rename.
func (s *LocalStore) Save(date string, resources map[string][]types.Resource) (*types.Snapshot, error) {
	if !datePattern.MatchString(date) {
		return nil, fmt.Errorf("invalid snapshot date %q: must be YYYY-MM-DD", date)
	}
	if _, err := time.Parse(types.DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}
	if resources == nil {
		resources = map[string][]types.Resource{}
	}

	snapshot := types.NewSnapshot(date, resources)

	if n := snapshot.NonDiffableCount(); n > 0 {
		s.log.WithFields(map[string]interface{}{
			"date":  date,
			"count": n,
		}).Warn("records without a resource ID will be excluded from diffing")
	}

	tmpDir, err := os.MkdirTemp(s.rawDir, ".tmp-"+date+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	for resourceType, list := range resources {
		path := filepath.Join(tmpDir, typeFilename(resourceType))
		if err := writeJSON(path, list); err != nil {
			return nil, err
		}
	}

	m := manifest{
		Metadata: manifestMetadata{
			GeneratedAt:    snapshot.GeneratedAt,
			ResourceCounts: snapshot.CountsByType(),
			TotalResources: snapshot.TotalCount,
		},
		Resources: resources,
	}
	if err := writeJSON(filepath.Join(tmpDir, manifestName), m); err != nil {
		return nil, err
	}

	dateDir := filepath.Join(s.rawDir, date)
	if _, err := os.Stat(dateDir); err == nil {
		s.log.WithField("date", date).Warn("snapshot already exists for date, replacing it")
		if err := os.RemoveAll(dateDir); err != nil {
			return nil, fmt.Errorf("failed to remove existing snapshot %s: %w", date, err)
		}
	}

	if err := os.Rename(tmpDir, dateDir); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot %s: %w", date, err)
	}

	s.log.WithFields(map[string]interface{}{
		"date":      date,
		"resources": snapshot.TotalCount,
		"types":     len(resources),
	}).Info("snapshot saved")

	return snapshot, nil
}

// Load reads the snapshot for a date from its combined manifest.
func (s *LocalStore) Load(date string) (*types.Snapshot, error) {
	dateDir := filepath.Join(s.rawDir, date)
	if _, err := os.Stat(dateDir); os.IsNotExist(err) {
		return nil, &SnapshotNotFoundError{Date: date}
	}

	path := filepath.Join(dateDir, manifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SnapshotNotFoundError{Date: date}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	snapshot := &types.Snapshot{
		Date:        date,
		GeneratedAt: m.Metadata.GeneratedAt,
		Resources:   m.Resources,
	}
	if snapshot.Resources == nil {
		snapshot.Resources = map[string][]types.Resource{}
	}
	snapshot.TotalCount = snapshot.ResourceCount()
	return snapshot, nil
}

// ListDates returns all stored snapshot dates in ascending order.
// Directory names that are not strict YYYY-MM-DD are skipped.
func (s *LocalStore) ListDates() ([]string, error) {
	entries, err := os.ReadDir(s.rawDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.rawDir, err)
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() || !datePattern.MatchString(entry.Name()) {
			continue
		}
		if _, err := time.Parse(types.DateFormat, entry.Name()); err != nil {
			continue
		}
		dates = append(dates, entry.Name())
	}

	sort.Strings(dates)
	return dates, nil
}

// LatestDate returns the most recent stored date, or "" for an empty store.
func (s *LocalStore) LatestDate() (string, error) {
	dates, err := s.ListDates()
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", nil
	}
	return dates[len(dates)-1], nil
}

// PreviousDate returns the most recent stored date strictly before the
// given one, or "" when there is none.
func (s *LocalStore) PreviousDate(before string) (string, error) {
	dates, err := s.ListDates()
	if err != nil {
		return "", err
	}
	prev := ""
	for _, d := range dates {
		if d < before {
			prev = d
		}
	}
	return prev, nil
}

func writeJSON(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// typeFilename maps a resource-type name to its per-type file.
func typeFilename(resourceType string) string {
	return strings.ToLower(resourceType) + ".json"
}
