package store

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/latinrect/latinrect/rectangle"
)

// YAMLFile is a Store backed by a single human-editable YAML document,
// keyed by "r,n", written atomically on every Store call. It is what
// the CLI (cmd/latinctl) uses when --store names a file; without that
// flag the CLI runs with no store. The core never depends on this
// package directly.
type YAMLFile struct {
	path string
	mu   sync.Mutex
}

// NewYAMLFile returns a YAMLFile backed by path. The file need not
// exist yet; it is created on the first Store call.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// yamlDoc is the on-disk shape: CountResult's *big.Int fields become
// decimal strings, since yaml.v3 has no built-in support for
// marshaling math/big.Int by value.
type yamlDoc struct {
	Entries map[string]yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	R                 int    `yaml:"r"`
	N                 int    `yaml:"n"`
	Positive          string `yaml:"positive"`
	Negative          string `yaml:"negative"`
	Difference        string `yaml:"difference"`
	ComputationTimeNS int64  `yaml:"computation_time_ns"`
}

func (y *YAMLFile) load() (yamlDoc, error) {
	data, err := os.ReadFile(y.path)
	if os.IsNotExist(err) {
		return yamlDoc{Entries: make(map[string]yamlEntry)}, nil
	}
	if err != nil {
		return yamlDoc{}, err
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return yamlDoc{}, err
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]yamlEntry)
	}
	return doc, nil
}

func (y *YAMLFile) Lookup(r, n int) (rectangle.CountResult, bool, error) {
	y.mu.Lock()
	defer y.mu.Unlock()

	doc, err := y.load()
	if err != nil {
		return rectangle.CountResult{}, false, err
	}
	entry, ok := doc.Entries[key(r, n)]
	if !ok {
		return rectangle.CountResult{}, false, nil
	}

	pos, ok1 := new(big.Int).SetString(entry.Positive, 10)
	neg, ok2 := new(big.Int).SetString(entry.Negative, 10)
	diff, ok3 := new(big.Int).SetString(entry.Difference, 10)
	if !ok1 || !ok2 || !ok3 {
		return rectangle.CountResult{}, false, fmt.Errorf("store: corrupt yaml entry for %d,%d", r, n)
	}
	return rectangle.CountResult{
		R: entry.R, N: entry.N,
		Positive: pos, Negative: neg, Difference: diff,
		ComputationTime: time.Duration(entry.ComputationTimeNS),
	}, true, nil
}

func (y *YAMLFile) Store(r, n int, result rectangle.CountResult) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	doc, err := y.load()
	if err != nil {
		return err
	}
	doc.Entries[key(r, n)] = yamlEntry{
		R: r, N: n,
		Positive:          result.Positive.String(),
		Negative:          result.Negative.String(),
		Difference:        result.Difference.String(),
		ComputationTimeNS: int64(result.ComputationTime),
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(y.path), ".tmp-store-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, y.path)
}
