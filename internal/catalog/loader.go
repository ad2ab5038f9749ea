package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Well-known file names inside an exercise directory.
const (
	DefinitionTOML  = "exercise.toml"
	DefinitionYAML  = "exercise.yaml"
	StarterFile     = "starter.rs"
	TestsFile       = "tests.rs"
	SolutionFile    = "solution.rs"
	ExplanationFile = "explanation.md"
	QuizFile        = "quiz.toml"
)

// metadata is the decoded content of a definition file.
type metadata struct {
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"`
	Hint        string `json:"hint"`
	TimeoutSecs int    `json:"timeout_secs"`
}

// LoadAll scans root for exercise definitions and returns them sorted by id.
// Loading is all-or-nothing: any malformed definition or missing required
// file fails the whole call. Nothing is cached between calls.
func LoadAll(root string) ([]Exercise, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open lessons root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("lessons root %s is not a directory", root)
	}

	var out []Exercise
	seen := make(map[string]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped rather than failing the scan.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != DefinitionTOML && name != DefinitionYAML {
			return nil
		}

		ex, err := loadExercise(root, path)
		if err != nil {
			return err
		}
		if prev, ok := seen[ex.ID]; ok {
			return fmt.Errorf("exercise %q defined twice (%s and %s)", ex.ID, prev, path)
		}
		seen[ex.ID] = path
		out = append(out, ex)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Find returns the exercise with the given id.
func Find(all []Exercise, id string) (Exercise, error) {
	for _, ex := range all {
		if ex.ID == id {
			return ex, nil
		}
	}
	return Exercise{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

func loadExercise(root, defPath string) (Exercise, error) {
	dir := filepath.Dir(defPath)

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return Exercise{}, fmt.Errorf("resolve exercise id for %s: %w", dir, err)
	}
	if rel == "." {
		return Exercise{}, &ParseError{Path: defPath, Err: errors.New("definition file at lessons root has no exercise id")}
	}
	id := filepath.ToSlash(rel)

	meta, err := parseDefinition(defPath)
	if err != nil {
		return Exercise{}, err
	}

	ex := Exercise{
		ID:          id,
		Title:       meta.Title,
		Difficulty:  Difficulty(meta.Difficulty),
		Hint:        meta.Hint,
		TimeoutSecs: meta.TimeoutSecs,
		Root:        dir,
		StarterPath: filepath.Join(dir, StarterFile),
		TestsPath:   filepath.Join(dir, TestsFile),
	}

	for _, required := range []string{ex.StarterPath, ex.TestsPath} {
		if !fileExists(required) {
			return Exercise{}, &MissingFileError{Dir: dir, File: filepath.Base(required)}
		}
	}
	if p := filepath.Join(dir, SolutionFile); fileExists(p) {
		ex.SolutionPath = p
	}
	if p := filepath.Join(dir, ExplanationFile); fileExists(p) {
		ex.ExplanationPath = p
	}
	return ex, nil
}

// parseDefinition decodes a TOML or YAML definition, validates it against the
// metadata schema and returns the typed result.
func parseDefinition(path string) (metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return metadata{}, fmt.Errorf("read %s: %w", path, err)
	}

	raw := make(map[string]any)
	switch filepath.Base(path) {
	case DefinitionYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return metadata{}, &ParseError{Path: path, Err: err}
	}

	// Normalise both formats through JSON so the schema sees one value model.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return metadata{}, &ParseError{Path: path, Err: err}
	}
	var doc any
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return metadata{}, &ParseError{Path: path, Err: err}
	}
	if err := validateMetadata(doc); err != nil {
		return metadata{}, &ParseError{Path: path, Err: err}
	}

	var meta metadata
	if err := json.Unmarshal(normalized, &meta); err != nil {
		return metadata{}, &ParseError{Path: path, Err: err}
	}
	return meta, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
