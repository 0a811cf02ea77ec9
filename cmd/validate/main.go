package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

var levelFilenamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <data-dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validates the authored content in a data directory:\n")
		fmt.Fprintf(os.Stderr, "  <data-dir>/levels/*.json\n")
		fmt.Fprintf(os.Stderr, "  <data-dir>/characters.json (optional)\n")
		fmt.Fprintf(os.Stderr, "  <data-dir>/combinations.json (optional)\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	dataDir := flag.Arg(0)
	cat, err := loadCatalog(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	if err := cat.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	levels := len(cat.Levels)
	rooms, puzzles, hunts := 0, 0, 0
	for i := range cat.Levels {
		rooms += len(cat.Levels[i].Rooms)
		for j := range cat.Levels[i].Rooms {
			puzzles += len(cat.Levels[i].Rooms[j].Puzzles)
			hunts += len(cat.Levels[i].Rooms[j].Hunts)
		}
	}
	fmt.Printf("Catalog is valid: %d levels, %d rooms, %d puzzles, %d hunts\n",
		levels, rooms, puzzles, hunts)
}

func loadCatalog(dataDir string) (*catalog.Catalog, error) {
	cat := &catalog.Catalog{}

	levelsDir := filepath.Join(dataDir, "levels")
	err := filepath.WalkDir(levelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		baseName := strings.TrimSuffix(filepath.Base(path), ".json")
		if !levelFilenamePattern.MatchString(baseName) {
			return fmt.Errorf("level filename %q must be lowercase snake_case (e.g. forgotten_manor.json)", filepath.Base(path))
		}

		fmt.Printf("Validating %s...\n", path)
		var level catalog.Level
		if err := decodeStrict(path, &level); err != nil {
			return err
		}
		cat.Levels = append(cat.Levels, level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cat.Levels) == 0 {
		return nil, fmt.Errorf("no level files found in %s", levelsDir)
	}

	charactersPath := filepath.Join(dataDir, "characters.json")
	if _, err := os.Stat(charactersPath); err == nil {
		fmt.Printf("Validating %s...\n", charactersPath)
		if err := decodeStrict(charactersPath, &cat.Characters); err != nil {
			return nil, err
		}
	}

	combinationsPath := filepath.Join(dataDir, "combinations.json")
	if _, err := os.Stat(combinationsPath); err == nil {
		fmt.Printf("Validating %s...\n", combinationsPath)
		if err := decodeStrict(combinationsPath, &cat.Combinations); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// decodeStrict unmarshals with unknown fields disallowed, so typos in
// authored files fail loudly instead of silently dropping content.
func decodeStrict(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", path, err)
	}
	return nil
}
