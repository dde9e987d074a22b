package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestArena_Validate(t *testing.T) {
	tests := map[string]struct {
		arena  *Arena
		expErr string
	}{
		"valid": {
			arena: &Arena{Name: "Cross", GridSize: 20, Obstacles: [][2]int{{10, 3}, {10, 4}}},
		},
		"no obstacles": {
			arena: &Arena{Name: "Open", GridSize: 8},
		},
		"missing spec": {
			arena:  nil,
			expErr: "spec must be set",
		},
		"missing name": {
			arena:  &Arena{GridSize: 20},
			expErr: "name must be set",
		},
		"small grid": {
			arena:  &Arena{Name: "Tiny", GridSize: 4},
			expErr: "grid_size must be at least",
		},
		"off grid": {
			arena:  &Arena{Name: "Edge", GridSize: 10, Obstacles: [][2]int{{10, 0}}},
			expErr: "outside the grid",
		},
		"negative": {
			arena:  &Arena{Name: "Edge", GridSize: 10, Obstacles: [][2]int{{0, -1}}},
			expErr: "outside the grid",
		},
		"duplicate": {
			arena:  &Arena{Name: "Twice", GridSize: 10, Obstacles: [][2]int{{1, 1}, {1, 1}}},
			expErr: "listed twice",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.arena.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadArena(t *testing.T) {
	tmpDir := t.TempDir()
	data := `{"version": 1, "id": "cross", "spec": {"name": "Cross", "grid_size": 20, "obstacles": [[10, 3], [10, 4]]}}`
	err := os.WriteFile(filepath.Join(tmpDir, "cross.json"), []byte(data), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := map[string]struct {
		id     string
		expErr string
	}{
		"found":   {id: "cross"},
		"missing": {id: "spiral", expErr: `arena "spiral" not found`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := LoadArena(tmpDir, tt.id)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "name", a.Name, "Cross")
			testutil.AssertEqual(t, "grid size", a.GridSize, 20)
			exp := []game.Point{{X: 10, Y: 3}, {X: 10, Y: 4}}
			if !reflect.DeepEqual(a.Points(), exp) {
				t.Errorf("points = %v, expected %v", a.Points(), exp)
			}
		})
	}
}

func TestLoadArena_MissingSpec(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "empty.json"), []byte(`{"version": 1, "id": "empty"}`), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err = LoadArena(tmpDir, "empty")
	testutil.AssertErrorContains(t, err, "spec must be set")
}
