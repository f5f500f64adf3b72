package dex

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

const (
	POKEDEX_FILE = "pokedex.json"
	MOVES_FILE   = "moves.json"

	LATEST_GEN = 9
)

//go:embed data/*.json
var bundled embed.FS

var internalLogger = logr.Logger{}

func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("dex")
}

// Data is a Provider backed by in-memory maps keyed by id.
type Data struct {
	gen     int
	pokedex map[string]*Species
	moves   map[string]*MoveEntry
}

func (d *Data) Gen() int {
	return d.gen
}

func (d *Data) Species(id string) (*Species, bool) {
	species, ok := d.pokedex[ToID(id)]
	return species, ok
}

func (d *Data) Move(id string) (*MoveEntry, bool) {
	move, ok := d.moves[ToID(id)]
	return move, ok
}

func (d *Data) Effectiveness(attackType string, defenseType string) float64 {
	return effectiveness(attackType, defenseType)
}

// WithGen returns a copy of the data scoped to another generation. The entry maps are shared.
func (d *Data) WithGen(gen int) *Data {
	return &Data{
		gen:     gen,
		pokedex: d.pokedex,
		moves:   d.moves,
	}
}

func (d *Data) SpeciesCount() int {
	return len(d.pokedex)
}

func (d *Data) MoveCount() int {
	return len(d.moves)
}

// Load reads pokedex.json and moves.json from the root of files.
// Both files are decoded concurrently.
func Load(files fs.FS, gen int) (*Data, error) {
	data := &Data{gen: gen}

	var group errgroup.Group
	group.Go(func() error {
		pokedex := map[string]*Species{}
		if err := loadJSON(files, POKEDEX_FILE, &pokedex); err != nil {
			return err
		}
		data.pokedex = pokedex
		return nil
	})
	group.Go(func() error {
		moves := map[string]*MoveEntry{}
		if err := loadJSON(files, MOVES_FILE, &moves); err != nil {
			return err
		}
		data.moves = moves
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	internalLogger.V(1).Info("loaded dex data", "gen", gen, "species", len(data.pokedex), "moves", len(data.moves))
	return data, nil
}

func loadJSON(files fs.FS, name string, into any) error {
	fileBytes, err := fs.ReadFile(files, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if err := json.Unmarshal(fileBytes, into); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}

	return nil
}

var (
	defaultOnce sync.Once
	defaultData *Data
	defaultErr  error
)

// Default returns the bundled data set. It only carries the entries the bundled
// tooling and tests need; load a full Showdown dump with Load for real battles.
func Default() (*Data, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultData, defaultErr = Load(sub, LATEST_GEN)
	})

	return defaultData, defaultErr
}

// MustDefault is Default for callers that can't continue without data.
func MustDefault() *Data {
	data, err := Default()
	if err != nil {
		panic(err)
	}
	return data
}
