package materials

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/drennan/optmix/internal/optics"
)

//go:embed data/*.lnk
var dataFS embed.FS

// Material keys for the embedded datasets.
const (
	KeyWaterIce       = "water-ice"
	KeyAstrosilicates = "astrosilicates"
	KeyTroilite       = "troilite"
	KeyOrganics       = "organics"
)

// Material is one embedded optical-constant dataset plus its bulk density.
type Material struct {
	// Key is the short name used in recipes and on the command line.
	Key string

	// Name is the human-readable description, including the data source.
	Name string

	// Density is the solid bulk density in g/cm^3.
	Density float64

	// Record holds the parsed optical constants.
	Record *optics.Record
}

// entry describes one embedded dataset before parsing.
type entry struct {
	key     string
	name    string
	density float64
	file    string
}

// Solid densities follow the DSHARP composition (D'Alessio et al. 2001,
// 2006 heritage values).
var entries = []entry{
	{KeyWaterIce, "Water ice (Warren & Brandt 2008)", 0.92, "data/warren_brandt_08.lnk"},
	{KeyAstrosilicates, "Astronomical silicates (Draine 2003)", 3.30, "data/draine_03_astrosil.lnk"},
	{KeyTroilite, "Troilite (Henning & Stognienko 1996)", 4.83, "data/henning_96_troilite.lnk"},
	{KeyOrganics, "Refractory organics (Henning 1996)", 1.50, "data/henning_96_organics.lnk"},
}

// Catalog resolves material keys to parsed datasets.
type Catalog struct {
	byKey map[string]*Material
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog of embedded datasets. The embedded tables are
// parsed once; subsequent calls return the same catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = load()
	})
	return defaultCatalog, defaultErr
}

func load() (*Catalog, error) {
	cat := &Catalog{byKey: make(map[string]*Material, len(entries))}
	for _, e := range entries {
		raw, err := dataFS.ReadFile(e.file)
		if err != nil {
			return nil, optics.NewDataUnavailableError(e.key, err)
		}
		rec, err := ParseLNK(bytes.NewReader(raw))
		if err != nil {
			return nil, optics.NewDataUnavailableError(e.key, fmt.Errorf("%s: %w", e.file, err))
		}
		cat.byKey[e.key] = &Material{
			Key:     e.key,
			Name:    e.name,
			Density: e.density,
			Record:  rec,
		}
	}
	return cat, nil
}

// Get returns the material for key. Unknown keys fail with a
// DATA_UNAVAILABLE error.
func (c *Catalog) Get(key string) (*Material, error) {
	m, ok := c.byKey[key]
	if !ok {
		return nil, optics.NewDataUnavailableError(key, nil)
	}
	return m, nil
}

// Keys returns all material keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all materials sorted by key.
func (c *Catalog) All() []*Material {
	out := make([]*Material, 0, len(c.byKey))
	for _, k := range c.Keys() {
		out = append(out, c.byKey[k])
	}
	return out
}
