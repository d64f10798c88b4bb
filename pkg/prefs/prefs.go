// Package prefs loads the preference file of the geometry utilities:
// the decimal precision used for vertex snapping and comparison
// rounding, and the kernel construction tolerance. Preferences are
// plain values handed to constructors; nothing reads them globally.
package prefs

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/tessadri/facekit/pkg/vecutil"
)

// Prefs holds the tunable knobs of the geometry utilities.
type Prefs struct {
	// Precision is the number of decimal digits coordinates are
	// snapped to and deviations are rounded to.
	Precision int `toml:"precision"`
	// Tolerance bounds planarity deviation and degeneracy in kernel
	// construction.
	Tolerance float64 `toml:"tolerance"`
}

// Default returns the suite defaults.
func Default() Prefs {
	return Prefs{
		Precision: vecutil.Precision,
		Tolerance: 1e-7,
	}
}

// Load reads a TOML preference file. A missing file yields the
// defaults; keys absent from the file keep their default values. A
// malformed file is an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("reading preferences: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parsing preferences: %w", err)
	}
	return p, nil
}

// Save writes the preferences to path as TOML.
func (p Prefs) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
