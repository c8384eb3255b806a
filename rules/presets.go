package rules

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

const defaultPreset = "default"

var (
	catalogOnce sync.Once
	catalog     map[string][]byte
	catalogErr  error
)

// loadCatalog splits the embedded catalog into one re-encoded document per
// preset, so that each preset can go through the strict decoder on its own.
func loadCatalog() (map[string][]byte, error) {
	catalogOnce.Do(func() {
		var nodes map[string]yaml.Node
		if err := yaml.Unmarshal(presetsYAML, &nodes); err != nil {
			catalogErr = fmt.Errorf("preset catalog: %w", err)
			return
		}
		catalog = make(map[string][]byte, len(nodes))
		for name, n := range nodes {
			b, err := yaml.Marshal(&n)
			if err != nil {
				catalogErr = fmt.Errorf("preset %s: %w", name, err)
				return
			}
			catalog[name] = b
		}
	})
	return catalog, catalogErr
}

func defaultDocument() (*document, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	d := &document{}
	if err := d.decode(c[defaultPreset]); err != nil {
		return nil, fmt.Errorf("preset %s: %w", defaultPreset, err)
	}
	return d, nil
}

// FromPreset returns the rules of a named variant such as "klondike" or
// "free-cell".
func FromPreset(name string) (Rules, error) {
	c, err := loadCatalog()
	if err != nil {
		return Rules{}, err
	}
	data, ok := c[name]
	if !ok {
		return Rules{}, fmt.Errorf("%w: no preset named %q", ErrInvalidRules, name)
	}
	d, err := defaultDocument()
	if err != nil {
		return Rules{}, err
	}
	if err := d.decode(data); err != nil {
		return Rules{}, fmt.Errorf("preset %s: %w", name, err)
	}
	return d.rules()
}

// MustPreset is FromPreset for names known to exist.
func MustPreset(name string) Rules {
	r, err := FromPreset(name)
	if err != nil {
		panic(err)
	}
	return r
}

// PresetNames lists the preset names in sorted order. Small presets used by
// tests start with "-test-" and are listed last.
func PresetNames() []string {
	c, err := loadCatalog()
	if err != nil {
		return nil
	}
	names := lo.Keys(c)
	slices.SortFunc(names, func(a, b string) int {
		ta, tb := isTestPreset(a), isTestPreset(b)
		switch {
		case ta && !tb:
			return 1
		case tb && !ta:
			return -1
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return names
}

func isTestPreset(name string) bool {
	return len(name) > 0 && name[0] == '-'
}
