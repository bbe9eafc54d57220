// Package chartfile reads and writes chart records on disk.
//
// A chart file holds a name, an optional birth moment and location, and a
// list of body placements. YAML, TOML and JSON are accepted; the format is
// chosen by file extension.
package chartfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("chartfile: unsupported format")

// Format identifies an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor returns the format implied by a path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Chart is a decoded chart file.
type Chart struct {
	Name      string
	Born      time.Time // zero when the file omits it
	Observer  astro.Observer
	Positions []chart.Position
}

// file is the shared on-disk shape.
type file struct {
	Name     string     `yaml:"name" toml:"name" json:"name"`
	Born     string     `yaml:"born,omitempty" toml:"born,omitempty" json:"born,omitempty"`
	Location location   `yaml:"location" toml:"location" json:"location"`
	Bodies   []bodyLine `yaml:"bodies" toml:"bodies" json:"bodies"`
}

type location struct {
	Lat  float64 `yaml:"lat" toml:"lat" json:"lat"`
	Lon  float64 `yaml:"lon" toml:"lon" json:"lon"`
	Name string  `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
}

type bodyLine struct {
	Name       string  `yaml:"name" toml:"name" json:"name"`
	Degree     float64 `yaml:"degree" toml:"degree" json:"degree"`
	Retrograde bool    `yaml:"retrograde,omitempty" toml:"retrograde,omitempty" json:"retrograde,omitempty"`
	House      int     `yaml:"house,omitempty" toml:"house,omitempty" json:"house,omitempty"`
}

// Load reads a chart file, decoding by extension.
func Load(path string) (*Chart, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart file: %w", err)
	}

	c, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse chart file %s: %w", filepath.Base(path), err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Decode parses chart data in the given format.
func Decode(data []byte, format Format) (*Chart, error) {
	var f file
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return f.toChart()
}

func (f file) toChart() (*Chart, error) {
	c := &Chart{
		Name: f.Name,
		Observer: astro.Observer{
			LatDeg: f.Location.Lat,
			LonDeg: f.Location.Lon,
			Name:   f.Location.Name,
		},
		Positions: make([]chart.Position, 0, len(f.Bodies)),
	}

	if f.Born != "" {
		born, err := time.Parse(time.RFC3339, f.Born)
		if err != nil {
			return nil, fmt.Errorf("born: %w", err)
		}
		c.Born = born
	}

	if f.Location.Lat < -90 || f.Location.Lat > 90 {
		return nil, fmt.Errorf("location: latitude %v out of range", f.Location.Lat)
	}

	for i, b := range f.Bodies {
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("bodies[%d]: missing name", i)
		}
		pos := chart.NewPosition(b.Name, b.Degree)
		pos.Retrograde = b.Retrograde
		pos.House = b.House
		c.Positions = append(c.Positions, pos)
	}
	return c, nil
}

// Encode renders a chart in the given format.
func Encode(c *Chart, format Format) ([]byte, error) {
	f := file{
		Name: c.Name,
		Location: location{
			Lat:  c.Observer.LatDeg,
			Lon:  c.Observer.LonDeg,
			Name: c.Observer.Name,
		},
		Bodies: make([]bodyLine, len(c.Positions)),
	}
	if !c.Born.IsZero() {
		f.Born = c.Born.Format(time.RFC3339)
	}
	for i, p := range c.Positions {
		f.Bodies[i] = bodyLine{
			Name:       p.Name,
			Degree:     p.AbsoluteDegree,
			Retrograde: p.Retrograde,
			House:      p.House,
		}
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		return toml.Marshal(f)
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes a chart, choosing the format by extension and creating
// parent directories as needed.
func Save(path string, c *Chart) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Encode(c, format)
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing chart file: %w", err)
	}
	return nil
}
