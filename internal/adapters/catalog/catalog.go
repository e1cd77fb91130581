package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
	"github.com/koussay97/space-travel-TSP/internal/infrastructure/config"
)

// Booster preset names shipped with the built-in catalog
const (
	PresetExtreme   = "extreme"
	PresetRealistic = "realistic"
	PresetMinimal   = "minimal"
)

// DefaultPresets is the order scenarios run in when none are named
var DefaultPresets = []string{PresetExtreme, PresetRealistic, PresetMinimal}

//go:embed builtin.yaml
var builtinDocument []byte

// Document is the YAML shape of a catalog file
type Document struct {
	Bodies   []BodyDocument    `yaml:"bodies" validate:"required,min=1,dive"`
	Presets  []PresetDocument  `yaml:"presets" validate:"dive"`
	Vehicles []VehicleDocument `yaml:"vehicles" validate:"required,min=1,dive"`
}

type BodyDocument struct {
	Name       string  `yaml:"name" validate:"required,canonical_body"`
	Gravity    float64 `yaml:"gravity" validate:"gt=0"`
	Distance   float64 `yaml:"distance" validate:"gte=0"`
	Atmosphere float64 `yaml:"atmosphere" validate:"gte=0"`
}

type PresetDocument struct {
	Name         string             `yaml:"name" validate:"required"`
	LaunchAssist map[string]float64 `yaml:"launch_assist" validate:"required,dive,keys,canonical_body,endkeys,gte=0"`
}

type VehicleDocument struct {
	Name   string             `yaml:"name" validate:"required"`
	Mass   float64            `yaml:"mass" validate:"gt=0"`
	Thrust float64            `yaml:"thrust" validate:"gt=0"`
	Drag   map[string]float64 `yaml:"drag" validate:"required"`
}

// Catalog holds validated body constants, booster presets and vehicles.
// Bodies are stored without launch assist; a preset supplies it per scenario.
type Catalog struct {
	bodies   []shared.Body
	presets  map[string]map[string]float64
	order    []string
	vehicles []*fleet.Vehicle
}

// Builtin returns the canonical ten bodies, the extreme, realistic and
// minimal presets, and the nine built-in vehicles.
// It panics if the embedded document is invalid, which tests rule out.
func Builtin() *Catalog {
	c, err := Parse(bytes.NewReader(builtinDocument))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog document from disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, validates and builds a catalog.
// Unknown YAML fields are rejected. Tag validation runs first, then every
// body and vehicle goes through its domain constructor.
func Parse(r io.Reader) (*Catalog, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewConfigurationError("catalog", "document is empty")
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := config.NewValidator().Validate(&doc); err != nil {
		return nil, shared.NewConfigurationError("catalog", err.Error())
	}

	return build(&doc)
}

func build(doc *Document) (*Catalog, error) {
	c := &Catalog{
		presets: make(map[string]map[string]float64, len(doc.Presets)),
	}

	seen := make(map[string]bool, len(doc.Bodies))
	for _, b := range doc.Bodies {
		if seen[b.Name] {
			return nil, shared.NewConfigurationError("body", fmt.Sprintf("duplicate body name %q", b.Name))
		}
		seen[b.Name] = true

		body, err := shared.NewBody(b.Name, b.Gravity, b.Distance, b.Atmosphere, 0)
		if err != nil {
			return nil, err
		}
		c.bodies = append(c.bodies, body)
	}

	for _, p := range doc.Presets {
		if _, dup := c.presets[p.Name]; dup {
			return nil, shared.NewConfigurationError("preset", fmt.Sprintf("duplicate preset name %q", p.Name))
		}
		for body := range p.LaunchAssist {
			if !seen[body] {
				return nil, shared.NewConfigurationError("preset",
					fmt.Sprintf("preset %s assigns launch assist to %s, which is not in the catalog", p.Name, body))
			}
		}
		assist := make(map[string]float64, len(p.LaunchAssist))
		for body, force := range p.LaunchAssist {
			assist[body] = force
		}
		c.presets[p.Name] = assist
		c.order = append(c.order, p.Name)
	}

	names := make(map[string]bool, len(doc.Vehicles))
	for _, v := range doc.Vehicles {
		if names[v.Name] {
			return nil, shared.NewConfigurationError("vehicle", fmt.Sprintf("duplicate vehicle name %q", v.Name))
		}
		names[v.Name] = true

		vehicle, err := fleet.NewVehicle(v.Name, v.Mass, v.Thrust, v.Drag)
		if err != nil {
			return nil, err
		}
		c.vehicles = append(c.vehicles, vehicle)
	}

	return c, nil
}

// Bodies returns the catalog bodies with the preset's launch assist applied.
// An empty preset name yields bodies without any ground-station assist;
// bodies a preset does not mention get zero assist.
func (c *Catalog) Bodies(preset string) ([]shared.Body, error) {
	var assist map[string]float64
	if preset != "" {
		var ok bool
		assist, ok = c.presets[preset]
		if !ok {
			return nil, shared.NewConfigurationError("preset",
				fmt.Sprintf("%q is not one of %v", preset, c.order))
		}
	}

	bodies := make([]shared.Body, len(c.bodies))
	for i, body := range c.bodies {
		withAssist, err := body.WithLaunchAssist(assist[body.Name()])
		if err != nil {
			return nil, err
		}
		bodies[i] = withAssist
	}
	return bodies, nil
}

// Presets returns preset names in document order
func (c *Catalog) Presets() []string {
	return append([]string(nil), c.order...)
}

// HasPreset checks if a preset name is defined
func (c *Catalog) HasPreset(name string) bool {
	_, ok := c.presets[name]
	return ok
}

// LaunchAssist returns a copy of a preset's assist table
func (c *Catalog) LaunchAssist(preset string) (map[string]float64, bool) {
	assist, ok := c.presets[preset]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(assist))
	for body, force := range assist {
		out[body] = force
	}
	return out, true
}

// Vehicles returns the vehicles in document order
func (c *Catalog) Vehicles() []*fleet.Vehicle {
	return append([]*fleet.Vehicle(nil), c.vehicles...)
}

// Vehicle returns a vehicle by name
func (c *Catalog) Vehicle(name string) (*fleet.Vehicle, error) {
	return fleet.FindVehicle(c.vehicles, name)
}

// VehicleNames returns all vehicle names sorted alphabetically
func (c *Catalog) VehicleNames() []string {
	names := fleet.VehicleNames(c.vehicles)
	sort.Strings(names)
	return names
}
