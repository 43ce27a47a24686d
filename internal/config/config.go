// Package config loads conversion profiles from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
	"gopkg.in/yaml.v3"
)

// Profile holds the settings of a conversion run. Command line flags
// override it.
type Profile struct {
	DDS     DDS    `yaml:"dds"`
	Output  Output `yaml:"output"`
	Workers int    `yaml:"workers"`
}

type DDS struct {
	// Flags are dds flag names such as "force-rgb".
	Flags []string `yaml:"flags"`
}

type Output struct {
	// Format is rgba, bgra, bc1, bc3 or empty to keep the decoded
	// surfaces as they are.
	Format string `yaml:"format"`
	// Mips is the number of levels to build; 0 builds the full chain.
	Mips   int    `yaml:"mips"`
	Filter string `yaml:"filter"`
	// Ext picks the output codec.
	Ext string `yaml:"ext"`
	// PowerOfTwo rescales the base level to power of two edges after
	// dividing them by DownScale.
	PowerOfTwo bool `yaml:"power_of_two"`
	DownScale  int  `yaml:"downscale"`
	// EdgeAlpha is the minimum alpha faded in along the border.
	EdgeAlpha uint8 `yaml:"edge_alpha"`
}

func Default() Profile {
	return Profile{
		Output:  Output{Filter: "catmullrom", Ext: "dds"},
		Workers: runtime.NumCPU(),
	}
}

// Load reads a profile, filling unset values from Default.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %q: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile. Unknown keys are errors.
func Parse(r io.Reader) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, err
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	if p.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", p.Workers)
	}
	if p.Output.Mips < 0 {
		return fmt.Errorf("mips must not be negative, got %d", p.Output.Mips)
	}
	if p.Output.DownScale < 0 {
		return fmt.Errorf("downscale must not be negative, got %d", p.Output.DownScale)
	}
	if _, err := p.DDSFlags(); err != nil {
		return err
	}
	if _, err := p.OutputFormat(); err != nil {
		return err
	}
	if _, err := texture.Filter(p.Output.Filter); err != nil {
		return err
	}
	return nil
}

// Processors returns the adjustments to run on the base level, in order.
func (p Profile) Processors() ([]texture.Processor, error) {
	filter, err := texture.Filter(p.Output.Filter)
	if err != nil {
		return nil, err
	}
	var procs []texture.Processor
	if p.Output.PowerOfTwo {
		procs = append(procs, texture.PowerOfTwo{DownScale: p.Output.DownScale, Filter: filter})
	}
	if p.Output.EdgeAlpha > 0 {
		procs = append(procs, texture.EdgeAlpha{Minimum: p.Output.EdgeAlpha, Distance: edgeAlphaDistance})
	}
	return procs, nil
}

const edgeAlphaDistance = 32

// DDSFlags combines the named dds flags.
func (p Profile) DDSFlags() (dds.Flags, error) {
	var flags dds.Flags
	for _, name := range p.DDS.Flags {
		f, ok := dds.ParseFlag(strings.ToLower(name))
		if !ok {
			return 0, fmt.Errorf("unknown dds flag %q", name)
		}
		flags |= f
	}
	return flags, nil
}

// OutputFormat returns the pixel format to convert to, or Unknown to
// keep the decoded surfaces.
func (p Profile) OutputFormat() (pixfmt.Format, error) {
	return ParseFormat(p.Output.Format)
}

// ParseFormat accepts the short names rgba, bgra, bc1 and bc3 as well
// as full format names.
func ParseFormat(name string) (pixfmt.Format, error) {
	switch strings.ToLower(name) {
	case "":
		return pixfmt.Unknown, nil
	case "rgba":
		return pixfmt.R8G8B8A8_UNorm, nil
	case "bgra":
		return pixfmt.B8G8R8A8_UNorm, nil
	case "bc1", "dxt1":
		return pixfmt.BC1_UNorm, nil
	case "bc3", "dxt5":
		return pixfmt.BC3_UNorm, nil
	}
	if f, ok := pixfmt.Parse(name); ok {
		switch f {
		case pixfmt.R8G8B8A8_UNorm, pixfmt.B8G8R8A8_UNorm, pixfmt.BC1_UNorm, pixfmt.BC3_UNorm:
			return f, nil
		}
		return pixfmt.Unknown, fmt.Errorf("cannot convert to %s", f)
	}
	return pixfmt.Unknown, fmt.Errorf("unknown output format %q", name)
}
