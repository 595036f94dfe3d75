/*package config reads and validates the configuration files that
describe one diagnostics output request: how to coarsen fields and which
particle filters to apply.*/
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrewcombs/WarpX/lib/expr"
	"github.com/andrewcombs/WarpX/lib/filter"
	"github.com/andrewcombs/WarpX/lib/mesh"

	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `[Run]

# Number of threads used by the parallel loops. Set to -1 to use every
# core on the node.
Threads = -1

# Seed of the random stream used by the random particle filter. Runs with
# the same seed select the same particles, no matter how many threads are
# used.
Seed = 42

# Physical time of the snapshot in s. Filter expressions see this as 't'.
Time = 0.0

[Coarsen]

# Per-axis ratio between the fine grid the solver runs on and the coarse
# grid written to output. 1 means no coarsening along that axis.
Ratio = 2 2 2

# Number of ghost cells of the output field to fill.
Ghost = 0

# Number of field components to coarsen.
Components = 1

# Per-axis staggering of the source and destination fields: 0 for
# cell-centered data, 1 for nodal data.
SourceStaggering = 0 0 0
DestStaggering = 0 0 0

[Filter]

# Select each particle with probability Fraction.
Random = false
Fraction = 1.0

# Select one particle out of every Stride, by id.
Uniform = false
Stride = 1

# Select the particles inside the axis-aligned region spanning RegionLo
# to RegionHi, boundaries included. Positions are in m.
Geometry = false
RegionLo = 0 0 0
RegionHi = 1 1 1

# Select the particles for which Expression is nonzero. The expression
# sees t, x, y, z, ux, uy, and uz, with the momenta in beta*gamma units.
Parser = false
Expression = (ux*ux + uy*uy + uz*uz) > 0.25

# Species mass in kg, and whether the momenta stored with the particles
# are SI (mass*gamma*v) rather than the solver's native gamma*v. With SI
# momenta the mass is needed to convert to beta*gamma and must be
# positive.
Mass = 9.1093837015e-31
SIMomentum = false`

type RunConfig struct {
	Threads int
	Seed    int64
	Time    float64
}

type CoarsenConfig struct {
	Ratio            string
	Ghost            int
	Components       int
	SourceStaggering string
	DestStaggering   string
}

type FilterConfig struct {
	Random     bool
	Fraction   float64
	Uniform    bool
	Stride     int64
	Geometry   bool
	RegionLo   string
	RegionHi   string
	Parser     bool
	Expression string
	Mass       float64
	SIMomentum bool
}

// Config mirrors the sections of a configuration file before validation.
type Config struct {
	Run     RunConfig
	Coarsen CoarsenConfig
	Filter  FilterConfig
}

// Default returns the configuration used for every value the file leaves
// unset.
func Default() *Config {
	con := &Config{ }
	con.Run.Threads = -1
	con.Run.Seed = 42
	con.Coarsen.Ratio = "1 1 1"
	con.Coarsen.Components = 1
	con.Coarsen.SourceStaggering = "0 0 0"
	con.Coarsen.DestStaggering = "0 0 0"
	con.Filter.Fraction = 1.0
	con.Filter.Stride = 1
	con.Filter.Mass = 1.0
	return con
}

// Read reads and parses the configuration file fname.
func Read(fname string) (*Config, error) {
	con := Default()
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, fmt.Errorf("Could not parse the config file '%s': %v", fname, err)
	}
	return con, nil
}

// ReadString parses configuration text directly. It is mainly useful for
// tests.
func ReadString(text string) (*Config, error) {
	con := Default()
	if err := gcfg.ReadStringInto(con, text); err != nil {
		return nil, fmt.Errorf("Could not parse the config text: %v", err)
	}
	return con, nil
}

// Args is a validated, post-processed Config, ready to hand to the
// coarsening loop and the filter pipeline.
type Args struct {
	Threads int
	Seed    uint64
	Time    float64

	Ratio         mesh.IntVect
	Ghost         int
	Components    int
	SrcStaggering mesh.IntVect
	DstStaggering mesh.IntVect

	Filters filter.FilterList
}

// Process validates the raw configuration and converts it to Args. Every
// error names the offending parameter.
func (con *Config) Process() (*Args, error) {
	args := &Args{
		Threads: con.Run.Threads,
		Seed: uint64(con.Run.Seed),
		Time: con.Run.Time,
		Ghost: con.Coarsen.Ghost,
		Components: con.Coarsen.Components,
	}

	var err error
	if args.Ratio, err = parseIntVect("Ratio", con.Coarsen.Ratio); err != nil {
		return nil, err
	}
	if !args.Ratio.IsRatio() {
		return nil, fmt.Errorf("Ratio is %d, but must be a positive integer on every axis.", args.Ratio)
	}
	if args.SrcStaggering, err = parseIntVect("SourceStaggering", con.Coarsen.SourceStaggering); err != nil {
		return nil, err
	}
	if args.DstStaggering, err = parseIntVect("DestStaggering", con.Coarsen.DestStaggering); err != nil {
		return nil, err
	}
	if !args.SrcStaggering.IsStaggering() || !args.DstStaggering.IsStaggering() {
		return nil, fmt.Errorf("SourceStaggering and DestStaggering must be 0 or 1 on every axis, but are %d and %d.", args.SrcStaggering, args.DstStaggering)
	}
	if con.Coarsen.Ghost < 0 {
		return nil, fmt.Errorf("Ghost is %d, but must be non-negative.", con.Coarsen.Ghost)
	}
	if con.Coarsen.Components < 1 {
		return nil, fmt.Errorf("Components is %d, but must be at least 1.", con.Coarsen.Components)
	}

	if args.Filters, err = con.filters(); err != nil {
		return nil, err
	}
	return args, nil
}

// filters builds the filter pipeline described by the [Filter] section.
// The filters are appended in a fixed order: random, uniform, geometry,
// parser.
func (con *Config) filters() (filter.FilterList, error) {
	fl := filter.FilterList{ }

	random, err := filter.NewRandomFilter(con.Filter.Random, con.Filter.Fraction)
	if err != nil {
		return nil, fmt.Errorf("Fraction is invalid: %v", err)
	}
	fl = append(fl, random)

	uniform, err := filter.NewUniformFilter(con.Filter.Uniform, con.Filter.Stride)
	if err != nil {
		return nil, fmt.Errorf("Stride is invalid: %v", err)
	}
	fl = append(fl, uniform)

	lo, err := parseRealVect("RegionLo", con.Filter.RegionLo, con.Filter.Geometry)
	if err != nil { return nil, err }
	hi, err := parseRealVect("RegionHi", con.Filter.RegionHi, con.Filter.Geometry)
	if err != nil { return nil, err }
	if con.Filter.Geometry {
		for l := 0; l < 3; l++ {
			if lo[l] > hi[l] {
				return nil, fmt.Errorf("RegionLo is %g on axis %d, which is above RegionHi = %g.", lo[l], l, hi[l])
			}
		}
	}
	fl = append(fl, filter.NewGeometryFilter(con.Filter.Geometry, mesh.NewRealBox(lo, hi)))

	if con.Filter.Parser {
		if strings.TrimSpace(con.Filter.Expression) == "" {
			return nil, fmt.Errorf("Parser is set, but Expression is empty.")
		}
		f, err := expr.Compile(con.Filter.Expression)
		if err != nil {
			return nil, fmt.Errorf("Expression is invalid: %v", err)
		}
		units := filter.NativeUnits
		if con.Filter.SIMomentum { units = filter.SIUnits }
		parser, err := filter.NewParserFilter(true, f, con.Filter.Mass, units, con.Run.Time)
		if err != nil {
			return nil, fmt.Errorf("Mass is invalid: %v", err)
		}
		fl = append(fl, parser)
	}

	return fl, nil
}

// parseIntVect parses a whitespace-separated triplet of integers, e.g.
// "2 2 2".
func parseIntVect(name, text string) (mesh.IntVect, error) {
	tok := strings.Fields(text)
	if len(tok) != 3 {
		return mesh.IntVect{ }, fmt.Errorf("%s is '%s', but must be three whitespace-separated integers.", name, text)
	}
	v := mesh.IntVect{ }
	for l := 0; l < 3; l++ {
		n, err := strconv.Atoi(tok[l])
		if err != nil {
			return mesh.IntVect{ }, fmt.Errorf("%s is '%s', but component %d is not an integer.", name, text, l)
		}
		v[l] = n
	}
	return v, nil
}

// parseRealVect parses a whitespace-separated triplet of reals. When the
// owning filter is inactive an empty string is allowed, since the value
// will never be read.
func parseRealVect(name, text string, required bool) ([3]float64, error) {
	if !required && strings.TrimSpace(text) == "" {
		return [3]float64{ }, nil
	}
	tok := strings.Fields(text)
	if len(tok) != 3 {
		return [3]float64{ }, fmt.Errorf("%s is '%s', but must be three whitespace-separated numbers.", name, text)
	}
	v := [3]float64{ }
	for l := 0; l < 3; l++ {
		x, err := strconv.ParseFloat(tok[l], 64)
		if err != nil {
			return [3]float64{ }, fmt.Errorf("%s is '%s', but component %d is not a number.", name, text, l)
		}
		v[l] = x
	}
	return v, nil
}
