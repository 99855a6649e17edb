// Package display defines the pluggable frontend contract and a
// registry display backends install themselves into from their own
// init(), the way the teacher's drivers do. cmd/dmgcore picks one by
// name at startup; it never imports a backend package directly, only
// the backend packages it blank-imports for their side-effecting
// Install call.
package display

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/dmgcore/dmgcore/internal/gameboy"
)

// Driver is a frontend: it owns a window/terminal/socket and pumps
// input events into the running machine until Stop is called or the
// user closes it.
type Driver interface {
	Start(gb *gameboy.GameBoy) error
	Stop() error
}

// Option describes one CLI flag a driver wants registered on its
// behalf, keyed by a short name the driver also uses to read the
// value back out of its own Value pointer.
type Option struct {
	Name        string
	Default     any
	Value       any // *string, *bool, or *float64
	Description string
	Type        string // "string", "bool", "float"
}

type installed struct {
	name    string
	options []Option
	driver  Driver
}

var installedDrivers []*installed

// Install registers a driver under name. Backend packages call this
// from their own init().
func Install(name string, driver Driver, options []Option) {
	installedDrivers = append(installedDrivers, &installed{name: name, options: options, driver: driver})
}

// GetDriver returns the installed driver with the given name, "auto"
// for the first one installed, or nil if none match.
func GetDriver(name string) Driver {
	if len(installedDrivers) == 0 {
		return nil
	}
	if name == "auto" {
		return installedDrivers[0].driver
	}
	for _, d := range installedDrivers {
		if d.name == name {
			return d.driver
		}
	}
	return nil
}

// Names lists every installed driver name, for the CLI's usage text.
func Names() []string {
	names := make([]string, len(installedDrivers))
	for i, d := range installedDrivers {
		names[i] = d.name
	}
	return names
}

// RegisterFlags registers a `-<driver>-<option>` flag for every
// driver option, except when two different drivers expose an option
// of the same name, in which case a single shared flag fans its value
// out to every driver that declared it (e.g. `-scale` instead of
// `-sdl-scale` and `-fyne-scale`).
func RegisterFlags() {
	counts := make(map[string]int)
	byName := make(map[string][]Option)
	owner := make(map[*Option]string)

	for _, d := range installedDrivers {
		for i := range d.options {
			opt := &d.options[i]
			counts[opt.Name]++
			byName[opt.Name] = append(byName[opt.Name], *opt)
			owner[opt] = d.name
		}
	}

	for name, group := range byName {
		if len(group) > 1 {
			registerShared(name, group)
			continue
		}
		opt := group[0]
		flagName := fmt.Sprintf("%s-%s", ownerOf(name), opt.Name)
		registerOne(flagName, opt)
	}
}

func ownerOf(optName string) string {
	for _, d := range installedDrivers {
		for _, opt := range d.options {
			if opt.Name == optName {
				return d.name
			}
		}
	}
	return ""
}

func registerOne(flagName string, opt Option) {
	switch opt.Type {
	case "string":
		flag.StringVar(opt.Value.(*string), flagName, opt.Default.(string), opt.Description)
	case "bool":
		flag.BoolVar(opt.Value.(*bool), flagName, opt.Default.(bool), opt.Description)
	case "float":
		flag.Float64Var(opt.Value.(*float64), flagName, opt.Default.(float64), opt.Description)
	}
}

// registerShared installs one flag.Var that fans a single parsed
// value out to every driver's copy of an option with this name.
func registerShared(name string, group []Option) {
	m := &multiValue{kind: group[0].Type}
	for _, opt := range group {
		m.targets = append(m.targets, opt.Value)
	}
	flag.Var(m, name, group[0].Description)
}

type multiValue struct {
	kind    string
	targets []any
}

func (m *multiValue) String() string { return "" }

func (m *multiValue) Set(value string) error {
	for _, ptr := range m.targets {
		switch m.kind {
		case "string":
			*ptr.(*string) = value
		case "bool":
			*ptr.(*bool) = true
		case "float":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*ptr.(*float64) = f
		default:
			return fmt.Errorf("display: unsupported flag type %q", m.kind)
		}
	}
	return nil
}

func (m *multiValue) IsBoolFlag() bool { return m.kind == "bool" }
