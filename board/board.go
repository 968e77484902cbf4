// Package board holds the board profiles used by the host tools: crystal
// frequencies, LED, button and UART wiring, and the default clock setup.
// Built-in profiles are embedded from boards.yaml.
package board

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"gecko/cmu"
	"gecko/gpio"
)

//go:embed boards.yaml
var rawBoards []byte

var (
	ErrUnknownBoard = errors.New("unknown board")
	ErrInvalid      = errors.New("invalid board profile")
)

// Defaults applied to missing profile fields
const (
	DefaultChip     = "EFM32GG990F1024"
	DefaultProdRev  = 19
	DefaultBaud     = 115200
	DefaultLocation = 1
	DefaultSource   = "hfrco14"
)

// Profile describes one board.
type Profile struct {
	Name          string      `yaml:"name"`
	Description   string      `yaml:"description"`
	Chip          string      `yaml:"chip"`
	ProdRev       uint8       `yaml:"prodRev"`
	HFXOFrequency uint32      `yaml:"hfxoFrequency"`
	LFXOFrequency uint32      `yaml:"lfxoFrequency"`
	LEDs          []string    `yaml:"leds"`
	Buttons       []string    `yaml:"buttons"`
	UART          UARTConfig  `yaml:"uart"`
	Clock         ClockConfig `yaml:"clock"`
}

// UARTConfig is the console UART setup.
type UARTConfig struct {
	Baud     uint32 `yaml:"baud"`
	Location uint8  `yaml:"location"`
}

// ClockConfig is the clock tree requested at startup.
type ClockConfig struct {
	Source  string `yaml:"source"`
	HClkDiv uint32 `yaml:"hclkDiv"`
	CoreDiv uint32 `yaml:"coreDiv"`
}

var profiles map[string]Profile

// Parse decodes a YAML document with a top level "boards" list, applies
// defaults and validates every profile.
func Parse(data []byte) ([]Profile, error) {
	var doc struct {
		Boards []Profile `yaml:"boards"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse boards: %w", err)
	}

	seen := make(map[string]bool)
	for i := range doc.Boards {
		p := &doc.Boards[i]
		applyDefaults(p)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate board %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
	}
	return doc.Boards, nil
}

// applyDefaults fills in missing profile values with sensible defaults
func applyDefaults(p *Profile) {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Chip == "" {
		p.Chip = DefaultChip
	}
	if p.ProdRev == 0 {
		p.ProdRev = DefaultProdRev
	}
	if p.HFXOFrequency == 0 {
		p.HFXOFrequency = cmu.DefaultHFXOFrequency
	}
	if p.LFXOFrequency == 0 {
		p.LFXOFrequency = cmu.DefaultLFXOFrequency
	}

	if p.UART.Baud == 0 {
		p.UART.Baud = DefaultBaud
	}
	if p.UART.Location == 0 {
		p.UART.Location = DefaultLocation
	}

	if p.Clock.Source == "" {
		p.Clock.Source = DefaultSource
	}
	if p.Clock.HClkDiv == 0 {
		p.Clock.HClkDiv = 1
	}
	if p.Clock.CoreDiv == 0 {
		p.Clock.CoreDiv = 1
	}
}

// Validate checks the clock source and pin names.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if _, err := p.ClockSource(); err != nil {
		return err
	}
	for _, pins := range [][]string{p.LEDs, p.Buttons} {
		for _, s := range pins {
			if _, err := ParsePin(s); err != nil {
				return fmt.Errorf("%w: board %s: %v", ErrInvalid, p.Name, err)
			}
		}
	}
	return nil
}

// ClockSource returns the startup clock source.
func (p Profile) ClockSource() (cmu.Source, error) {
	src, ok := cmu.ParseSource(p.Clock.Source)
	if !ok {
		return cmu.None, fmt.Errorf("%w: board %s: clock source %q", ErrInvalid, p.Name, p.Clock.Source)
	}
	return src, nil
}

// Options returns the controller options matching the board's crystals.
func (p Profile) Options() []cmu.Option {
	return []cmu.Option{
		cmu.WithHFXOFrequency(p.HFXOFrequency),
		cmu.WithLFXOFrequency(p.LFXOFrequency),
	}
}

// LEDPins returns the LED pins. The profile must be valid.
func (p Profile) LEDPins() []gpio.Pin {
	return mustPins(p.LEDs)
}

// ButtonPins returns the button pins. The profile must be valid.
func (p Profile) ButtonPins() []gpio.Pin {
	return mustPins(p.Buttons)
}

func mustPins(names []string) []gpio.Pin {
	pins := make([]gpio.Pin, 0, len(names))
	for _, s := range names {
		pin, err := ParsePin(s)
		if err != nil {
			panic(err)
		}
		pins = append(pins, pin)
	}
	return pins
}

// ParsePin parses a pin name such as "PE2" or "pb10".
func ParsePin(s string) (gpio.Pin, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 || s[0] != 'P' || s[1] < 'A' || s[1] > 'F' {
		return gpio.Pin{}, fmt.Errorf("bad pin name %q", s)
	}
	n, err := strconv.ParseUint(s[2:], 10, 8)
	if err != nil || n > 15 {
		return gpio.Pin{}, fmt.Errorf("bad pin number in %q", s)
	}
	return gpio.Pin{Port: gpio.Port(s[1] - 'A'), Num: uint8(n)}, nil
}

// Lookup returns the built-in profile called name.
func Lookup(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownBoard, name)
	}
	return p, nil
}

// Names returns the built-in profile names in sorted order.
func Names() []string {
	names := maps.Keys(profiles)
	slices.Sort(names)
	return names
}

func init() {
	boards, err := Parse(rawBoards)
	if err != nil {
		panic(err)
	}
	profiles = make(map[string]Profile, len(boards))
	for _, p := range boards {
		profiles[p.Name] = p
	}
}
