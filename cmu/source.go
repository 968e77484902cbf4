package cmu

import (
	"strings"

	"gecko/device/efm32gg"
)

// Source is an HFCLK clock source.
type Source uint8

const (
	None Source = iota
	HFRCO1MHz
	HFRCO7MHz
	HFRCO11MHz
	HFRCO14MHz
	HFRCO21MHz
	HFRCO28MHz
	LFRCO
	LFXO
	HFXO
)

// Fixed oscillator frequencies in Hz
const (
	LFRCOFrequency       = 32768
	DefaultLFXOFrequency = 32768
	DefaultHFXOFrequency = 48000000
	MaxCoreFrequency     = 48000000 // top of the operating frequency table
	revisionThreshold    = 19 // DEVINFO PROD_REV from which bands 1 and 7 run at 1.2/6.6 MHz
	maxHFClockDiv        = 8
	maxDivCode           = 9
)

var sourceNames = [...]string{
	None:       "none",
	HFRCO1MHz:  "hfrco1",
	HFRCO7MHz:  "hfrco7",
	HFRCO11MHz: "hfrco11",
	HFRCO14MHz: "hfrco14",
	HFRCO21MHz: "hfrco21",
	HFRCO28MHz: "hfrco28",
	LFRCO:      "lfrco",
	LFXO:       "lfxo",
	HFXO:       "hfxo",
}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "source(" + utoa(uint32(s)) + ")"
}

// Valid reports whether s names a selectable clock source.
func (s Source) Valid() bool {
	return s > None && s <= HFXO
}

// IsHFRCO reports whether s is one of the HFRCO bands.
func (s Source) IsHFRCO() bool {
	return s >= HFRCO1MHz && s <= HFRCO28MHz
}

// Sources lists every selectable source in enumeration order.
func Sources() []Source {
	return []Source{HFRCO1MHz, HFRCO7MHz, HFRCO11MHz, HFRCO14MHz, HFRCO21MHz, HFRCO28MHz, LFRCO, LFXO, HFXO}
}

// ParseSource returns the source named s (case insensitive, as printed by
// String). It returns None, false for unknown names.
func ParseSource(s string) (Source, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range sourceNames {
		if name == s && Source(i) != None {
			return Source(i), true
		}
	}
	return None, false
}

// band is one calibrated HFRCO frequency step.
type band struct {
	source  Source
	field   uint32  // CMU_HFRCOCTRL.BAND
	freq    uint32  // nominal frequency before the revision threshold
	revFreq uint32  // nominal frequency from the revision threshold on, 0 if unchanged
	cal     uintptr // DEVINFO calibration word
	calByte uint8   // byte of cal holding the tuning value
}

var bands = [...]band{
	{HFRCO1MHz, efm32gg.CMU_HFRCOCTRL_BAND_1MHZ, 1000000, 1200000, efm32gg.DEVINFO_HFRCOCAL0, 0},
	{HFRCO7MHz, efm32gg.CMU_HFRCOCTRL_BAND_7MHZ, 7000000, 6600000, efm32gg.DEVINFO_HFRCOCAL0, 1},
	{HFRCO11MHz, efm32gg.CMU_HFRCOCTRL_BAND_11MHZ, 11000000, 0, efm32gg.DEVINFO_HFRCOCAL0, 2},
	{HFRCO14MHz, efm32gg.CMU_HFRCOCTRL_BAND_14MHZ, 14000000, 0, efm32gg.DEVINFO_HFRCOCAL0, 3},
	{HFRCO21MHz, efm32gg.CMU_HFRCOCTRL_BAND_21MHZ, 21000000, 0, efm32gg.DEVINFO_HFRCOCAL1, 0},
	{HFRCO28MHz, efm32gg.CMU_HFRCOCTRL_BAND_28MHZ, 28000000, 0, efm32gg.DEVINFO_HFRCOCAL1, 1},
}

func bandOf(s Source) (band, bool) {
	for _, b := range bands {
		if b.source == s {
			return b, true
		}
	}
	return band{}, false
}

func bandByField(field uint32) (band, bool) {
	for _, b := range bands {
		if b.field == field {
			return b, true
		}
	}
	return band{}, false
}

// frequency returns the nominal band frequency for a production revision.
func (b band) frequency(rev uint8) uint32 {
	if rev >= revisionThreshold && b.revFreq != 0 {
		return b.revFreq
	}
	return b.freq
}

// NominalFrequency returns the nominal HFRCO frequency of source s on a
// part with production revision rev, or 0 if s is not an HFRCO band.
func NominalFrequency(s Source, rev uint8) uint32 {
	b, ok := bandOf(s)
	if !ok {
		return 0
	}
	return b.frequency(rev)
}

// crystal describes the enable/ready/select bits of a non-HFRCO source.
type crystal struct {
	enabled uint32 // CMU_STATUS *ENS
	enable  uint32 // CMU_OSCENCMD *EN
	ready   uint32 // CMU_STATUS *RDY
	sel     uint32 // CMU_CMD HFCLKSEL value
}

var crystals = map[Source]crystal{
	LFRCO: {efm32gg.CMU_STATUS_LFRCOENS, efm32gg.CMU_OSCENCMD_LFRCOEN, efm32gg.CMU_STATUS_LFRCORDY, efm32gg.CMU_CMD_HFCLKSEL_LFRCO},
	LFXO:  {efm32gg.CMU_STATUS_LFXOENS, efm32gg.CMU_OSCENCMD_LFXOEN, efm32gg.CMU_STATUS_LFXORDY, efm32gg.CMU_CMD_HFCLKSEL_LFXO},
	HFXO:  {efm32gg.CMU_STATUS_HFXOENS, efm32gg.CMU_OSCENCMD_HFXOEN, efm32gg.CMU_STATUS_HFXORDY, efm32gg.CMU_CMD_HFCLKSEL_HFXO},
}
