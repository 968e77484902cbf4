package cortexm_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"gecko/cortexm"
	"gecko/device/efm32gg"
	"gecko/sim"
)

func TestSysTickReload(t *testing.T) {
	testCases := []struct {
		coreClock, rate uint32
		reload          uint32
		err             error
	}{
		{48000000, 1000, 47999, nil},
		{14000000, 1000, 13999, nil},
		{32768, 1000, 31, nil},
		{48000000, 1, 0, cortexm.ErrTickRate},
		{1000, 0, 0, cortexm.ErrTickRate},
		{100, 1000, 0, cortexm.ErrTickRate},
	}

	for _, tc := range testCases {
		reload, err := cortexm.SysTickReload(tc.coreClock, tc.rate)
		if tc.err != nil {
			qt.Check(t, err, qt.ErrorIs, tc.err)
			continue
		}
		qt.Check(t, err, qt.IsNil)
		qt.Check(t, reload, qt.Equals, tc.reload)
	}
}

func TestConfigureSysTick(t *testing.T) {
	c := qt.New(t)
	d := sim.New()

	c.Assert(cortexm.ConfigureSysTick(d, 48000000, 1000), qt.IsNil)
	c.Assert(d.Peek(efm32gg.SYSTICK_LOAD), qt.Equals, uint32(47999))
	c.Assert(d.Peek(efm32gg.SYSTICK_CTRL), qt.Equals, uint32(0x7))

	cortexm.StopSysTick(d)
	c.Assert(d.Peek(efm32gg.SYSTICK_CTRL), qt.Equals, uint32(0))
}

func TestEnableIRQ(t *testing.T) {
	c := qt.New(t)
	d := sim.New()

	cortexm.EnableIRQ(d, efm32gg.UART0_RX_IRQn)
	c.Assert(d.Writes(), qt.DeepEquals, []sim.Write{
		{Addr: efm32gg.NVIC_ICPR0, Value: 1 << 20},
		{Addr: efm32gg.NVIC_ISER0, Value: 1 << 20},
	})

	cortexm.DisableIRQ(d, efm32gg.GPIO_ODD_IRQn)
	c.Assert(d.Peek(efm32gg.NVIC_ICER0), qt.Equals, uint32(1<<11))
}
