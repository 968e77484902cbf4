package sim

import "gecko/device/efm32gg"

const gpioPorts = 6 // A..F

// gpioPortReg splits a GPIO port register address into port number and
// register offset.
func gpioPortReg(addr uintptr) (port uint8, reg uintptr, ok bool) {
	if addr < efm32gg.GPIO_BASE || addr >= efm32gg.GPIO_BASE+gpioPorts*efm32gg.GPIO_PORT_STRIDE {
		return 0, 0, false
	}
	off := addr - efm32gg.GPIO_BASE
	return uint8(off / efm32gg.GPIO_PORT_STRIDE), off % efm32gg.GPIO_PORT_STRIDE, true
}

func (d *Device) setGPIO(addr uintptr, value uint32) bool {
	switch addr {
	case efm32gg.GPIO_IFC:
		d.regs[efm32gg.GPIO_IF] &^= value
		return true
	case efm32gg.GPIO_IFS:
		d.regs[efm32gg.GPIO_IF] |= value
		return true
	}

	port, reg, ok := gpioPortReg(addr)
	if !ok {
		return false
	}
	dout := efm32gg.GPIOPort(port, efm32gg.GPIO_P_DOUT)
	switch reg {
	case efm32gg.GPIO_P_DOUTSET:
		d.regs[dout] |= value
	case efm32gg.GPIO_P_DOUTCLR:
		d.regs[dout] &^= value
	case efm32gg.GPIO_P_DOUTTGL:
		d.regs[dout] ^= value
	case efm32gg.GPIO_P_DIN:
		// read only
	default:
		return false
	}
	return true
}

// SetInput drives an input pin. A level change raises the pin's external
// interrupt flag when the pin is routed to the port in EXTIPSEL and the
// matching edge is enabled in EXTIRISE/EXTIFALL.
func (d *Device) SetInput(port, pin uint8, high bool) {
	din := efm32gg.GPIOPort(port, efm32gg.GPIO_P_DIN)
	old := d.regs[din]
	bit := uint32(1) << pin
	next := old &^ bit
	if high {
		next |= bit
	}
	d.regs[din] = next
	if old == next {
		return
	}

	selReg, shift := efm32gg.GPIO_EXTIPSELL, uint32(pin)*4
	if pin >= 8 {
		selReg, shift = efm32gg.GPIO_EXTIPSELH, uint32(pin-8)*4
	}
	if (d.regs[selReg]>>shift)&0x7 != uint32(port) {
		return
	}
	rising := high && d.regs[efm32gg.GPIO_EXTIRISE]&bit != 0
	falling := !high && d.regs[efm32gg.GPIO_EXTIFALL]&bit != 0
	if rising || falling {
		d.regs[efm32gg.GPIO_IF] |= bit
	}
}

// Output returns the DOUT register of a port.
func (d *Device) Output(port uint8) uint32 {
	return d.regs[efm32gg.GPIOPort(port, efm32gg.GPIO_P_DOUT)]
}
