package sim

import "gecko/device/efm32gg"

func (d *Device) setUART(addr uintptr, value uint32) bool {
	switch addr {
	case efm32gg.UART0_TXDATA:
		if d.regs[efm32gg.UART0_STATUS]&efm32gg.UART_STATUS_TXENS != 0 {
			d.tx = append(d.tx, byte(value))
		}
	case efm32gg.UART0_CMD:
		status := d.regs[efm32gg.UART0_STATUS]
		if value&efm32gg.UART_CMD_TXEN != 0 {
			status |= efm32gg.UART_STATUS_TXENS
		}
		if value&efm32gg.UART_CMD_TXDIS != 0 {
			status &^= efm32gg.UART_STATUS_TXENS
		}
		if value&efm32gg.UART_CMD_RXEN != 0 {
			status |= efm32gg.UART_STATUS_RXENS
		}
		if value&efm32gg.UART_CMD_RXDIS != 0 {
			status &^= efm32gg.UART_STATUS_RXENS
		}
		if value&efm32gg.UART_CMD_CLEARRX != 0 {
			d.rx = nil
		}
		d.regs[efm32gg.UART0_STATUS] = status
	case efm32gg.UART0_IFC:
		d.regs[efm32gg.UART0_IF] &^= value
	case efm32gg.UART0_STATUS, efm32gg.UART0_RXDATA:
		// read only
	default:
		return false
	}
	return true
}

// Transmitted returns the bytes written to UART0 TXDATA while the
// transmitter was enabled.
func (d *Device) Transmitted() []byte {
	return append([]byte(nil), d.tx...)
}

// Receive queues bytes on the UART0 receiver and raises RXDATAV.
// Bytes are dropped while the receiver is disabled.
func (d *Device) Receive(data ...byte) {
	if d.regs[efm32gg.UART0_STATUS]&efm32gg.UART_STATUS_RXENS == 0 {
		return
	}
	d.rx = append(d.rx, data...)
	if len(d.rx) > 0 {
		d.regs[efm32gg.UART0_IF] |= efm32gg.UART_IF_RXDATAV
	}
}

func (d *Device) uartStatus() uint32 {
	status := d.regs[efm32gg.UART0_STATUS]
	if status&efm32gg.UART_STATUS_TXENS != 0 {
		status |= efm32gg.UART_STATUS_TXBL | efm32gg.UART_STATUS_TXC
	}
	if len(d.rx) > 0 {
		status |= efm32gg.UART_STATUS_RXDATAV
	}
	return status
}

func (d *Device) uartPop() uint32 {
	if len(d.rx) == 0 {
		return 0
	}
	b := d.rx[0]
	d.rx = d.rx[1:]
	if len(d.rx) == 0 {
		d.regs[efm32gg.UART0_IF] &^= efm32gg.UART_IF_RXDATAV
	}
	return uint32(b)
}
