// Hand written file based on the Silicon Labs EFM32GG device headers
// (efm32gg_cmu.h, efm32gg_msc.h, efm32gg_devinfo.h, efm32gg_gpio.h, efm32gg_uart.h).
//
// Only the registers and fields used by this module are listed. Register
// constants are absolute addresses so they can be used directly with an
// mmio.Bus; field constants follow the vendor _Pos/_Msk convention.

package efm32gg

// Peripheral base addresses
const (
	MSC_BASE     uintptr = 0x400C0000
	CMU_BASE     uintptr = 0x400C8000
	GPIO_BASE    uintptr = 0x40006000
	UART0_BASE   uintptr = 0x4000E000
	DEVINFO_BASE uintptr = 0x0FE081B0
)

// CMU registers
const (
	CMU_CTRL         = CMU_BASE + 0x000
	CMU_HFCORECLKDIV = CMU_BASE + 0x004
	CMU_HFPERCLKDIV  = CMU_BASE + 0x008
	CMU_HFRCOCTRL    = CMU_BASE + 0x00C
	CMU_LFRCOCTRL    = CMU_BASE + 0x010
	CMU_OSCENCMD     = CMU_BASE + 0x020
	CMU_CMD          = CMU_BASE + 0x024
	CMU_STATUS       = CMU_BASE + 0x02C
	CMU_HFCORECLKEN0 = CMU_BASE + 0x040
	CMU_HFPERCLKEN0  = CMU_BASE + 0x044
	CMU_LOCK         = CMU_BASE + 0x084
)

// CMU_CTRL
const (
	CMU_CTRL_HFXOBUFCUR_Pos             = 5
	CMU_CTRL_HFXOBUFCUR_Msk             = 0x3 << CMU_CTRL_HFXOBUFCUR_Pos
	CMU_CTRL_HFXOBUFCUR_BOOSTUPTO32MHZ  = 0x1 << CMU_CTRL_HFXOBUFCUR_Pos
	CMU_CTRL_HFXOBUFCUR_BOOSTABOVE32MHZ = 0x3 << CMU_CTRL_HFXOBUFCUR_Pos
	CMU_CTRL_HFCLKDIV_Pos               = 14
	CMU_CTRL_HFCLKDIV_Msk               = 0x7 << CMU_CTRL_HFCLKDIV_Pos
	CMU_CTRL_HFLE_Pos                   = 30
	CMU_CTRL_HFLE                       = 0x1 << CMU_CTRL_HFLE_Pos
	CMU_CTRL_RESETVALUE                 = 0x000C262C
)

// CMU_HFCORECLKDIV
const (
	CMU_HFCORECLKDIV_HFCORECLKDIV_Pos = 0
	CMU_HFCORECLKDIV_HFCORECLKDIV_Msk = 0xF << CMU_HFCORECLKDIV_HFCORECLKDIV_Pos
	CMU_HFCORECLKDIV_HFCORECLKLEDIV   = 0x1 << 8
	CMU_HFCORECLKDIV_RESETVALUE       = 0x00000000
)

// CMU_HFPERCLKDIV
const (
	CMU_HFPERCLKDIV_HFPERCLKDIV_Pos = 0
	CMU_HFPERCLKDIV_HFPERCLKDIV_Msk = 0xF << CMU_HFPERCLKDIV_HFPERCLKDIV_Pos
	CMU_HFPERCLKDIV_HFPERCLKEN      = 0x1 << 8
	CMU_HFPERCLKDIV_RESETVALUE      = 0x00000100
)

// CMU_HFRCOCTRL
const (
	CMU_HFRCOCTRL_TUNING_Pos = 0
	CMU_HFRCOCTRL_TUNING_Msk = 0xFF << CMU_HFRCOCTRL_TUNING_Pos
	CMU_HFRCOCTRL_BAND_Pos   = 8
	CMU_HFRCOCTRL_BAND_Msk   = 0x7 << CMU_HFRCOCTRL_BAND_Pos
	CMU_HFRCOCTRL_BAND_1MHZ  = 0x0
	CMU_HFRCOCTRL_BAND_7MHZ  = 0x1
	CMU_HFRCOCTRL_BAND_11MHZ = 0x2
	CMU_HFRCOCTRL_BAND_14MHZ = 0x3
	CMU_HFRCOCTRL_BAND_21MHZ = 0x4
	CMU_HFRCOCTRL_BAND_28MHZ = 0x5
	CMU_HFRCOCTRL_RESETVALUE = 0x00000380
)

// CMU_OSCENCMD
const (
	CMU_OSCENCMD_HFRCOEN  = 0x1 << 0
	CMU_OSCENCMD_HFRCODIS = 0x1 << 1
	CMU_OSCENCMD_HFXOEN   = 0x1 << 2
	CMU_OSCENCMD_HFXODIS  = 0x1 << 3
	CMU_OSCENCMD_LFRCOEN  = 0x1 << 6
	CMU_OSCENCMD_LFRCODIS = 0x1 << 7
	CMU_OSCENCMD_LFXOEN   = 0x1 << 8
	CMU_OSCENCMD_LFXODIS  = 0x1 << 9
)

// CMU_CMD
const (
	CMU_CMD_HFCLKSEL_Pos   = 0
	CMU_CMD_HFCLKSEL_Msk   = 0x7 << CMU_CMD_HFCLKSEL_Pos
	CMU_CMD_HFCLKSEL_HFRCO = 0x1
	CMU_CMD_HFCLKSEL_HFXO  = 0x2
	CMU_CMD_HFCLKSEL_LFRCO = 0x3
	CMU_CMD_HFCLKSEL_LFXO  = 0x4
)

// CMU_STATUS
const (
	CMU_STATUS_HFRCOENS   = 0x1 << 0
	CMU_STATUS_HFRCORDY   = 0x1 << 1
	CMU_STATUS_HFXOENS    = 0x1 << 2
	CMU_STATUS_HFXORDY    = 0x1 << 3
	CMU_STATUS_LFRCOENS   = 0x1 << 6
	CMU_STATUS_LFRCORDY   = 0x1 << 7
	CMU_STATUS_LFXOENS    = 0x1 << 8
	CMU_STATUS_LFXORDY    = 0x1 << 9
	CMU_STATUS_HFRCOSEL   = 0x1 << 10
	CMU_STATUS_HFXOSEL    = 0x1 << 11
	CMU_STATUS_LFRCOSEL   = 0x1 << 12
	CMU_STATUS_LFXOSEL    = 0x1 << 13
	CMU_STATUS_RESETVALUE = 0x00000403
)

// CMU_HFPERCLKEN0
const (
	CMU_HFPERCLKEN0_USART0 = 0x1 << 0
	CMU_HFPERCLKEN0_USART1 = 0x1 << 1
	CMU_HFPERCLKEN0_USART2 = 0x1 << 2
	CMU_HFPERCLKEN0_UART0  = 0x1 << 3
	CMU_HFPERCLKEN0_UART1  = 0x1 << 4
	CMU_HFPERCLKEN0_TIMER0 = 0x1 << 5
	CMU_HFPERCLKEN0_I2C0   = 0x1 << 11
	CMU_HFPERCLKEN0_GPIO   = 0x1 << 13
	CMU_HFPERCLKEN0_ADC0   = 0x1 << 16
)

// MSC registers
const (
	MSC_CTRL     = MSC_BASE + 0x000
	MSC_READCTRL = MSC_BASE + 0x004
)

// MSC_READCTRL
const (
	MSC_READCTRL_MODE_Pos      = 0
	MSC_READCTRL_MODE_Msk      = 0x7 << MSC_READCTRL_MODE_Pos
	MSC_READCTRL_MODE_WS0      = 0x0
	MSC_READCTRL_MODE_WS1      = 0x1
	MSC_READCTRL_MODE_WS0SCBTP = 0x2
	MSC_READCTRL_MODE_WS1SCBTP = 0x3
	MSC_READCTRL_MODE_WS2      = 0x4
	MSC_READCTRL_MODE_WS2SCBTP = 0x5
	MSC_READCTRL_IFCDIS        = 0x1 << 3
	MSC_READCTRL_RESETVALUE    = 0x00000001
)

// DEVINFO registers
const (
	DEVINFO_HFRCOCAL0 = DEVINFO_BASE + 0x02C
	DEVINFO_HFRCOCAL1 = DEVINFO_BASE + 0x030
	DEVINFO_UNIQUEL   = DEVINFO_BASE + 0x040
	DEVINFO_UNIQUEH   = DEVINFO_BASE + 0x044
	DEVINFO_PART      = DEVINFO_BASE + 0x04C
)

// DEVINFO_PART
const (
	DEVINFO_PART_DEVICE_NUMBER_Pos = 0
	DEVINFO_PART_DEVICE_NUMBER_Msk = 0xFFFF << DEVINFO_PART_DEVICE_NUMBER_Pos
	DEVINFO_PART_DEVICE_FAMILY_Pos = 16
	DEVINFO_PART_DEVICE_FAMILY_Msk = 0xFF << DEVINFO_PART_DEVICE_FAMILY_Pos
	DEVINFO_PART_PROD_REV_Pos      = 24
	DEVINFO_PART_PROD_REV_Msk      = 0xFF << DEVINFO_PART_PROD_REV_Pos
)

// GPIO port registers. Ports are 0x24 bytes apart, port A first.
const (
	GPIO_PORT_STRIDE uintptr = 0x24

	GPIO_P_CTRL    uintptr = 0x00
	GPIO_P_MODEL   uintptr = 0x04
	GPIO_P_MODEH   uintptr = 0x08
	GPIO_P_DOUT    uintptr = 0x0C
	GPIO_P_DOUTSET uintptr = 0x10
	GPIO_P_DOUTCLR uintptr = 0x14
	GPIO_P_DOUTTGL uintptr = 0x18
	GPIO_P_DIN     uintptr = 0x1C
)

// GPIO interrupt registers
const (
	GPIO_EXTIPSELL = GPIO_BASE + 0x100
	GPIO_EXTIPSELH = GPIO_BASE + 0x104
	GPIO_EXTIRISE  = GPIO_BASE + 0x108
	GPIO_EXTIFALL  = GPIO_BASE + 0x10C
	GPIO_IEN       = GPIO_BASE + 0x110
	GPIO_IF        = GPIO_BASE + 0x114
	GPIO_IFS       = GPIO_BASE + 0x118
	GPIO_IFC       = GPIO_BASE + 0x11C
)

// GPIO pin modes (4 bits per pin in MODEL/MODEH)
const (
	GPIO_P_MODE_DISABLED        = 0x0
	GPIO_P_MODE_INPUT           = 0x1
	GPIO_P_MODE_INPUTPULL       = 0x2
	GPIO_P_MODE_INPUTPULLFILTER = 0x3
	GPIO_P_MODE_PUSHPULL        = 0x4
)

// UART0 registers (USART register layout)
const (
	UART0_CTRL   = UART0_BASE + 0x000
	UART0_FRAME  = UART0_BASE + 0x004
	UART0_CMD    = UART0_BASE + 0x00C
	UART0_STATUS = UART0_BASE + 0x010
	UART0_CLKDIV = UART0_BASE + 0x014
	UART0_RXDATA = UART0_BASE + 0x01C
	UART0_TXDATA = UART0_BASE + 0x034
	UART0_IF     = UART0_BASE + 0x040
	UART0_IFC    = UART0_BASE + 0x048
	UART0_IEN    = UART0_BASE + 0x04C
	UART0_ROUTE  = UART0_BASE + 0x054
)

// UART fields
const (
	UART_CMD_RXEN       = 0x1 << 0
	UART_CMD_RXDIS      = 0x1 << 1
	UART_CMD_TXEN       = 0x1 << 2
	UART_CMD_TXDIS      = 0x1 << 3
	UART_CMD_CLEARTX    = 0x1 << 10
	UART_CMD_CLEARRX    = 0x1 << 11
	UART_STATUS_TXENS   = 0x1 << 1
	UART_STATUS_RXENS   = 0x1 << 0
	UART_STATUS_TXC     = 0x1 << 5
	UART_STATUS_TXBL    = 0x1 << 6
	UART_STATUS_RXDATAV = 0x1 << 7
	UART_FRAME_8N1      = 0x00001005
	UART_CLKDIV_DIV_Pos = 6
	UART_CLKDIV_DIV_Msk = 0x7FFF << UART_CLKDIV_DIV_Pos
	UART_IF_RXDATAV     = 0x1 << 2
	UART_ROUTE_RXPEN    = 0x1 << 0
	UART_ROUTE_TXPEN    = 0x1 << 1
	UART_ROUTE_LOC_Pos  = 8
	UART_ROUTE_LOC_Msk  = 0x7 << UART_ROUTE_LOC_Pos
)

// GPIOPort returns the address of register reg (GPIO_P_*) of port n (0 = A).
func GPIOPort(n uint8, reg uintptr) uintptr {
	return GPIO_BASE + uintptr(n)*GPIO_PORT_STRIDE + reg
}

// Cortex-M3 system control space
const (
	SCS_BASE     uintptr = 0xE000E000
	SYSTICK_CTRL         = SCS_BASE + 0x010
	SYSTICK_LOAD         = SCS_BASE + 0x014
	SYSTICK_VAL          = SCS_BASE + 0x018
	NVIC_ISER0           = SCS_BASE + 0x100
	NVIC_ICER0           = SCS_BASE + 0x180
	NVIC_ICPR0           = SCS_BASE + 0x280
)

// SYSTICK_CTRL
const (
	SYSTICK_CTRL_ENABLE    = 0x1 << 0
	SYSTICK_CTRL_TICKINT   = 0x1 << 1
	SYSTICK_CTRL_CLKSOURCE = 0x1 << 2
	SYSTICK_LOAD_Msk       = 0xFFFFFF
)

// Interrupt numbers
const (
	GPIO_EVEN_IRQn = 1
	GPIO_ODD_IRQn  = 11
	UART0_RX_IRQn  = 20
	UART0_TX_IRQn  = 21
)
