package types

// Address is one slot of the bus dispatch table: a pair of
// functions invoked when the CPU reads from or writes to the
// address the slot covers.
type Address struct {
	// Read is called when the CPU reads from the address.
	Read func(address uint16) uint8
	// Write is called when the CPU writes to the address.
	Write func(address uint16, value uint8)
}

// HardwareAddress is the address of one of the hardware
// registers mapped at 0xFF00 - 0xFF7F and 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the joypad matrix is readable
	// and reports the state of the selected buttons.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Only bit 7 (transfer start)
	// and bit 0 (clock select) exist.
	SC HardwareAddress = 0xFF02
	// DIV is the free running divider. It increments every 16
	// cycles and writing any value resets it to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA is the programmable timer counter. It increments at
	// the rate selected by TAC, and on overflow it is reloaded
	// from TMA and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer: bit 2 enables TIMA, bits 0-1
	// select its rate.
	TAC HardwareAddress = 0xFF07
	// IF latches pending interrupt requests.
	//
	//  Bit 0: V-Blank  (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC controls the display.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Select         (0=9800, 1=9C00)
	//  Bit 5: Window Enable                  (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800, 1=8000)
	//  Bit 3: BG Tile Map Select             (0=9800, 1=9C00)
	//  Bit 2: OBJ Size                       (0=8x8, 1=8x16)
	//  Bit 1: OBJ Enable                     (0=Off, 1=On)
	//  Bit 0: BG & Window Enable             (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the display mode and drives the STAT
	// interrupt sources.
	//
	//  Bit 6: LYC=LY Interrupt Enable  (R/W)
	//  Bit 5: Mode 2 OAM Interrupt     (R/W)
	//  Bit 4: Mode 1 V-Blank Interrupt (R/W)
	//  Bit 3: Mode 0 H-Blank Interrupt (R/W)
	//  Bit 2: LYC=LY Coincidence Flag  (RO)
	//  Bit 1-0: Mode                   (RO)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline (0-153). Read only.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY; equality sets the coincidence
	// flag and may raise a STAT interrupt.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from the written page.
	DMA HardwareAddress = 0xFF46
	// BGP assigns shades to the 4 background palette indices.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the first sprite palette. Index 0 is transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the second sprite palette. Index 0 is transparent.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window's top scanline.
	WY HardwareAddress = 0xFF4A
	// WX is the window's left column plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS disables the boot ROM overlay when written.
	BDIS HardwareAddress = 0xFF50
	// IE enables individual interrupts, with the same bit
	// layout as IF.
	IE HardwareAddress = 0xFFFF
)
