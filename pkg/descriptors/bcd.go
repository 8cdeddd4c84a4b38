package descriptors

import "fmt"

// BinaryCodedDecimal is a USB release number such as bcdUVC, 0xJJMN for JJ.M.N.
type BinaryCodedDecimal uint16

func (bcd BinaryCodedDecimal) String() string {
	return fmt.Sprintf("%x.%02x", uint16(bcd)>>8, uint16(bcd)&0xff)
}
