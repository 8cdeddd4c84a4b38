package descriptors

type ClassCode byte

const (
	ClassCodeVideo ClassCode = 0x0E
)

type SubclassCode byte

const (
	SubclassCodeVideoControl SubclassCode = 0x01
)

type ClassSpecificDescriptorType int

const (
	ClassSpecificDescriptorTypeInterface ClassSpecificDescriptorType = 0x24
)
