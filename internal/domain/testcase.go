package domain

import "fmt"

// Extension names the instruction-set extension a test case exercises.
// It is informational only and used for filtering.
type Extension string

const (
	ExtensionI        Extension = "I"
	ExtensionZifencei Extension = "Zifencei"
	ExtensionA        Extension = "A"
	ExtensionM        Extension = "M"
)

// LoadBase is where the simulator maps the RAM image; a virtual address minus
// LoadBase is a byte offset inside the ram dump.
const LoadBase uint64 = 0x8000_0000

// SignalSection is the section the test binaries write their result word to.
const SignalSection = ".tohost"

// TestCase represents one prebuilt ISA test binary
type TestCase struct {
	ID    string    `json:"id"`
	Group Extension `json:"group"`
}

// SectionInfo is the part of an ELF section header the harness cares about
type SectionInfo struct {
	Name           string `json:"name"`
	VirtualAddress uint64 `json:"virtualAddress"`
}

// SignalOffset converts the signaling section address into an offset inside
// a ram dump mapped at base. Addresses below base have no offset.
func SignalOffset(section SectionInfo, base uint64) (int64, error) {
	if section.VirtualAddress < base {
		return 0, fmt.Errorf("section %s at 0x%x lies below load base 0x%x", section.Name, section.VirtualAddress, base)
	}
	offset := section.VirtualAddress - base
	if offset > uint64(1<<63-1) {
		return 0, fmt.Errorf("section %s offset 0x%x overflows", section.Name, offset)
	}
	return int64(offset), nil
}
