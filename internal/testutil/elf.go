// Package testutil builds fixtures shared by the package tests: small ELF
// images and ram dumps.
package testutil

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Section is one PROGBITS section of a fixture image
type Section struct {
	Name string
	Addr uint64
	Data []byte
}

// TextAt is a four byte .text section holding a single nop
func TextAt(addr uint64) Section {
	return Section{Name: ".text", Addr: addr, Data: []byte{0x13, 0x00, 0x00, 0x00}}
}

// ToHostAt is an eight byte .tohost section
func ToHostAt(addr uint64) Section {
	return Section{Name: ".tohost", Addr: addr, Data: make([]byte, 8)}
}

// BuildELF returns a little endian ELF64 RISC-V executable that has a null
// section, the given sections and a .shstrtab. There are no program headers.
func BuildELF(sections ...Section) []byte {
	const (
		headerSize  = 64
		sectionSize = 64
	)

	var strtab bytes.Buffer
	strtab.WriteByte(0)
	nameOff := make([]uint32, len(sections))
	for i, s := range sections {
		nameOff[i] = uint32(strtab.Len())
		strtab.WriteString(s.Name)
		strtab.WriteByte(0)
	}
	shstrName := uint32(strtab.Len())
	strtab.WriteString(".shstrtab")
	strtab.WriteByte(0)

	var body bytes.Buffer
	dataOff := make([]uint64, len(sections))
	for i, s := range sections {
		align(&body, headerSize, 8)
		dataOff[i] = uint64(headerSize + body.Len())
		body.Write(s.Data)
	}
	strtabOff := uint64(headerSize + body.Len())
	body.Write(strtab.Bytes())
	align(&body, headerSize, 8)
	shoff := uint64(headerSize + body.Len())

	entry := uint64(0)
	if len(sections) > 0 {
		entry = sections[0].Addr
	}

	hdr := elf.Header64{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Shoff:     shoff,
		Ehsize:    headerSize,
		Phentsize: 56,
		Shentsize: sectionSize,
		Shnum:     uint16(len(sections) + 2),
		Shstrndx:  uint16(len(sections) + 1),
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var out bytes.Buffer
	mustWrite(&out, hdr)
	out.Write(body.Bytes())

	mustWrite(&out, elf.Section64{})
	for i, s := range sections {
		mustWrite(&out, elf.Section64{
			Name:      nameOff[i],
			Type:      uint32(elf.SHT_PROGBITS),
			Flags:     uint64(elf.SHF_ALLOC | elf.SHF_WRITE),
			Addr:      s.Addr,
			Off:       dataOff[i],
			Size:      uint64(len(s.Data)),
			Addralign: 8,
		})
	}
	mustWrite(&out, elf.Section64{
		Name:      shstrName,
		Type:      uint32(elf.SHT_STRTAB),
		Off:       strtabOff,
		Size:      uint64(strtab.Len()),
		Addralign: 1,
	})

	return out.Bytes()
}

// WriteELF writes BuildELF output to dir/name and returns the path
func WriteELF(t *testing.T, dir, name string, sections ...Section) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildELF(sections...), 0o644); err != nil {
		t.Fatalf("failed to write elf fixture: %v", err)
	}
	return path
}

// WriteDump writes a zeroed dump of size bytes with word stored little endian
// at offset, and returns the path
func WriteDump(t *testing.T, path string, size int, offset int, word uint16) string {
	t.Helper()
	if err := os.WriteFile(path, Dump(size, offset, word), 0o644); err != nil {
		t.Fatalf("failed to write dump fixture: %v", err)
	}
	return path
}

// Dump builds the bytes WriteDump writes
func Dump(size int, offset int, word uint16) []byte {
	buf := make([]byte, size)
	if offset >= 0 && offset+2 <= size {
		binary.LittleEndian.PutUint16(buf[offset:], word)
	}
	return buf
}

func align(buf *bytes.Buffer, base, n int) {
	for (base+buf.Len())%n != 0 {
		buf.WriteByte(0)
	}
}

func mustWrite(buf *bytes.Buffer, v interface{}) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}
