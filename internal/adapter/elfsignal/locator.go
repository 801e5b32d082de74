package elfsignal

import (
	"debug/elf"
	"fmt"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

var _ secondary.SignalLocator = (*Locator)(nil)

// Locator finds a named section in an ELF image by walking its section table
type Locator struct {
	section string
}

// NewLocator creates a locator for the .tohost section
func NewLocator() *Locator {
	return newSectionLocator(domain.SignalSection)
}

func newSectionLocator(section string) *Locator {
	return &Locator{section: section}
}

// Locate returns the virtual address of the section. Only the section headers
// are read; symbols are not needed.
func (l *Locator) Locate(path string) (domain.SectionInfo, error) {
	file, err := elf.Open(path)
	if err != nil {
		return domain.SectionInfo{}, fmt.Errorf("failed to open elf %s: %w", path, err)
	}
	defer file.Close()

	for _, sec := range file.Sections {
		if sec.Name == l.section {
			return domain.SectionInfo{
				Name:           sec.Name,
				VirtualAddress: sec.Addr,
			}, nil
		}
	}

	return domain.SectionInfo{}, fmt.Errorf("%w: %s has no %s section", errs.ErrSignalNotFound, path, l.section)
}
