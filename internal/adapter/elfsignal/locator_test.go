package elfsignal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
	"gitlab.com/markorv.net/isaharness/internal/testutil"
)

func TestLocateToHost(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteELF(t, dir, "rv64ui-p-add",
		testutil.TextAt(0x80000000),
		testutil.ToHostAt(0x80001004),
	)

	info, err := NewLocator().Locate(path)
	require.NoError(t, err)
	assert.Equal(t, ".tohost", info.Name)
	assert.Equal(t, uint64(0x80001004), info.VirtualAddress)

	offset, err := domain.SignalOffset(info, domain.LoadBase)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1004), offset)
}

func TestLocateMissingSection(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteELF(t, dir, "no-tohost", testutil.TextAt(0x80000000))

	info, err := NewLocator().Locate(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSignalNotFound)
	assert.Equal(t, domain.SectionInfo{}, info)
}

func TestLocateMatchesNameExactly(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteELF(t, dir, "lookalike",
		testutil.TextAt(0x80000000),
		testutil.Section{Name: ".tohost.bak", Addr: 0x80002000, Data: make([]byte, 8)},
		testutil.Section{Name: ".fromhost", Addr: 0x80001040, Data: make([]byte, 8)},
	)

	_, err := NewLocator().Locate(path)
	assert.ErrorIs(t, err, errs.ErrSignalNotFound)

	info, err := newSectionLocator(".fromhost").Locate(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x80001040), info.VirtualAddress)
}

func TestLocateNotAnElf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an elf image"), 0o644))

	_, err := NewLocator().Locate(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrSignalNotFound)

	_, err = NewLocator().Locate(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
