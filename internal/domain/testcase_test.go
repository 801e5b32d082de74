package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalOffset(t *testing.T) {
	offset, err := SignalOffset(SectionInfo{Name: SignalSection, VirtualAddress: 0x80001004}, LoadBase)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1004), offset)

	offset, err = SignalOffset(SectionInfo{Name: SignalSection, VirtualAddress: LoadBase}, LoadBase)
	require.NoError(t, err)
	assert.Zero(t, offset)
}

func TestSignalOffsetBelowBase(t *testing.T) {
	_, err := SignalOffset(SectionInfo{Name: SignalSection, VirtualAddress: 0x1000}, LoadBase)
	assert.Error(t, err)
}

func TestSignalOffsetOverflow(t *testing.T) {
	_, err := SignalOffset(SectionInfo{Name: SignalSection, VirtualAddress: 1 << 63}, 0)
	assert.Error(t, err)
}
