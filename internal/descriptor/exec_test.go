package descriptor

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ibisgo/internal/kw"
)

func TestParseOS(t *testing.T) {
	assert.Equal(t, OSWindows, ParseOS("Windows"))
	assert.Equal(t, OSWindows, ParseOS("windows"))
	assert.Equal(t, OSWindows, ParseOS("WINDOWS"))
	assert.Equal(t, OSOther, ParseOS("linux"))
	assert.Equal(t, OSOther, ParseOS("darwin"))
	assert.Equal(t, OSOther, ParseOS(""))
}

func TestExecTableResolve(t *testing.T) {
	table := newExecTable([]kw.ExecEntry{
		{OS: "Windows", Bits: 64, Files: []string{"w64.dll", "w64.ami"}},
		{OS: "linux", Bits: 64, Files: []string{"l64.so", "l64.ami"}},
		{OS: "linux", Bits: 32, Files: []string{"l32.so", "l32.ami"}},
	})

	t.Run("exact match yields the two paths in table order", func(t *testing.T) {
		pair, ok := table.Resolve(Platform{OS: OSOther, Bits: 64})
		require.True(t, ok)
		assert.Equal(t, ExecPair{Library: "l64.so", ParamFile: "l64.ami"}, pair)
	})

	t.Run("platform mismatch yields an empty pair", func(t *testing.T) {
		pair, ok := table.Resolve(Platform{OS: OSWindows, Bits: 32})
		assert.False(t, ok)
		assert.Equal(t, ExecPair{}, pair)
		assert.False(t, table.Empty())
	})
}

func TestExecTableFirstEntryWins(t *testing.T) {
	table := newExecTable([]kw.ExecEntry{
		{OS: "linux", Bits: 64, Files: []string{"first.so", "first.ami"}},
		{OS: "Linux", Bits: 64, Files: []string{"second.so", "second.ami"}},
	})
	pair, ok := table.Resolve(Platform{OS: OSOther, Bits: 64})
	require.True(t, ok)
	assert.Equal(t, "first.so", pair.Library)
}

func TestExecTableShortEntry(t *testing.T) {
	// An entry without the companion parameter file cannot form a pair.
	table := newExecTable([]kw.ExecEntry{
		{OS: "linux", Bits: 64, Files: []string{"lonely.so"}},
	})
	_, ok := table.Resolve(Platform{OS: OSOther, Bits: 64})
	assert.False(t, ok)
}

func TestExecTableNil(t *testing.T) {
	var table *ExecTable
	assert.True(t, table.Empty())
	_, ok := table.Resolve(HostPlatform())
	assert.False(t, ok)
	assert.Nil(t, table.Platforms())
	_, ok = table.Files(HostPlatform())
	assert.False(t, ok)
}

func TestExecTablePlatforms(t *testing.T) {
	table := newExecTable([]kw.ExecEntry{
		{OS: "Windows", Bits: 64, Files: []string{"w64.dll", "w64.ami"}},
		{OS: "linux", Bits: 32, Files: []string{"l32.so", "l32.ami"}},
		{OS: "linux", Bits: 64, Files: []string{"l64.so", "l64.ami"}},
	})

	// Ordered by bit width, then the non-Windows bucket first.
	want := []Platform{
		{OS: OSOther, Bits: 32},
		{OS: OSOther, Bits: 64},
		{OS: OSWindows, Bits: 64},
	}
	assert.Equal(t, want, table.Platforms())

	files, ok := table.Files(Platform{OS: OSOther, Bits: 32})
	require.True(t, ok)
	assert.Equal(t, []string{"l32.so", "l32.ami"}, files)
}

func TestHostPlatform(t *testing.T) {
	p := HostPlatform()
	assert.Equal(t, strconv.IntSize, p.Bits)
}
