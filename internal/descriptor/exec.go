// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file resolves a model's algorithmic-model executable pair for a host
// platform.
//
// Why an enum-keyed table?
//
// The descriptor file lists executables under free-form (OS, bit-width) tags.
// Folding those tags into a Platform key once, at model construction, means
// resolution at selection time is a single lookup instead of a re-scan of
// string tags, and the "which bucket does this tag fall into" rule lives in
// exactly one place (ParseOS).
package descriptor

import (
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/ibisgo/internal/kw"
)

// OS is the coarse operating-system bucket used by the executable table.
// Descriptor files only distinguish Windows from everything else.
type OS int

const (
	OSOther OS = iota
	OSWindows
)

// ParseOS buckets a free-form OS tag. The match is case-insensitive; any tag
// other than "windows" lands in OSOther.
func ParseOS(tag string) OS {
	if strings.EqualFold(tag, "windows") {
		return OSWindows
	}
	return OSOther
}

func (o OS) String() string {
	if o == OSWindows {
		return "windows"
	}
	return "other"
}

// Platform identifies a host: OS bucket plus pointer width in bits.
type Platform struct {
	OS   OS
	Bits int
}

// HostPlatform returns the Platform of the running process.
func HostPlatform() Platform {
	return Platform{OS: ParseOS(runtime.GOOS), Bits: strconv.IntSize}
}

// ExecPair is a resolved executable pair: the shared-library path and its
// companion parameter-definition file, in table order.
type ExecPair struct {
	Library   string
	ParamFile string
}

// ExecTable is the (OS, bitness)-keyed executable lookup built once at model
// construction. A nil table behaves as an empty one.
type ExecTable struct {
	files map[Platform][]string
}

// newExecTable folds raw table rows into platform buckets. When several rows
// map to the same platform, the first row wins, matching file order.
func newExecTable(entries []kw.ExecEntry) *ExecTable {
	t := &ExecTable{files: make(map[Platform][]string, len(entries))}
	for _, e := range entries {
		p := Platform{OS: ParseOS(e.OS), Bits: e.Bits}
		if _, taken := t.files[p]; taken {
			continue
		}
		t.files[p] = e.Files
	}
	return t
}

// Empty reports whether the table has no entries at all. Callers use this to
// distinguish "model ships no executables" from "none match this platform".
func (t *ExecTable) Empty() bool {
	return t == nil || len(t.files) == 0
}

// Platforms returns the table's platforms, ordered by bit width and then OS
// bucket. The order is stable so listings render deterministically.
func (t *ExecTable) Platforms() []Platform {
	if t == nil {
		return nil
	}
	out := make([]Platform, 0, len(t.files))
	for p := range t.files {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bits != out[j].Bits {
			return out[i].Bits < out[j].Bits
		}
		return out[i].OS < out[j].OS
	})
	return out
}

// Files returns the raw file list for a platform, in table order.
func (t *ExecTable) Files(p Platform) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	files, ok := t.files[p]
	return files, ok
}

// Resolve returns the executable pair for a platform. A miss yields a zero
// pair and false: a model without a native executable still has a usable
// analytic fallback, so this is not an error.
func (t *ExecTable) Resolve(p Platform) (ExecPair, bool) {
	if t == nil {
		return ExecPair{}, false
	}
	files, ok := t.files[p]
	if !ok || len(files) < 2 {
		return ExecPair{}, false
	}
	return ExecPair{Library: files[0], ParamFile: files[1]}, true
}
