package models

import "testing"

func TestVdevTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want VdevType
	}{
		{"root", VdevRoot},
		{"mirror", VdevMirror},
		{"replacing", VdevReplacing},
		{"raidz", VdevRaidz},
		{"draid", VdevDraid},
		{"dspare", VdevDraidSpare},
		{"disk", VdevDisk},
		{"file", VdevFile},
		{"missing", VdevMissing},
		{"hole", VdevHole},
		{"spare", VdevSpare},
		{"log", VdevLog},
		{"l2cache", VdevL2Cache},
		{"indirect", VdevIndirect},
		// anything unrecognized classifies, never errors
		{"quantum", VdevUnknown},
		{"", VdevUnknown},
	}

	for _, tt := range tests {
		if got := VdevTypeFromString(tt.in); got != tt.want {
			t.Errorf("VdevTypeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVdevTypeString(t *testing.T) {
	if got := VdevMirror.String(); got != "mirror" {
		t.Errorf("VdevMirror.String() = %q, want %q", got, "mirror")
	}
	if got := VdevUnknown.String(); got != "unknown" {
		t.Errorf("VdevUnknown.String() = %q, want %q", got, "unknown")
	}
}

func TestVdevStatsFromSlice(t *testing.T) {
	// 47 words: 8 leading scalars, ops[6], bytes[6], 27 trailing scalars.
	full := make([]uint64, 47)
	for i := range full {
		full[i] = uint64(i + 1)
	}

	vs := VdevStatsFromSlice(full)
	if vs.Timestamp != 1 || vs.State != 2 || vs.Aux != 3 || vs.Alloc != 4 {
		t.Errorf("leading fields = %d %d %d %d", vs.Timestamp, vs.State, vs.Aux, vs.Alloc)
	}
	if vs.Ops[0] != 9 || vs.Ops[5] != 14 {
		t.Errorf("Ops = %v", vs.Ops)
	}
	if vs.Bytes[0] != 15 || vs.Bytes[5] != 20 {
		t.Errorf("Bytes = %v", vs.Bytes)
	}
	if vs.ReadErrors != 21 {
		t.Errorf("ReadErrors = %d, want 21", vs.ReadErrors)
	}
	if vs.PSpace != 47 {
		t.Errorf("PSpace = %d, want 47", vs.PSpace)
	}
}

func TestVdevStatsFromShortSlice(t *testing.T) {
	// An older kernel may send fewer words; the rest stay zero.
	vs := VdevStatsFromSlice([]uint64{7, 5})
	if vs.Timestamp != 7 || vs.State != 5 {
		t.Errorf("Timestamp, State = %d, %d, want 7, 5", vs.Timestamp, vs.State)
	}
	if vs.Aux != 0 || vs.PSpace != 0 {
		t.Errorf("trailing fields not zero: Aux=%d PSpace=%d", vs.Aux, vs.PSpace)
	}
}

func TestVdevStatsFromLongSlice(t *testing.T) {
	// A newer kernel may send more words; extras are dropped, no overrun.
	long := make([]uint64, 100)
	for i := range long {
		long[i] = uint64(i + 1)
	}
	vs := VdevStatsFromSlice(long)
	if vs.PSpace != 47 {
		t.Errorf("PSpace = %d, want 47", vs.PSpace)
	}
}

func TestVdevStatsFromEmptySlice(t *testing.T) {
	vs := VdevStatsFromSlice(nil)
	if vs != (VdevStats{}) {
		t.Errorf("VdevStatsFromSlice(nil) = %+v, want zero", vs)
	}
}
