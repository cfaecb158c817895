// Package models holds the plain data types shared by the domain model:
// the vdev type classification and the fixed-layout vdev statistics record.
package models

import "unsafe"

// VdevType classifies a node of a pool's device tree.
type VdevType int

const (
	VdevUnknown VdevType = iota
	VdevRoot
	VdevMirror
	VdevReplacing
	VdevRaidz
	VdevDraid
	VdevDraidSpare
	VdevDisk
	VdevFile
	VdevMissing
	VdevHole
	VdevSpare
	VdevLog
	VdevL2Cache
	VdevIndirect
)

var vdevTypeNames = map[string]VdevType{
	"root":      VdevRoot,
	"mirror":    VdevMirror,
	"replacing": VdevReplacing,
	"raidz":     VdevRaidz,
	"draid":     VdevDraid,
	"dspare":    VdevDraidSpare,
	"disk":      VdevDisk,
	"file":      VdevFile,
	"missing":   VdevMissing,
	"hole":      VdevHole,
	"spare":     VdevSpare,
	"log":       VdevLog,
	"l2cache":   VdevL2Cache,
	"indirect":  VdevIndirect,
}

// VdevTypeFromString maps the "type" string of a vdev node to its
// classification. Unrecognized strings map to VdevUnknown, never an error;
// new pool layouts must not break enumeration.
func VdevTypeFromString(s string) VdevType {
	if t, ok := vdevTypeNames[s]; ok {
		return t
	}
	return VdevUnknown
}

func (t VdevType) String() string {
	for name, vt := range vdevTypeNames {
		if vt == t {
			return name
		}
	}
	return "unknown"
}

// VdevStats mirrors vdev_stat_t, the statistics record carried as a uint64
// array in a vdev node's "vdev_stats" pair. Like the command record it may
// grow by appending fields; decode copies forward and stops at whichever
// side is shorter.
type VdevStats struct {
	Timestamp           uint64 // hrtime_t
	State               uint64 // vdev_state_t
	Aux                 uint64 // vdev_aux_t
	Alloc               uint64
	Space               uint64
	DSpace              uint64
	RSize               uint64
	ESize               uint64
	Ops                 [6]uint64 // per zio type
	Bytes               [6]uint64 // per zio type
	ReadErrors          uint64
	WriteErrors         uint64
	ChecksumErrors      uint64
	InitializeErrors    uint64
	SelfHealed          uint64
	ScanRemoving        uint64
	ScanProcessed       uint64
	Fragmentation       uint64
	InitializeBytesDone uint64
	InitializeBytesEst  uint64
	InitializeState     uint64 // vdev_initializing_state_t
	InitializeActionAt  uint64 // time_t
	CheckpointSpace     uint64
	ResilverDeferred    uint64
	SlowIOs             uint64
	TrimErrors          uint64
	TrimNotSup          uint64
	TrimBytesDone       uint64
	TrimBytesEst        uint64
	TrimState           uint64 // vdev_trim_state_t
	TrimActionAt        uint64 // time_t
	RebuildProcessed    uint64
	ConfiguredAshift    uint64
	LogicalAshift       uint64
	PhysicalAshift      uint64
	NoAlloc             uint64
	PSpace              uint64
}

// VdevStatsFromSlice builds a VdevStats from the raw uint64 array. Short
// input leaves the trailing fields zero; long input (a newer kernel) is
// truncated.
func VdevStatsFromSlice(s []uint64) VdevStats {
	var vs VdevStats
	words := int(unsafe.Sizeof(vs) / 8)
	dst := unsafe.Slice((*uint64)(unsafe.Pointer(&vs)), words)
	if len(s) < words {
		words = len(s)
	}
	copy(dst[:words], s[:words])
	return vs
}
