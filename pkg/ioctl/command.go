// Package ioctl drives the ZFS control device. It owns the kernel
// request/response record (zfs_cmd_t), a reusable response buffer, and the
// read-only subset of control operations this tool issues.
package ioctl

// include/os/linux/spl/sys/sysmacros.h, include/sys/fs/zfs.h
const (
	maxNameLen        = 256
	maxPathLen        = 4096
	maxDatasetNameLen = 256
)

// dmu_objset_stats_t
type objsetStats struct {
	NumClones    uint64
	CreationTxg  uint64
	GUID         uint64
	Type         int32 // enum dmu_objset_type
	IsSnapshot   uint8
	Inconsistent uint8
	Redacted     uint8
	Origin       [maxDatasetNameLen]byte
}

// struct drr_begin
type replayBegin struct {
	Magic        uint64
	VersionInfo  uint64
	CreationTime uint64
	Type         int32 // enum dmu_objset_type
	Flags        uint32
	ToGUID       uint64
	FromGUID     uint64
	ToName       [maxNameLen]byte
}

// zinject_record_t
type injectRecord struct {
	Objset   uint64
	Object   uint64
	Start    uint64
	End      uint64
	GUID     uint64
	Level    uint32
	Error    uint32
	Type     uint64
	Freq     uint32
	Failfast uint32
	Func     [maxNameLen]byte
	IoType   uint32
	Duration int32
	Timer    uint64
	NLanes   uint64
	Cmd      uint64
	DVAs     uint64
}

// zfs_share_t
type share struct {
	ExportData uint64
	ShareData  uint64
	ShareType  uint64
	ShareMax   uint64
}

// zfs_stat_t
type stat struct {
	Gen   uint64
	Mode  uint64
	Links uint64
	Ctime [2]uint64
}

// command mirrors the Linux zfs_cmd_t byte for byte. Most fields are
// legacy and never touched here, but the kernel copies the whole record in
// and out, so the layout must be preserved exactly: the structure may only
// ever grow by appending fields, never shrink or reorder. Pointer fields
// are carried as uint64 to match the 64-bit ABI; the pointed-to buffer is
// kept alive by the owning Handle.
type command struct {
	// nvlist-based
	Name            [maxPathLen]byte
	NvlistSrc       uint64 // const char *
	NvlistSrcSize   uint64
	NvlistDst       uint64 // char *
	NvlistDstSize   uint64
	NvlistDstFilled int32 // boolean_t
	Pad2            int32

	// legacy
	History        uint64 // const char *
	Value          [maxPathLen * 2]byte
	String         [maxNameLen]byte
	GUID           uint64
	NvlistConf     uint64 // const char *
	NvlistConfSize uint64
	Cookie         uint64
	ObjsetType     uint64
	PermAction     uint64
	HistoryLen     uint64
	HistoryOffset  uint64
	Obj            uint64
	IFlags         uint64
	Share          share
	ObjsetStats    objsetStats
	BeginRecord    replayBegin
	InjectRecord   injectRecord
	DeferDestroy   uint32
	Flags          int32
	ActionHandle   uint64
	CleanupFD      int32
	Simple         uint8
	Pad            [3]uint8
	SendObj        uint64
	FromObj        uint64
	CreateTxg      uint64
	Stat           stat
	ZoneID         uint64
}
