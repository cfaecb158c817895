package ioctl

// ZFS ioctl request numbers (zfs_ioc_t from include/sys/fs/zfs.h). The
// device encodes requests as 0x5a00 ('Z' << 8) plus the table index; the
// base is added at the syscall boundary. Only the read-only subset is
// exercised by this package, but the table is carried whole like the
// kernel header it comes from.
const (
	ZFS_IOC_POOL_CREATE             = 0x00
	ZFS_IOC_POOL_DESTROY            = 0x01
	ZFS_IOC_POOL_IMPORT             = 0x02
	ZFS_IOC_POOL_EXPORT             = 0x03
	ZFS_IOC_POOL_CONFIGS            = 0x04
	ZFS_IOC_POOL_STATS              = 0x05
	ZFS_IOC_POOL_TRYIMPORT          = 0x06
	ZFS_IOC_POOL_SCAN               = 0x07
	ZFS_IOC_POOL_FREEZE             = 0x08
	ZFS_IOC_POOL_UPGRADE            = 0x09
	ZFS_IOC_POOL_GET_HISTORY        = 0x0a
	ZFS_IOC_VDEV_ADD                = 0x0b
	ZFS_IOC_VDEV_REMOVE             = 0x0c
	ZFS_IOC_VDEV_SET_STATE          = 0x0d
	ZFS_IOC_VDEV_ATTACH             = 0x0e
	ZFS_IOC_VDEV_DETACH             = 0x0f
	ZFS_IOC_VDEV_SETPATH            = 0x10
	ZFS_IOC_VDEV_SETFRU             = 0x11
	ZFS_IOC_OBJSET_STATS            = 0x12
	ZFS_IOC_OBJSET_ZPLPROPS         = 0x13
	ZFS_IOC_DATASET_LIST_NEXT       = 0x14
	ZFS_IOC_SNAPSHOT_LIST_NEXT      = 0x15
	ZFS_IOC_SET_PROP                = 0x16
	ZFS_IOC_CREATE                  = 0x17
	ZFS_IOC_DESTROY                 = 0x18
	ZFS_IOC_ROLLBACK                = 0x19
	ZFS_IOC_RENAME                  = 0x1a
	ZFS_IOC_RECV                    = 0x1b
	ZFS_IOC_SEND                    = 0x1c
	ZFS_IOC_INJECT_FAULT            = 0x1d
	ZFS_IOC_CLEAR_FAULT             = 0x1e
	ZFS_IOC_INJECT_LIST_NEXT        = 0x1f
	ZFS_IOC_ERROR_LOG               = 0x20
	ZFS_IOC_CLEAR                   = 0x21
	ZFS_IOC_PROMOTE                 = 0x22
	ZFS_IOC_SNAPSHOT                = 0x23
	ZFS_IOC_DSOBJ_TO_DSNAME         = 0x24
	ZFS_IOC_OBJ_TO_PATH             = 0x25
	ZFS_IOC_POOL_SET_PROPS          = 0x26
	ZFS_IOC_POOL_GET_PROPS          = 0x27
	ZFS_IOC_SET_FSACL               = 0x28
	ZFS_IOC_GET_FSACL               = 0x29
	ZFS_IOC_SHARE                   = 0x2a
	ZFS_IOC_INHERIT_PROP            = 0x2b
	ZFS_IOC_SMB_ACL                 = 0x2c
	ZFS_IOC_USERSPACE_ONE           = 0x2d
	ZFS_IOC_USERSPACE_MANY          = 0x2e
	ZFS_IOC_USERSPACE_UPGRADE       = 0x2f
	ZFS_IOC_HOLD                    = 0x30
	ZFS_IOC_RELEASE                 = 0x31
	ZFS_IOC_GET_HOLDS               = 0x32
	ZFS_IOC_OBJSET_RECVD_PROPS      = 0x33
	ZFS_IOC_VDEV_SPLIT              = 0x34
	ZFS_IOC_NEXT_OBJ                = 0x35
	ZFS_IOC_DIFF                    = 0x36
	ZFS_IOC_TMP_SNAPSHOT            = 0x37
	ZFS_IOC_OBJ_TO_STATS            = 0x38
	ZFS_IOC_SPACE_WRITTEN           = 0x39
	ZFS_IOC_SPACE_SNAPS             = 0x3a
	ZFS_IOC_DESTROY_SNAPS           = 0x3b
	ZFS_IOC_POOL_REGUID             = 0x3c
	ZFS_IOC_POOL_REOPEN             = 0x3d
	ZFS_IOC_SEND_PROGRESS           = 0x3e
	ZFS_IOC_LOG_HISTORY             = 0x3f
	ZFS_IOC_SEND_NEW                = 0x40
	ZFS_IOC_SEND_SPACE              = 0x41
	ZFS_IOC_CLONE                   = 0x42
	ZFS_IOC_BOOKMARK                = 0x43
	ZFS_IOC_GET_BOOKMARKS           = 0x44
	ZFS_IOC_DESTROY_BOOKMARKS       = 0x45
	ZFS_IOC_RECV_NEW                = 0x46
	ZFS_IOC_POOL_SYNC               = 0x47
	ZFS_IOC_CHANNEL_PROGRAM         = 0x48
	ZFS_IOC_LOAD_KEY                = 0x49
	ZFS_IOC_UNLOAD_KEY              = 0x4a
	ZFS_IOC_CHANGE_KEY              = 0x4b
	ZFS_IOC_REMAP                   = 0x4c
	ZFS_IOC_POOL_CHECKPOINT         = 0x4d
	ZFS_IOC_POOL_DISCARD_CHECKPOINT = 0x4e
	ZFS_IOC_POOL_INITIALIZE         = 0x4f
	ZFS_IOC_POOL_TRIM               = 0x50
	ZFS_IOC_REDACT                  = 0x51
	ZFS_IOC_GET_BOOKMARK_PROPS      = 0x52
	ZFS_IOC_WAIT                    = 0x53
	ZFS_IOC_WAIT_FS                 = 0x54
)
