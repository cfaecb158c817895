package ioctl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"

	"github.com/zfskit/zinspect/pkg/nvlist"
)

// DefaultDevice is the well-known ZFS control device node.
const DefaultDevice = "/dev/zfs"

// bufSize is the response buffer capacity, sized for the largest
// anticipated nvlist reply.
const bufSize = 262144

// iocBase is 'Z' << 8, the base of the ZFS ioctl request range.
const iocBase = 0x5a00

var (
	// ErrNameTooLong reports a pool or dataset name that cannot fit in
	// the command record's name field.
	ErrNameTooLong = errors.New("ioctl: name too long")
	// ErrBadReplyName reports a reply name field with no terminator.
	ErrBadReplyName = errors.New("ioctl: unterminated name in reply")
)

// Handle owns one open control device descriptor, one command record and
// one reusable response buffer. The record and buffer are overwritten on
// every call; decoded replies own their data, so they stay valid across
// calls. Calls on one Handle are serialized by an internal mutex.
type Handle struct {
	mu  sync.Mutex
	dev *os.File
	cmd command
	buf []byte
}

// Open opens the control device at DefaultDevice.
func Open() (*Handle, error) {
	return OpenPath(DefaultDevice)
}

// OpenPath opens the control device at the given path.
func OpenPath(path string) (*Handle, error) {
	dev, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioctl: open control device: %w", err)
	}
	return &Handle{dev: dev, buf: make([]byte, bufSize)}, nil
}

// Close closes the control device.
func (h *Handle) Close() error {
	if h.dev == nil {
		return nil
	}
	return h.dev.Close()
}

// IterState is one step of a cookie-driven enumeration: the child's name
// and stats, and the cookie to pass on the next call for the same parent.
type IterState struct {
	Name   string
	List   *nvlist.List
	Cookie uint64
}

// reset zeroes the command record and points its destination buffer at the
// full response buffer.
func (h *Handle) reset() {
	h.cmd = command{}
	h.cmd.NvlistDst = uint64(uintptr(unsafe.Pointer(&h.buf[0])))
	h.cmd.NvlistDstSize = uint64(len(h.buf))
}

// setName copies a bounded, NUL-terminated name into the command record.
// The record is already zeroed, so the terminator is in place.
func (h *Handle) setName(name string) error {
	if len(name)+1 > len(h.cmd.Name) {
		return ErrNameTooLong
	}
	copy(h.cmd.Name[:], name)
	return nil
}

// replyName reads back the NUL-terminated name the kernel left in the
// command record.
func replyName(cmd *command) (string, error) {
	n := bytes.IndexByte(cmd.Name[:], 0)
	if n < 0 {
		return "", ErrBadReplyName
	}
	return string(cmd.Name[:n]), nil
}

// invoke issues the request. A failure carries the platform error code and
// matches errors.Is against the unix errno values.
func (h *Handle) invoke(op uintptr) error {
	if klog.V(1).Enabled() {
		name, _ := replyName(&h.cmd)
		klog.V(1).Infof("zfs ioctl 0x%04x name=%q cookie=%d", iocBase+op, name, h.cmd.Cookie)
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, h.dev.Fd(), iocBase+op, uintptr(unsafe.Pointer(&h.cmd)))
	if errno != 0 {
		return fmt.Errorf("ioctl: zfs ioctl 0x%04x: %w", iocBase+op, errno)
	}
	return nil
}

// invokeList issues the request and decodes the filled region of the
// response buffer.
func (h *Handle) invokeList(op uintptr) (*nvlist.List, error) {
	if err := h.invoke(op); err != nil {
		return nil, err
	}
	n := h.cmd.NvlistDstSize
	if n > uint64(len(h.buf)) {
		n = uint64(len(h.buf))
	}
	return nvlist.Decode(h.buf[:n])
}

// nameList is the common form of most read-only requests: reset, set the
// object name, invoke, decode.
func (h *Handle) nameList(op uintptr, name string) (*nvlist.List, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
	if err := h.setName(name); err != nil {
		return nil, err
	}
	return h.invokeList(op)
}

// PoolConfigs returns the top-level configuration of every imported pool,
// one embedded list per pool name.
func (h *Handle) PoolConfigs() (*nvlist.List, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
	return h.invokeList(ZFS_IOC_POOL_CONFIGS)
}

// PoolStats returns a pool's status list (config, vdev tree, io counters,
// features, a real mixed bag).
func (h *Handle) PoolStats(pool string) (*nvlist.List, error) {
	return h.nameList(ZFS_IOC_POOL_STATS, pool)
}

// PoolGetProps returns a pool's properties (like zpool get).
func (h *Handle) PoolGetProps(pool string) (*nvlist.List, error) {
	return h.nameList(ZFS_IOC_POOL_GET_PROPS, pool)
}

// ObjsetStats returns a dataset's object-set statistics and properties
// (like zfs get).
func (h *Handle) ObjsetStats(objset string) (*nvlist.List, error) {
	return h.nameList(ZFS_IOC_OBJSET_STATS, objset)
}

// DatasetListNext enumerates the children of the named dataset one step at
// a time. Pass cookie 0 to start and the returned Cookie to continue. A
// nil state with nil error means the level is exhausted; the kernel's
// ESRCH exhaustion signal never escapes as an error.
func (h *Handle) DatasetListNext(name string, cookie uint64) (*IterState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
	if err := h.setName(name); err != nil {
		return nil, err
	}
	h.cmd.Cookie = cookie

	list, err := h.invokeList(ZFS_IOC_DATASET_LIST_NEXT)
	if err != nil {
		if errors.Is(err, unix.ESRCH) {
			return nil, nil
		}
		return nil, err
	}

	next, err := replyName(&h.cmd)
	if err != nil {
		return nil, err
	}
	return &IterState{Name: next, List: list, Cookie: h.cmd.Cookie}, nil
}
