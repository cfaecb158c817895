// Package zfs exposes pools, devices (vdevs) and datasets as lazily
// fetched, cached objects on top of the control channel. Kernel state is
// assumed stable for the lifetime of one Root: every cache fills on first
// read and is never invalidated.
package zfs

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"k8s.io/klog/v2"

	"github.com/zfskit/zinspect/pkg/config"
	"github.com/zfskit/zinspect/pkg/ioctl"
	"github.com/zfskit/zinspect/pkg/models"
	"github.com/zfskit/zinspect/pkg/nvlist"
)

// ErrNotFound reports an expected entry missing from a kernel reply, such
// as a pool status list without a vdev_tree. It is distinct from transport
// and decode errors.
var ErrNotFound = errors.New("zfs: not found")

// Channel is the control-channel surface the domain model consumes.
// *ioctl.Handle satisfies it; tests substitute a fake.
type Channel interface {
	PoolConfigs() (*nvlist.List, error)
	PoolStats(pool string) (*nvlist.List, error)
	PoolGetProps(pool string) (*nvlist.List, error)
	ObjsetStats(objset string) (*nvlist.List, error)
	DatasetListNext(name string, cookie uint64) (*ioctl.IterState, error)
}

type vdevKey struct {
	pool string
	guid uint64
}

// Root owns the control channel and all caches. Pool, Vdev and Dataset
// objects hold a reference back to it and stay usable as long as it lives.
type Root struct {
	ch Channel

	mu           sync.Mutex
	config       *nvlist.List
	datasetNames []string
	poolStats    map[string]*nvlist.List
	objsetStats  map[string]*nvlist.List
	vdevs        map[vdevKey]*nvlist.List
}

// Open opens the control device named by the configuration and returns a
// Root over it.
func Open(cfg *config.Config) (*Root, error) {
	h, err := ioctl.OpenPath(cfg.DevicePath)
	if err != nil {
		return nil, err
	}
	return New(h), nil
}

// New returns a Root over an already open channel.
func New(ch Channel) *Root {
	return &Root{
		ch:          ch,
		poolStats:   make(map[string]*nvlist.List),
		objsetStats: make(map[string]*nvlist.List),
		vdevs:       make(map[vdevKey]*nvlist.List),
	}
}

// Close closes the underlying channel if it is closable.
func (r *Root) Close() error {
	if c, ok := r.ch.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Pools returns one Pool per imported pool, in kernel order.
func (r *Root) Pools() ([]*Pool, error) {
	cfg, err := r.getConfig()
	if err != nil {
		return nil, err
	}
	pools := make([]*Pool, 0, cfg.Len())
	for _, name := range cfg.Keys() {
		pools = append(pools, &Pool{root: r, name: name})
	}
	return pools, nil
}

func (r *Root) getConfig() (*nvlist.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config != nil {
		return r.config, nil
	}
	cfg, err := r.ch.PoolConfigs()
	if err != nil {
		return nil, fmt.Errorf("pool configs: %w", err)
	}
	r.config = cfg
	return cfg, nil
}

func (r *Root) getPoolStats(pool string) (*nvlist.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.poolStats[pool]; ok {
		return l, nil
	}
	l, err := r.ch.PoolStats(pool)
	if err != nil {
		return nil, fmt.Errorf("pool stats %s: %w", pool, err)
	}
	r.poolStats[pool] = l
	return l, nil
}

func (r *Root) getObjsetStats(name string) (*nvlist.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.objsetStats[name]; ok {
		return l, nil
	}
	l, err := r.ch.ObjsetStats(name)
	if err != nil {
		return nil, fmt.Errorf("objset stats %s: %w", name, err)
	}
	r.objsetStats[name] = l
	return l, nil
}

// getVdev locates a vdev node by guid inside a pool's device tree:
// breadth-first from vdev_tree, descending through each node's "children"
// array. Found nodes are cached by (pool, guid).
func (r *Root) getVdev(pool string, guid uint64) (*nvlist.List, error) {
	r.mu.Lock()
	if l, ok := r.vdevs[vdevKey{pool, guid}]; ok {
		r.mu.Unlock()
		return l, nil
	}
	r.mu.Unlock()

	stats, err := r.getPoolStats(pool)
	if err != nil {
		return nil, err
	}
	top, ok := stats.List("vdev_tree")
	if !ok {
		return nil, fmt.Errorf("pool %s has no vdev_tree: %w", pool, ErrNotFound)
	}

	queue := []*nvlist.List{top}
	for len(queue) > 0 {
		vd := queue[0]
		queue = queue[1:]
		vguid, ok := vd.Uint64("guid")
		if !ok {
			continue
		}
		if vguid == guid {
			r.mu.Lock()
			r.vdevs[vdevKey{pool, guid}] = vd
			r.mu.Unlock()
			return vd, nil
		}
		if children, ok := vd.Lists("children"); ok {
			queue = append(queue, children...)
		}
	}

	return nil, nil
}

// getDatasetNames flattens the dataset hierarchy of every pool, once. The
// walk is the cookie protocol: each step yields a sibling cookie for the
// parent and a fresh (child, 0) entry to descend into.
func (r *Root) getDatasetNames() ([]string, error) {
	r.mu.Lock()
	if r.datasetNames != nil {
		names := r.datasetNames
		r.mu.Unlock()
		return names, nil
	}
	r.mu.Unlock()

	cfg, err := r.getConfig()
	if err != nil {
		return nil, err
	}

	var names []string
	type frame struct {
		name   string
		cookie uint64
	}
	for _, pool := range cfg.Keys() {
		if _, err := r.getObjsetStats(pool); err != nil {
			return nil, err
		}
		names = append(names, pool)

		stack := []frame{{pool, 0}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			st, err := r.ch.DatasetListNext(top.name, top.cookie)
			if err != nil {
				return nil, fmt.Errorf("dataset list %s: %w", top.name, err)
			}
			if st == nil {
				continue
			}
			names = append(names, st.Name)
			stack = append(stack, frame{top.name, st.Cookie})
			stack = append(stack, frame{st.Name, 0})
		}
	}

	r.mu.Lock()
	r.datasetNames = names
	r.mu.Unlock()
	return names, nil
}

// Pool is one imported pool, identified by name.
type Pool struct {
	root *Root
	name string
}

// Name returns the pool name.
func (p *Pool) Name() string {
	return p.name
}

// Properties returns the pool's property list (like zpool get).
func (p *Pool) Properties() (*nvlist.List, error) {
	l, err := p.root.ch.PoolGetProps(p.name)
	if err != nil {
		return nil, fmt.Errorf("pool props %s: %w", p.name, err)
	}
	return l, nil
}

// RootVdev returns the root node of the pool's device tree.
func (p *Pool) RootVdev() (*Vdev, error) {
	stats, err := p.root.getPoolStats(p.name)
	if err != nil {
		return nil, err
	}
	vl, ok := stats.List("vdev_tree")
	if !ok {
		return nil, fmt.Errorf("pool %s has no vdev_tree: %w", p.name, ErrNotFound)
	}
	return newVdev(p.root, p.name, vl)
}

// Datasets returns the pool's datasets: every enumerated name equal to the
// pool name or under it, separator-bounded ("tank" matches "tank/a" but
// not "tankx").
func (p *Pool) Datasets() ([]*Dataset, error) {
	names, err := p.root.getDatasetNames()
	if err != nil {
		return nil, err
	}
	var out []*Dataset
	for _, name := range names {
		if name == p.name || strings.HasPrefix(name, p.name+"/") {
			out = append(out, &Dataset{root: p.root, name: name})
		}
	}
	return out, nil
}

// Vdev is one node of a pool's device tree, identified by the guid unique
// within its pool.
type Vdev struct {
	root *Root
	pool string
	guid uint64
	typ  models.VdevType
}

func newVdev(root *Root, pool string, vl *nvlist.List) (*Vdev, error) {
	guid, ok := vl.Uint64("guid")
	if !ok {
		return nil, fmt.Errorf("vdev has no guid: %w", ErrNotFound)
	}
	typ, ok := vl.String("type")
	if !ok {
		return nil, fmt.Errorf("vdev %d has no type: %w", guid, ErrNotFound)
	}
	return &Vdev{
		root: root,
		pool: pool,
		guid: guid,
		typ:  models.VdevTypeFromString(typ),
	}, nil
}

// GUID returns the vdev's pool-unique identifier.
func (v *Vdev) GUID() uint64 {
	return v.guid
}

// Type returns the vdev's classification.
func (v *Vdev) Type() models.VdevType {
	return v.typ
}

// Children returns the vdev's direct children. Malformed child nodes are
// skipped, matching enumeration being best-effort over unknown layouts.
func (v *Vdev) Children() ([]*Vdev, error) {
	vl, err := v.root.getVdev(v.pool, v.guid)
	if err != nil {
		return nil, err
	}
	if vl == nil {
		return nil, nil
	}
	children, ok := vl.Lists("children")
	if !ok {
		return nil, nil
	}
	out := make([]*Vdev, 0, len(children))
	for _, cl := range children {
		cv, err := newVdev(v.root, v.pool, cl)
		if err != nil {
			klog.V(1).Infof("skipping malformed vdev child under %d in %s: %v", v.guid, v.pool, err)
			continue
		}
		out = append(out, cv)
	}
	return out, nil
}

// Stats returns the vdev's statistics record. A vdev that has vanished
// from the tree, or carries no vdev_stats, yields the zero record.
func (v *Vdev) Stats() (models.VdevStats, error) {
	vl, err := v.root.getVdev(v.pool, v.guid)
	if err != nil {
		return models.VdevStats{}, err
	}
	if vl == nil {
		return models.VdevStats{}, nil
	}
	raw, ok := vl.Uint64s("vdev_stats")
	if !ok {
		return models.VdevStats{}, nil
	}
	return models.VdevStatsFromSlice(raw), nil
}

// Dataset is one dataset (object set), identified by name.
type Dataset struct {
	root *Root
	name string
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Stats returns the dataset's object-set statistics list, fetched once and
// cached.
func (d *Dataset) Stats() (*nvlist.List, error) {
	return d.root.getObjsetStats(d.name)
}

func (d *Dataset) prop(name string) (*nvlist.List, error) {
	stats, err := d.Stats()
	if err != nil {
		return nil, err
	}
	l, ok := stats.List(name)
	if !ok {
		return nil, nil
	}
	return l, nil
}

// PropUint64 returns the named property's numeric value. A property that
// is missing, or has no numeric value entry, is absent (ok=false), not an
// error; fetch failures still are.
func (d *Dataset) PropUint64(name string) (uint64, bool, error) {
	l, err := d.prop(name)
	if err != nil || l == nil {
		return 0, false, err
	}
	v, ok := l.Uint64("value")
	return v, ok, nil
}

// PropString returns the named property's string value, with the same
// absence contract as PropUint64.
func (d *Dataset) PropString(name string) (string, bool, error) {
	l, err := d.prop(name)
	if err != nil || l == nil {
		return "", false, err
	}
	v, ok := l.String("value")
	return v, ok, nil
}
