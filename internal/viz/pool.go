package viz

import (
	"sync"
	"sync/atomic"
)

// NodePool bounds allocation churn when visualizations are rendered
// repeatedly. It is optional: a nil pool means plain allocation everywhere.
// Safe for concurrent use. Reuse counters are observability only.
type NodePool struct {
	nodes sync.Pool
	conns sync.Pool

	nodeGets   atomic.Uint64
	nodeAllocs atomic.Uint64
	connGets   atomic.Uint64
	connAllocs atomic.Uint64
}

func NewNodePool() *NodePool {
	p := &NodePool{}
	p.nodes.New = func() any {
		p.nodeAllocs.Add(1)
		return &Node{}
	}
	p.conns.New = func() any {
		p.connAllocs.Add(1)
		return &Connection{}
	}
	return p
}

// GetNode returns a zeroed node. Allocates when the pool is nil or empty.
func (p *NodePool) GetNode() *Node {
	if p == nil {
		return &Node{}
	}
	p.nodeGets.Add(1)
	n := p.nodes.Get().(*Node)
	*n = Node{}
	return n
}

// PutNode returns a node for reuse. Nil pools and nil nodes are ignored.
func (p *NodePool) PutNode(n *Node) {
	if p == nil || n == nil {
		return
	}
	n.Systems = nil
	n.Regions = nil
	p.nodes.Put(n)
}

func (p *NodePool) GetConnection() *Connection {
	if p == nil {
		return &Connection{}
	}
	p.connGets.Add(1)
	c := p.conns.Get().(*Connection)
	*c = Connection{}
	return c
}

func (p *NodePool) PutConnection(c *Connection) {
	if p == nil || c == nil {
		return
	}
	p.conns.Put(c)
}

type PoolStats struct {
	NodeGets   uint64
	NodeAllocs uint64
	ConnGets   uint64
	ConnAllocs uint64
}

// ReuseRate is the fraction of gets served without a fresh allocation.
func (s PoolStats) ReuseRate() float64 {
	total := s.NodeGets + s.ConnGets
	if total == 0 {
		return 0
	}
	allocs := s.NodeAllocs + s.ConnAllocs
	if allocs > total {
		allocs = total
	}
	return float64(total-allocs) / float64(total)
}

func (p *NodePool) Stats() PoolStats {
	if p == nil {
		return PoolStats{}
	}
	return PoolStats{
		NodeGets:   p.nodeGets.Load(),
		NodeAllocs: p.nodeAllocs.Load(),
		ConnGets:   p.connGets.Load(),
		ConnAllocs: p.connAllocs.Load(),
	}
}
