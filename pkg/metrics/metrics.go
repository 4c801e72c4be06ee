package metrics

const namespace = "scmfs_node"

// NodeMetrics groups metrics of all node subsystems registered in the
// default Prometheus registry.
type NodeMetrics struct {
	proxyHashMetrics
}

// NewNodeMetrics creates, registers and returns NodeMetrics instance.
func NewNodeMetrics() *NodeMetrics {
	proxyHash := newProxyHashMetrics()
	proxyHash.register()

	return &NodeMetrics{
		proxyHashMetrics: proxyHash,
	}
}
