package retrieval

import "github.com/poiesic/webdex/core"

// RetrieveMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results
// during a query, e.g. for diagnostics tooling.
type RetrieveMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	PartitionResult(partition string, candidates []core.QueryCandidate)
	PartitionFailed(partition string, err error)
	Finish(merged []core.QueryCandidate)
}

// noopMonitor is a no-op implementation of RetrieveMonitor
type noopMonitor struct{}

var _ RetrieveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                    {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)                   {}
func (n *noopMonitor) PartitionResult(_ string, _ []core.QueryCandidate) {}
func (n *noopMonitor) PartitionFailed(_ string, _ error)                 {}
func (n *noopMonitor) Finish(_ []core.QueryCandidate)                    {}
