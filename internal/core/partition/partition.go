package partition

import "hash/fnv"

// Count is the fixed number of logical partitions.
// Never changes after initial deployment: it is a capacity decision, not
// a scaling decision.
const Count = 256

// For returns the partition ID for a dataset name.
// Stable and deterministic: the same dataset always maps to the same
// partition. Uses FNV-32a (stdlib, fast, well-distributed).
func For(dataset string) int {
	h := fnv.New32a()
	h.Write([]byte(dataset))
	return int(h.Sum32()) % Count
}
