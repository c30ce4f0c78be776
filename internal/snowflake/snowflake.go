package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node        *snowflake.Node
	defaultOnce sync.Once
)

// Init initializes the snowflake node with the given node ID.
// Node ID should be unique across all instances (0-1023).
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID generates a new unique snowflake ID. Without a prior Init the node
// defaults to ID 1.
func NextID() int64 {
	defaultOnce.Do(func() {
		if node == nil {
			node, _ = snowflake.NewNode(1)
		}
	})
	return node.Generate().Int64()
}
