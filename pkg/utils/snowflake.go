package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

const epoch = int64(1577836800000) // 起始时间戳 (2020-01-01)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeErr  error
)

// InitSnowflake 初始化全局ID生成节点，同一部署内每个进程的 nodeID 必须不同
func InitSnowflake(nodeID int64) error {
	nodeOnce.Do(func() {
		snowflake.Epoch = epoch
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	return errors.Wrap(nodeErr, "init snowflake node")
}

// GenerateID 生成按时间递增的唯一ID，用作所有记录的主键；未显式初始化时使用节点 1
func GenerateID() int64 {
	_ = InitSnowflake(1)
	return node.Generate().Int64()
}
