package redis

import (
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// NewRedis 根据配置创建redis客户端
func NewRedis(c *config.Config) *redis.Redis {
	return redis.MustNewRedis(*c.Redis)
}
