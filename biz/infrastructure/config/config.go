package config

import (
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var config *Config

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Mongo    struct {
		URL string
		DB  string
	}
	Cache         cache.CacheConf
	Redis         *redis.RedisConf
	RabbitMQ      RabbitMQ
	BaiLianChat   BaiLianChat
	BaiLianReport BaiLianReport
	OpenAI        OpenAI
	Record        Record
}

type RabbitMQ struct {
	Url string
}

type BaiLianChat struct {
	AppId  string
	ApiKey string
}

type BaiLianReport struct {
	AppId  string
	ApiKey string
}

// OpenAI 嵌入模型配置, 用于病历检索库
type OpenAI struct {
	ApiKey     string
	BaseUrl    string
	EmbedModel string
}

// Record 病历生成配置
type Record struct {
	// SymptomDir 症状参考文档(markdown)目录
	SymptomDir string
	// StoryK 诱因故事检索条数
	StoryK int `json:",default=1"`
	// SymptomK 症状参考检索条数
	SymptomK int `json:",default=3"`
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}
