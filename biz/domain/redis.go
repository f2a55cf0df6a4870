package domain

import (
	"encoding/json"
	"sync"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	rs "github.com/xh-polaris/psych-patient/biz/infrastructure/redis"
)

var (
	instance *RedisHelper
	once     sync.Once
)

// RedisHelper 以会话为键维护对话记录队列, 供访谈结束后的评估使用
type RedisHelper struct {
	rs *redis.Redis
}

func GetRedisHelper() *RedisHelper {
	c := config.GetConfig()
	once.Do(func() {
		instance = &RedisHelper{
			rs: rs.NewRedis(c),
		}
	})
	return instance
}

// AddDoctor 添加医生发言记录
func (r *RedisHelper) AddDoctor(sessionId, msg string) error {
	return r.add(sessionId, consts.SpeakerDoctor, msg)
}

// AddPatient 添加患者发言记录
func (r *RedisHelper) AddPatient(sessionId, msg string) error {
	return r.add(sessionId, consts.SpeakerPatient, msg)
}

// AddSystem 添加系统记录
func (r *RedisHelper) AddSystem(sessionId, msg string) error {
	return r.add(sessionId, "system", msg)
}

// add 将对话记录添加到队列尾部
func (r *RedisHelper) add(sessionId, role, msg string) error {
	history := dto.ChatHistory{
		Role:    role,
		Content: msg,
	}

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}

	_, err = r.rs.Rpush(sessionId, string(data))
	return err
}

// Load 获取session对应的所有对话记录
func (r *RedisHelper) Load(sessionId string) ([]*dto.ChatHistory, error) {
	data, err := r.rs.Lrange(sessionId, 0, -1)
	if err != nil {
		return nil, err
	}

	var history []*dto.ChatHistory
	for _, v := range data {
		var his dto.ChatHistory
		if err = json.Unmarshal([]byte(v), &his); err != nil {
			return nil, err
		}
		history = append(history, &his)
	}
	return history, nil
}

// Remove 删除Session对应的记录
func (r *RedisHelper) Remove(sessionId string) error {
	_, err := r.rs.Del(sessionId)
	return err
}
