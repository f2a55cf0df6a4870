package provider

import (
	"github.com/google/wire"

	"github.com/xh-polaris/psych-patient/biz/application/service"
	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/model/bailian"
	"github.com/xh-polaris/psych-patient/biz/domain/model/openai"
	"github.com/xh-polaris/psych-patient/biz/domain/record"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/mapper/history"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config         *config.Config
	PatientService service.PatientService
	ChatService    service.ChatService
	HistoryService service.HistoryService
}

func Get() *Provider {
	return provider
}

// NewChatApp 对话大模型应用
func NewChatApp(c *config.Config) model.ChatApp {
	return bailian.NewBLChatApp(c.BaiLianChat.AppId, c.BaiLianChat.ApiKey)
}

// NewEmbedApp 嵌入模型应用
func NewEmbedApp(c *config.Config) model.EmbedApp {
	return openai.NewEmbedApp(c)
}

// NewSessionStore 会话存储
func NewSessionStore() session.Store {
	return session.NewMemoryStore()
}

var ApplicationSet = wire.NewSet(
	service.PatientServiceSet,
	service.ChatServiceSet,
	service.HistoryServiceSet,
)

var DomainSet = wire.NewSet(
	NewChatApp,
	NewEmbedApp,
	NewSessionStore,
	record.MustNewGenerator,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	history.NewMongoMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfrastructureSet,
)
