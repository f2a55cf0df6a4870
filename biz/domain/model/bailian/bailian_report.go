package bailian

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/util"
)

var _ model.ReportApp = (*BLReportApp)(nil)

// BLReportApp 是阿里云报告分析大模型应用
// 单次对话, 无需管理上下文
type BLReportApp struct {
	appId  string
	apiKey string
	url    string
	header http.Header
}

// NewBLReportApp 创建一个百炼报告分析模型应用实例
func NewBLReportApp(appId string, apiKey string) model.ReportApp {
	app := &BLReportApp{
		appId:  appId,
		apiKey: apiKey,
		url:    fmt.Sprintf("https://dashscope.aliyuncs.com/api/v1/apps/%s/completion", appId),
		header: http.Header{},
	}

	app.header.Set("Authorization", "Bearer "+apiKey)
	app.header.Set("Content-Type", "application/json")

	return app
}

var instance model.ReportApp
var once sync.Once

// GetBLReportApp 获取百炼报告分析模型单例
func GetBLReportApp() model.ReportApp {
	once.Do(func() {
		c := config.GetConfig()
		instance = NewBLReportApp(c.BaiLianReport.AppId, c.BaiLianReport.ApiKey)
	})
	return instance
}

// Call 获取评估报告
// 评分结果应是JSON, 模型偶尔会包上代码块围栏或输出散文, 解析失败时保留原文而不是报错
func (app *BLReportApp) Call(prompt string) (*dto.InterviewReport, error) {
	var report dto.InterviewReport
	client := util.GetHttpClient()

	body := map[string]any{
		"input":      map[string]string{"prompt": prompt},
		"parameters": map[string]any{},
	}
	res, err := client.Req(consts.Post, app.url, app.header, body)
	if err != nil {
		return nil, err
	}
	output, ok := res["output"].(map[string]any)
	if !ok {
		return nil, consts.ErrGeneration
	}
	text, ok := output["text"].(string)
	if !ok {
		return nil, consts.ErrGeneration
	}

	cleaned := strings.TrimSpace(strings.Replace(text, "`", "", -1))
	cleaned = strings.TrimPrefix(cleaned, "json")
	log.Info("report result:", cleaned)
	if err = json.Unmarshal([]byte(cleaned), &report); err != nil {
		return &dto.InterviewReport{Raw: text}, nil
	}
	return &report, nil
}

// Close 释放相关资源
// BLReport暂时没有需要释放的资源
func (app *BLReportApp) Close() error {
	return nil
}
