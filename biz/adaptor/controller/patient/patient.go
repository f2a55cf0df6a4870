package patient

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/xh-polaris/psych-patient/biz/adaptor"
	"github.com/xh-polaris/psych-patient/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-patient/provider"
)

// Create 生成病历并创建患者会话
// @router /patient/create [POST]
func Create(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.CreatePatientReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.Create(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Info 查询患者设定与当前阶段
// @router /patient/info [GET]
func Info(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.PatientInfoReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.Info(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Chat 单次问答, 非流式
// @router /patient/chat [POST]
func Chat(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ChatReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.Chat(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DialogHistory 查询会话内对话历史
// @router /patient/history [GET]
func DialogHistory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.DialogHistoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.DialogHistory(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SetStage 切换会谈阶段
// @router /patient/stage [POST]
func SetStage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.StageReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.SetStage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Regenerate 重新生成病历并替换会话设定
// @router /patient/regenerate [POST]
func Regenerate(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.RegenerateReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.Regenerate(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Delete 删除会话
// @router /patient/delete [POST]
func Delete(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.DeleteReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.PatientService.Delete(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
