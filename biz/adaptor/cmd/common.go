package cmd

import "github.com/xh-polaris/psych-patient/biz/application/dto"

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type Paging struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CreatePatientReq 创建患者会话请求
// 四个参数都允许缺省, 缺省值见病历生成逻辑
type CreatePatientReq struct {
	Age       string `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

type CreatePatientResp struct {
	Code      int                 `json:"code"`
	Msg       string              `json:"msg"`
	SessionId string              `json:"session_id"`
	Profile   *dto.PatientProfile `json:"profile"`
	Persona   *dto.PatientPersona `json:"persona"`
	// MedicalRecord 生成的病历原文
	MedicalRecord string `json:"medical_record,omitempty"`
}

// PatientInfoReq 查询患者信息
type PatientInfoReq struct {
	SessionId string `json:"session_id" query:"session_id"`
}

type PatientInfoResp struct {
	Code    int                 `json:"code"`
	Msg     string              `json:"msg"`
	Profile *dto.PatientProfile `json:"profile"`
	Persona *dto.PatientPersona `json:"persona"`
	Stage   string              `json:"stage"`
}

// ChatReq 单次问答请求, 非流式
type ChatReq struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResp struct {
	Code  int    `json:"code"`
	Msg   string `json:"msg"`
	Reply string `json:"reply"`
	Stage string `json:"stage"`
}

// DialogHistoryReq 查询会话内对话历史
type DialogHistoryReq struct {
	SessionId string `json:"session_id" query:"session_id"`
}

type DialogHistoryResp struct {
	Code    int              `json:"code"`
	Msg     string           `json:"msg"`
	History []dto.DialogTurn `json:"history"`
}

// StageReq 切换会谈阶段
type StageReq struct {
	SessionId string `json:"session_id"`
	Stage     string `json:"stage"`
}

type StageResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// RegenerateReq 重新生成病历并替换会话中的患者设定
type RegenerateReq struct {
	SessionId string `json:"session_id"`
	Age       string `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

type RegenerateResp struct {
	Code          int                 `json:"code"`
	Msg           string              `json:"msg"`
	Profile       *dto.PatientProfile `json:"profile"`
	Persona       *dto.PatientPersona `json:"persona"`
	MedicalRecord string              `json:"medical_record,omitempty"`
}

// DeleteReq 删除会话
type DeleteReq struct {
	SessionId string `json:"session_id"`
}

type DeleteResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// ListHistoryReq 分页查询归档的访谈记录
type ListHistoryReq struct {
	Paging
}

type ListHistoryResp struct {
	Code    int        `json:"code"`
	Msg     string     `json:"msg"`
	History []*History `json:"history"`
	Total   int64      `json:"total"`
}

type History struct {
	ID        string    `json:"id"`
	SessionId string    `json:"session_id"`
	Dialogs   []*Dialog `json:"dialogs"`
	Report    *Report   `json:"report"`
	StartTime int64     `json:"start_time"`
	EndTime   int64     `json:"end_time"`
}

type Dialog struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Report struct {
	Total       float64  `json:"total"`
	Highlights  []string `json:"highlights"`
	Problems    []string `json:"problems"`
	Suggestions []string `json:"suggestions"`
	Raw         string   `json:"raw,omitempty"`
}
