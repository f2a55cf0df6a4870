package dto

type (
	// ChatStartReq 开始对话请求
	ChatStartReq struct {
		// 开始的时间戳
		Timestamp int64 `json:"timestamp"`
		// 使用者标记
		From string `json:"from"`
		// 会话id, 为空时新建会话
		SessionId string `json:"session_id"`
	}

	// ChatReq 对话请求
	ChatReq struct {
		// 命令, 0对话, -1结束, 1心跳
		Cmd int64  `json:"cmd"`
		Msg string `json:"msg"`
		// 阶段切换, 为空时保持当前阶段
		Stage string `json:"stage,omitempty"`
		// 覆盖病历/行为参数, 一般用于前端调试
		Profile *PatientProfile `json:"profile,omitempty"`
		Persona *PatientPersona `json:"persona,omitempty"`
	}

	// ChatEndResp 对话结束响应
	ChatEndResp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}

	// ChatData 一次流式响应
	ChatData struct {
		Id        uint64 `json:"id"`
		Content   string `json:"content"`
		SessionId string `json:"session_id"`
		Timestamp int64  `json:"timestamp"`
		Finish    string `json:"finish"`
	}

	// InterviewReport 问诊评估报告
	InterviewReport struct {
		Total       float64  `json:"总分"`
		Highlights  []string `json:"主要亮点"`
		Problems    []string `json:"主要问题"`
		Suggestions []string `json:"可操作的改进建议"`
		// Raw 评分结果无法解析为JSON时保留原文
		Raw string `json:"raw,omitempty"`
	}
)
