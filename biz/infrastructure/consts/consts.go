package consts

// 数据库相关
const (
	CreateTime = "create_time"
	StartTime  = "start_time"
)

// Post http
const (
	Post = "POST"
)

// 对话命令
const (
	EndCmd = -1
	Ping   = 1
)

// 对话双方
const (
	SpeakerDoctor  = "doctor"
	SpeakerPatient = "patient"
)
