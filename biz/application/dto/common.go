package dto

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// DialogTurn 一条对话记录, speaker 为 doctor 或 patient
type DialogTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// ChatHistory redis中的对话记录
type ChatHistory struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
