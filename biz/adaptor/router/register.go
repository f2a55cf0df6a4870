package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/xh-polaris/psych-patient/biz/adaptor/controller/chat"
	"github.com/xh-polaris/psych-patient/biz/adaptor/controller/patient"
)

func Register(r *server.Hertz) {
	root := r.Group("/", _rootMw()...)
	{
		_patient := root.Group("/patient")
		_patient.POST("/create", patient.Create)
		_patient.GET("/info", patient.Info)
		_patient.POST("/chat", patient.Chat)
		_patient.GET("/history", patient.DialogHistory)
		_patient.POST("/stage", patient.SetStage)
		_patient.POST("/regenerate", patient.Regenerate)
		_patient.POST("/delete", patient.Delete)
	}
	{
		_chat := root.Group("/chat")
		_chat.GET("/", append(_longchatMw(), chat.LongChat)...)
		_chat.GET("/history/list", chat.ListHistory)
	}
}
