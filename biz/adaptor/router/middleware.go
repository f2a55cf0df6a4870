package router

import (
	"github.com/cloudwego/hertz/pkg/app"
)

func _rootMw() []app.HandlerFunc {
	return nil
}

func _longchatMw() []app.HandlerFunc {
	return nil
}
