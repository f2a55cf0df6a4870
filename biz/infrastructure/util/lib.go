package util

import (
	"log"

	"github.com/xh-polaris/psych-patient/biz/adaptor/cmd"
)

// FailOnError 出现异常时中止
func FailOnError(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err.Error())
	}
}

// ParsePaging 解析分页参数
func ParsePaging(p *cmd.Paging) (skip, limit int64) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	skip = int64((p.Page - 1) * p.Limit)
	limit = int64(p.Limit)
	return skip, limit
}
