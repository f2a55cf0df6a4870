package history

import "time"
import "go.mongodb.org/mongo-driver/bson/primitive"

// History 一次完整访谈的归档记录
type History struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionId string             `bson:"session_id" json:"session_id"`
	Dialogs   []*Dialog          `bson:"dialogs" json:"dialogs"`
	Report    *Report            `bson:"report" json:"report"`
	StartTime time.Time          `bson:"start_time" json:"start_time"`
	EndTime   time.Time          `bson:"end_time" json:"end_time"`
}

type Dialog struct {
	Role    string `bson:"role" json:"role"`
	Content string `bson:"content" json:"content"`
}

// Report 问诊评估结果
type Report struct {
	Total       float64  `bson:"total" json:"total"`
	Highlights  []string `bson:"highlights" json:"highlights"`
	Problems    []string `bson:"problems" json:"problems"`
	Suggestions []string `bson:"suggestions" json:"suggestions"`
	Raw         string   `bson:"raw,omitempty" json:"raw,omitempty"`
}
