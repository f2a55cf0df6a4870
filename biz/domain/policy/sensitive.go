package policy

import "strings"

// sensitiveHints 敏感话题关键词, 固定配置而非计算所得
var sensitiveHints = []string{
	"自杀", "伤害自己", "家暴", "性", "成瘾", "酒精",
	"毒品", "药物滥用", "犯罪", "赌博", "怀孕", "隐私",
}

// IsSensitive 判断一句话是否触及敏感话题
// 子串命中即视为敏感, 不做分词或词干化
func IsSensitive(utterance string) bool {
	for _, k := range sensitiveHints {
		if strings.Contains(utterance, k) {
			return true
		}
	}
	return false
}
