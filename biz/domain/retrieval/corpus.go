package retrieval

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// 诱因故事语料, 按少年/青年/中年/老年分组的内置案例
var storyCorpus = []Document{
	{ID: "s1", Content: "因同龄评价敏感与体像困扰，出现社交退缩与自卑；对他人眼光过度警惕，学习效率下降。",
		Meta: map[string]string{"age": "少年", "gender": "女", "severity": "中度"}},
	{ID: "s2", Content: "在高压学业与家庭期待下睡眠减少、思维飘忽，逐渐形成被老师同学针对的被害妄想，课堂注意力显著受损。",
		Meta: map[string]string{"age": "少年", "gender": "男", "severity": "重度"}},
	{ID: "s3", Content: "长时间沉浸网络导致昼夜颠倒与现实接触减少，出现网络人物在现实中监视的关系妄想与轻度思维松弛。",
		Meta: map[string]string{"age": "少年", "gender": "男", "severity": "中度"}},
	{ID: "s4", Content: "与父母分离个体化冲突加剧，情感淡漠与易激惹交替；对家中监控与被控制感增强。",
		Meta: map[string]string{"age": "少年", "gender": "女", "severity": "中度"}},
	{ID: "s5", Content: "经历同伴排斥与校园欺凌后出现强烈被害体验与过度警惕，在校回避明显，偶发第二人称评论性幻听。",
		Meta: map[string]string{"age": "少年", "gender": "男", "severity": "重度"}},
	{ID: "y1", Content: "入职适应不良，工作效率下降；出现同事背后议论与操控的被害观念，夜间幻听逐渐增多。",
		Meta: map[string]string{"age": "青年", "gender": "男", "severity": "重度"}},
	{ID: "y2", Content: "长期财务压力下自我评价下降与思维阻滞增多，伴语义松弛与被跟踪感，社交回避加重。",
		Meta: map[string]string{"age": "青年", "gender": "女", "severity": "中度"}},
	{ID: "y3", Content: "恋爱受挫后社交活动锐减，出现关系妄想与将社交媒体讯息误解为针对性的暗示体验。",
		Meta: map[string]string{"age": "青年", "gender": "女", "severity": "中度"}},
	{ID: "y4", Content: "持续的职业定位冲突后出现思维插入体验与言语组织困难，注意分散，执行功能受损。",
		Meta: map[string]string{"age": "青年", "gender": "男", "severity": "中度"}},
	{ID: "y5", Content: "异地生活支持减少致昼夜节律紊乱，出现邻里窃听的被害妄想与评论性幻听，外出显著减少。",
		Meta: map[string]string{"age": "青年", "gender": "男", "severity": "重度"}},
	{ID: "m1", Content: "双重照护负担下躯体疲惫与情感迟钝并存，形成亲属联手操控财务的被害妄想，家庭互动紧张。",
		Meta: map[string]string{"age": "中年", "gender": "女", "severity": "中度"}},
	{ID: "m2", Content: "晋升受阻后逐步形成被同事排挤与设陷的系统化妄想，回避工作场景，任务完成度明显下降。",
		Meta: map[string]string{"age": "中年", "gender": "男", "severity": "重度"}},
	{ID: "m3", Content: "婚姻冲突频发，出现嫉妒妄想与监控错觉，夜间听到指令性与评论性声音，睡眠进一步恶化。",
		Meta: map[string]string{"age": "中年", "gender": "女", "severity": "重度"}},
	{ID: "m4", Content: "对躯体感受过度关注并产生被植入器械的躯体性妄想，情绪反应平淡，求医依从性下降。",
		Meta: map[string]string{"age": "中年", "gender": "男", "severity": "中度"}},
	{ID: "m5", Content: "自我效能感降低，意志缺乏与社交退缩加重，间断出现思维广播体验，对工作与家庭参与度下降。",
		Meta: map[string]string{"age": "中年", "gender": "男", "severity": "中度"}},
	{ID: "o1", Content: "慢性病困扰与社会角色缩减后形成被邻里投毒的被害妄想，进食减少并避免与外界接触。",
		Meta: map[string]string{"age": "老年", "gender": "女", "severity": "重度"}},
	{ID: "o2", Content: "退休后日常结构松散，自我照料能力下降与无目的游走增多，伴持续低频幻听与活动减少。",
		Meta: map[string]string{"age": "老年", "gender": "男", "severity": "中度"}},
	{ID: "o3", Content: "与成年子女同住时产生系统化关系妄想，坚信被合谋监视并篡改个人物品，家庭冲突升级。",
		Meta: map[string]string{"age": "老年", "gender": "女", "severity": "重度"}},
	{ID: "o4", Content: "面对长期照护议题时产生被强制送往机构的迫害观念，配合度下降，抵触行为增多。",
		Meta: map[string]string{"age": "老年", "gender": "男", "severity": "中度"}},
	{ID: "o5", Content: "夜间警觉性增高与入睡困难，反复报告屋内低声谈论的幻听，安全感下降与活动范围缩小。",
		Meta: map[string]string{"age": "老年", "gender": "女", "severity": "中度"}},
}

// StoryCorpus 返回内置的诱因故事语料
func StoryCorpus() []Document {
	docs := make([]Document, len(storyCorpus))
	copy(docs, storyCorpus)
	return docs
}

// LoadSymptomDir 从目录读取症状参考文档(*.md), 按文件名排序
// 目录不存在或为空时返回空列表, 不视为错误
func LoadSymptomDir(dir string) ([]Document, error) {
	if dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	docs := make([]Document, 0, len(files))
	for idx, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			ID:      "md_" + strconv.Itoa(idx+1),
			Content: string(content),
			Meta:    map[string]string{"filename": filepath.Base(f)},
		})
	}
	return docs, nil
}
