package persona

import (
	"time"

	"github.com/Maxencd/maxence/internal/models"
)

// ChuanXiaoNong is the generic in-room assistant persona.
var ChuanXiaoNong = &Persona{
	Name:       "川小农",
	Type:       models.TypeAIChat,
	ReplyDelay: 1000 * time.Millisecond,
	rules: []rule{
		{
			match: func(prompt string) bool { return prompt == "" },
			reply: fixed("你好！有什么可以帮助你的吗？"),
		},
		{
			match: contains("你好", "嗨"),
			reply: fixed("你好！很高兴认识你！"),
		},
		{
			match: contains("天气"),
			reply: fixed("今天天气不错，适合出门走走！"),
		},
		{
			match: contains("帮助", "怎么用"),
			reply: fixed("你可以使用@电影 URL来分享电影，或者直接和我聊天！"),
		},
	},
	fallback: []string{
		"你好！我是川小农，很高兴为你服务。",
		"这个问题很有趣，让我思考一下...",
		"感谢你的提问，我会尽力帮助你。",
		"我理解你的需求了，让我来为你解答。",
		"这个问题我还在学习中，不过我可以尝试回答。",
	},
	pick: defaultPick,
}
