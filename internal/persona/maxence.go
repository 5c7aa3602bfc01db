package persona

import (
	"fmt"
	"strings"
	"time"

	"github.com/Maxencd/maxence/internal/models"
)

// maxenceFacts are the fixed profile facts templated into replies.
var maxenceFacts = struct {
	Name   string
	Gender string
	Trait  string
	Style  string
	Movies []string
}{
	Name:   "maxence",
	Gender: "男",
	Trait:  "地表最帅男人",
	Style:  "温柔细致",
	Movies: []string{"伏地魔", "法国skam"},
}

// Maxence is the detailed actor persona. Category order matters:
// greeting beats personal info even though the keywords overlap.
var Maxence = &Persona{
	Name:       maxenceFacts.Name,
	Type:       models.TypeMaxence,
	ReplyDelay: 800 * time.Millisecond,
	rules: []rule{
		{
			match: func(prompt string) bool { return strings.TrimSpace(prompt) == "" },
			reply: fixed("我在你说~"),
		},
		{
			match: contains("你好", "嗨", "哈喽"),
			reply: fixed(fmt.Sprintf("你好呀~ 我是%s，很高兴认识你！", maxenceFacts.Name)),
		},
		{
			match: contains(
				"穿搭", "穿衣", "时尚", "服装", "搭配",
				"饮食", "吃", "餐厅", "食物", "菜谱",
				"生活习惯", "习惯", "作息", "日常", "生活",
			),
			reply: lifestyleReply,
		},
		{
			match: contains("电影", "演过", "作品", "角色", "伏地魔", "skam"),
			reply: fixed(fmt.Sprintf(
				"我曾有幸参与了《%s》和《%s》等作品的拍摄。每一部作品对我来说都是一次宝贵的经历，让我能够在不同的角色中体验不同的人生。如果你对这些作品感兴趣，我很乐意和你分享更多关于拍摄过程中的有趣故事~",
				maxenceFacts.Movies[0], maxenceFacts.Movies[1],
			)),
		},
		{
			match: contains("是谁", "介绍", "你好", "嗨", "个人信息", "特点", "性别"),
			reply: fixed(fmt.Sprintf(
				"你好呀~ 我是%s，性别是%s。有人说我是%s，这让我感到很荣幸呢。我演过《%s》和《%s》等电影。很高兴能和你聊天，有什么想知道的都可以问我哦~",
				maxenceFacts.Name, maxenceFacts.Gender, maxenceFacts.Trait,
				maxenceFacts.Movies[0], maxenceFacts.Movies[1],
			)),
		},
	},
	fallback: []string{
		"嗯...这个问题很有意思呢，让我仔细想想~",
		"谢谢你的问题，我很乐意和你分享我的想法。",
		"这个话题我也很感兴趣呢，我们可以多交流交流。",
		"你的想法很独特，我很喜欢听你说话。",
		"生活中充满了各种可能性，我们要勇敢地去探索。",
	},
	pick: defaultPick,
}

// lifestyleReply picks the clothing, diet or routine paragraph, falling
// back to the generic lifestyle line when no sub-category matches.
func lifestyleReply(prompt string) string {
	switch {
	case contains("穿搭", "穿衣", "搭配")(prompt):
		return "关于日常穿搭，我通常喜欢简约又有质感的风格。一件合身的白衬衫搭配牛仔裤永远不会出错，再加上一双经典的小白鞋，既舒适又时尚。天气凉的时候，我会选择一件轻薄的针织衫作为外搭，既保暖又不会显得厚重。"
	case contains("饮食", "吃", "食物")(prompt):
		return "我的日常饮食比较注重营养均衡呢。早餐通常是全麦面包配牛油果和水煮蛋，再加上一杯鲜榨果汁。午餐我会选择蛋白质丰富的食物，比如鸡胸肉或者鱼类，搭配大量的蔬菜。晚餐会相对清淡一些，可能是一碗蔬菜沙拉或者是一碗温热的汤。当然啦，偶尔也会享受一下美食的快乐，毕竟生活需要一些小确幸~"
	case contains("生活习惯", "习惯", "作息")(prompt):
		return "我保持着比较规律的作息习惯。每天早上7点左右起床，然后进行20分钟的冥想，让自己的身心都保持在一个平静的状态。晚上我会尽量在11点前上床睡觉，睡前会看一会儿书来放松自己。每周我会运动3-4次，比如跑步、游泳或者去健身房锻炼，保持身体的活力和健康。"
	}
	return "生活是一场美丽的旅程，我们要学会享受其中的每一刻。保持积极的心态，善待自己，也善待他人，这样的生活才会充满阳光和温暖。"
}
