package persona

import (
	"strings"
	"testing"

	"github.com/Maxencd/maxence/internal/models"
)

func inPool(pool []string, reply string) bool {
	for _, s := range pool {
		if s == reply {
			return true
		}
	}
	return false
}

func assertStable(t *testing.T, p *Persona, prompt string) string {
	t.Helper()
	first := p.Reply(prompt)
	for i := 0; i < 5; i++ {
		if got := p.Reply(prompt); got != first {
			t.Fatalf("Reply(%q) not deterministic: %q vs %q", prompt, first, got)
		}
	}
	return first
}

func TestAIEmptyPrompt(t *testing.T) {
	if got := ChuanXiaoNong.Reply(""); got != "你好！有什么可以帮助你的吗？" {
		t.Fatalf("empty prompt reply = %q", got)
	}
}

func TestAIWeatherIsFixed(t *testing.T) {
	got := assertStable(t, ChuanXiaoNong, "今天天气怎么样")
	if got != "今天天气不错，适合出门走走！" {
		t.Fatalf("weather reply = %q", got)
	}
}

func TestAIGreetingWinsOverWeather(t *testing.T) {
	// Both keyword groups match; the greeting rule is declared first.
	got := assertStable(t, ChuanXiaoNong, "你好，今天天气如何")
	if got != "你好！很高兴认识你！" {
		t.Fatalf("greeting priority broken, got %q", got)
	}
}

func TestAIHelp(t *testing.T) {
	got := assertStable(t, ChuanXiaoNong, "这个怎么用")
	if !strings.Contains(got, "@电影") {
		t.Fatalf("help reply should mention the movie command, got %q", got)
	}
}

func TestAIFallbackMembership(t *testing.T) {
	pool := ChuanXiaoNong.FallbackPool()
	if len(pool) != 5 {
		t.Fatalf("fallback pool size = %d, want 5", len(pool))
	}
	for i := 0; i < 20; i++ {
		got := ChuanXiaoNong.Reply("量子力学是什么")
		if !inPool(pool, got) {
			t.Fatalf("fallback reply %q not in pool", got)
		}
	}
}

func TestMaxenceBlankPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   "} {
		if got := Maxence.Reply(prompt); got != "我在你说~" {
			t.Fatalf("Reply(%q) = %q, want 我在你说~", prompt, got)
		}
	}
}

func TestMaxenceGreeting(t *testing.T) {
	got := assertStable(t, Maxence, "哈喽")
	if got != "你好呀~ 我是maxence，很高兴认识你！" {
		t.Fatalf("greeting reply = %q", got)
	}
}

func TestMaxenceGreetingBeatsPersonalInfo(t *testing.T) {
	// 你好 appears in both the greeting and the info keyword groups;
	// greeting is checked first.
	got := assertStable(t, Maxence, "你好")
	if got != "你好呀~ 我是maxence，很高兴认识你！" {
		t.Fatalf("greeting must win, got %q", got)
	}
}

func TestMaxenceClothing(t *testing.T) {
	got := assertStable(t, Maxence, "平时的穿搭风格是什么")
	if !strings.Contains(got, "白衬衫") {
		t.Fatalf("clothing reply = %q", got)
	}
}

func TestMaxenceDiet(t *testing.T) {
	got := assertStable(t, Maxence, "你喜欢吃什么")
	if !strings.Contains(got, "营养均衡") {
		t.Fatalf("diet reply = %q", got)
	}
}

func TestMaxenceRoutine(t *testing.T) {
	got := assertStable(t, Maxence, "你的作息规律吗")
	if !strings.Contains(got, "冥想") {
		t.Fatalf("routine reply = %q", got)
	}
}

func TestMaxenceGenericLifestyle(t *testing.T) {
	// 生活 triggers the lifestyle group but no sub-category.
	got := assertStable(t, Maxence, "怎么看待生活")
	if !strings.Contains(got, "美丽的旅程") {
		t.Fatalf("generic lifestyle reply = %q", got)
	}
}

func TestMaxenceFilmography(t *testing.T) {
	got := assertStable(t, Maxence, "你演过哪些角色")
	if !strings.Contains(got, "伏地魔") || !strings.Contains(got, "法国skam") {
		t.Fatalf("filmography reply should list the movies, got %q", got)
	}
}

func TestMaxencePersonalInfo(t *testing.T) {
	got := assertStable(t, Maxence, "介绍一下自己")
	if !strings.Contains(got, "性别是男") || !strings.Contains(got, "地表最帅男人") {
		t.Fatalf("info reply should template the profile facts, got %q", got)
	}
}

func TestMaxenceFallbackMembership(t *testing.T) {
	pool := Maxence.FallbackPool()
	if len(pool) != 5 {
		t.Fatalf("fallback pool size = %d, want 5", len(pool))
	}
	for i := 0; i < 20; i++ {
		got := Maxence.Reply("42")
		if !inPool(pool, got) {
			t.Fatalf("fallback reply %q not in pool", got)
		}
	}
}

func TestByType(t *testing.T) {
	if ByType(models.TypeAIChat) != ChuanXiaoNong {
		t.Fatal("ai_chat should resolve to 川小农")
	}
	if ByType(models.TypeMaxence) != Maxence {
		t.Fatal("maxence_chat should resolve to maxence")
	}
	if ByType(models.TypeText) != nil {
		t.Fatal("plain text has no persona")
	}
}

func TestByName(t *testing.T) {
	if ByName("川小农") != ChuanXiaoNong || ByName("maxence") != Maxence {
		t.Fatal("names should resolve to the fixed instances")
	}
	if ByName("nobody") != nil {
		t.Fatal("unknown name should be nil")
	}
}
