// Package persona implements the scripted reply generators behind the
// "@" mention personas. Replies are canned strings selected by keyword
// rules; there is no model behind them.
package persona

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Maxencd/maxence/internal/models"
)

// Persona is a fixed scripted reply profile keyed by an "@" mention.
// The two instances in this package are process-wide constants.
type Persona struct {
	Name       string             // nickname shown on synthetic replies
	Type       models.MessageType // wire type of queries addressed to it
	ReplyDelay time.Duration      // thinking pause before the synthetic reply

	rules    []rule
	fallback []string
	pick     func(n int) int
}

// rule pairs a predicate with its reply. Rules run in declared order and
// the first match wins; later rules are never consulted.
type rule struct {
	match func(prompt string) bool
	reply func(prompt string) string
}

// Reply maps a prompt to this persona's canned answer. Keyword branches
// are deterministic; prompts matching no rule draw uniformly from the
// fallback pool.
func (p *Persona) Reply(prompt string) string {
	for _, r := range p.rules {
		if r.match(prompt) {
			return r.reply(prompt)
		}
	}
	return p.fallback[p.pick(len(p.fallback))]
}

// FallbackPool returns the fixed random-reply pool.
func (p *Persona) FallbackPool() []string {
	pool := make([]string, len(p.fallback))
	copy(pool, p.fallback)
	return pool
}

// ByType resolves the persona addressed by a message type, or nil for
// ordinary messages.
func ByType(t models.MessageType) *Persona {
	switch t {
	case models.TypeAIChat:
		return ChuanXiaoNong
	case models.TypeMaxence:
		return Maxence
	}
	return nil
}

// ByName resolves a persona by its mention name, or nil.
func ByName(name string) *Persona {
	switch name {
	case ChuanXiaoNong.Name:
		return ChuanXiaoNong
	case Maxence.Name:
		return Maxence
	}
	return nil
}

func contains(keywords ...string) func(string) bool {
	return func(prompt string) bool {
		for _, kw := range keywords {
			if strings.Contains(prompt, kw) {
				return true
			}
		}
		return false
	}
}

func fixed(text string) func(string) string {
	return func(string) string { return text }
}

func defaultPick(n int) int {
	return rng.Intn(n)
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))
