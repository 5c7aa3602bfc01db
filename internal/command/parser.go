// Package command decodes the "@" mention syntax typed into the chat input.
package command

import "strings"

// Persona mention names.
const (
	PersonaAI      = "川小农"
	PersonaMaxence = "maxence"
)

// movieMarker includes the trailing space: a movie share needs at least
// one token after the marker.
const movieMarker = "@电影 "

// Kind discriminates parsed commands.
type Kind int

const (
	KindPlain Kind = iota
	KindMovie
	KindPersona
)

// Command is the transient parse result of one input line. It is consumed
// immediately to build an outbound message.
type Command struct {
	Kind    Kind
	Text    string // plain: the input, verbatim
	URL     string // movie: share target, unvalidated
	Persona string // persona query: addressed persona name
	Prompt  string // persona query: trimmed prompt, may be empty
}

// Parse decodes one raw input line. Prefixes are tried in order; input
// that matches none of them is sent verbatim, including the leading "@".
func Parse(raw string) Command {
	if !strings.HasPrefix(raw, "@") {
		return Command{Kind: KindPlain, Text: raw}
	}
	if strings.HasPrefix(raw, movieMarker) {
		// Remainder after the first space, internal spaces intact.
		_, url, _ := strings.Cut(raw, " ")
		return Command{Kind: KindMovie, URL: url}
	}
	if rest, ok := strings.CutPrefix(raw, "@"+PersonaAI); ok {
		return Command{Kind: KindPersona, Persona: PersonaAI, Prompt: strings.TrimSpace(rest)}
	}
	if rest, ok := strings.CutPrefix(raw, "@"+PersonaMaxence); ok {
		return Command{Kind: KindPersona, Persona: PersonaMaxence, Prompt: strings.TrimSpace(rest)}
	}
	return Command{Kind: KindPlain, Text: raw}
}
