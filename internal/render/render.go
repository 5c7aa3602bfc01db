// Package render builds the visible message log of a chat session. The
// output is a tree of plain value nodes; content is carried as opaque
// text and never interpreted as markup.
package render

import (
	"time"

	"github.com/Maxencd/maxence/internal/models"
	"github.com/Maxencd/maxence/internal/persona"
)

// Style selects the visual treatment of a transcript entry.
type Style string

const (
	StyleSystem  Style = "system"
	StyleMovie   Style = "movie"
	StyleAI      Style = "ai"
	StyleMaxence Style = "maxence"
	StyleSelf    Style = "self"
	StyleOther   Style = "other"
)

// Embedded player size for movie shares.
const (
	frameWidth  = 400
	frameHeight = 400
)

// Frame is the embedded player of a movie share. The URL is taken from
// the message as-is, with no allow-list and no validation.
type Frame struct {
	URL    string
	Width  int
	Height int
}

// Node is one rendered transcript entry.
type Node struct {
	Style     Style
	Sender    string // empty when the label is hidden
	Lines     []string
	Frame     *Frame
	Timestamp string
	Error     bool
}

// Transcript is the append-only message log. Entries are never mutated
// after they are appended.
type Transcript struct {
	nodes  []*Node
	scroll int

	// OnAppend, when set, observes every appended node.
	OnAppend func(*Node)
}

func (t *Transcript) append(n *Node) {
	t.nodes = append(t.nodes, n)
	t.scroll = len(t.nodes) // keep the newest entry in view
	if t.OnAppend != nil {
		t.OnAppend(n)
	}
}

// Nodes returns the rendered entries in append order.
func (t *Transcript) Nodes() []*Node { return t.nodes }

// Len returns the number of rendered entries.
func (t *Transcript) Len() int { return len(t.nodes) }

// AtBottom reports whether the view is scrolled to the newest entry.
func (t *Transcript) AtBottom() bool { return t.scroll == len(t.nodes) }

// Renderer maps messages to transcript nodes for one session.
type Renderer struct {
	transcript  *Transcript
	currentUser string
	now         func() time.Time
}

// NewRenderer creates a renderer for the given local user.
func NewRenderer(currentUser string) *Renderer {
	return &Renderer{
		transcript:  &Transcript{},
		currentUser: currentUser,
		now:         time.Now,
	}
}

// Transcript returns the log this renderer appends to.
func (r *Renderer) Transcript() *Transcript { return r.transcript }

// Append renders one message and appends it to the transcript.
//
// Persona queries also render their reply inline, in addition to the
// delayed synthetic reply message the session injects later; the sender
// sees the reply twice, matching the original client.
func (r *Renderer) Append(msg models.Message) *Node {
	n := &Node{Timestamp: msg.Timestamp}

	switch {
	case msg.Type == models.TypeMovie:
		n.Style = StyleMovie
	case msg.Type == models.TypeAIChat:
		n.Style = StyleAI
	case msg.Type == models.TypeMaxence:
		n.Style = StyleMaxence
	case msg.Nickname == r.currentUser:
		n.Style = StyleSelf
	default:
		n.Style = StyleOther
	}

	if msg.Nickname != r.currentUser && msg.Type != models.TypeSystem {
		n.Sender = msg.Nickname
	}

	switch msg.Type {
	case models.TypeMovie:
		n.Lines = append(n.Lines, "电影链接: "+msg.Content)
		n.Frame = &Frame{URL: msg.Content, Width: frameWidth, Height: frameHeight}
	case models.TypeAIChat, models.TypeMaxence:
		p := persona.ByType(msg.Type)
		n.Lines = append(n.Lines, "@"+p.Name+": "+msg.Content)
		n.Lines = append(n.Lines, p.Reply(msg.Content))
	default:
		n.Lines = append(n.Lines, msg.Content)
	}

	r.transcript.append(n)
	return n
}

// AppendSystem renders a local status line. System entries stamp
// render-time local time instead of a carried timestamp.
func (r *Renderer) AppendSystem(text string, isError bool) *Node {
	n := &Node{
		Style:     StyleSystem,
		Lines:     []string{text},
		Timestamp: r.now().Format("15:04:05"),
		Error:     isError,
	}
	r.transcript.append(n)
	return n
}
