// Package transcript renders a parsed message tree as human-readable log
// lines. The renderers are pure: they return lazy line sequences and
// never touch a log sink, so they can be tested without one and the sink
// lifecycle stays with the caller.
package transcript

import (
	"iter"

	"github.com/infodancer/mail-capture/internal/message"
)

// Part is the capability surface the renderers need from a parsed
// message node. Any parser producing this shape can be rendered; the
// in-tree implementation is internal/message.
type Part interface {
	Fields() []message.Field
	ContentType() string
	Maintype() string
	Params() map[string]string
	CharsetParam() string
	TransferEncoding() string
	PayloadBytes() []byte
	IsMultipart() bool
	Children() []Part
	Preamble() string
	Epilogue() string
	Defects() []message.Defect
}

// Line is one rendered transcript line, or a rendering error. A sequence
// ends at the first error; nothing after the failing part is rendered.
type Line = iter.Seq2[string, error]

// msgPart adapts *message.Message to Part. Only Children needs adapting;
// every other method promotes from the embedded node.
type msgPart struct {
	*message.Message
}

func (p msgPart) Children() []Part {
	kids := p.Message.Children()
	out := make([]Part, len(kids))
	for i, k := range kids {
		out[i] = msgPart{k}
	}
	return out
}

// Wrap adapts a parsed message node for rendering.
func Wrap(m *message.Message) Part {
	return msgPart{m}
}
