// Package message parses an RFC 5322 email message into a tree of MIME
// parts. The tree preserves everything a debugging transcript needs:
// header order and multiplicity, multipart nesting, preamble/epilogue
// text, and structural defects noticed along the way.
package message

import "strings"

// Field is a single header field exactly as received. Folded continuation
// lines are joined into Value with embedded newlines.
type Field struct {
	Name  string
	Value string
}

// Defect describes a structural anomaly found while parsing. Defects are
// recorded on the node they were found in and never abort parsing.
type Defect struct {
	Kind   string
	Detail string
}

// Defect kinds.
const (
	DefectMalformedHeader      = "malformed-header"
	DefectInvalidContentType   = "invalid-content-type"
	DefectMissingBoundary      = "missing-boundary"
	DefectMissingFinalBoundary = "missing-final-boundary"
	DefectBadTransferEncoding  = "bad-transfer-encoding"
)

// Message is one node of the parsed tree. A node is either a leaf with
// payload bytes (transfer encoding already resolved) or a multipart node
// with child parts, never both. The tree is immutable once Parser.Close
// returns it.
type Message struct {
	fields    []Field
	mediaType string
	params    map[string]string
	transfer  string
	payload   []byte
	parts     []*Message
	preamble  string
	epilogue  string
	defects   []Defect
}

// Fields returns the header fields in original order, duplicates included.
func (m *Message) Fields() []Field {
	return m.fields
}

// ContentType returns the lowercased media type, defaulting to text/plain
// when the message carries no parseable Content-Type header.
func (m *Message) ContentType() string {
	return m.mediaType
}

// Maintype returns the portion of the media type before the slash.
func (m *Message) Maintype() string {
	if i := strings.IndexByte(m.mediaType, '/'); i >= 0 {
		return m.mediaType[:i]
	}
	return m.mediaType
}

// Params returns the Content-Type parameters.
func (m *Message) Params() map[string]string {
	return m.params
}

// CharsetParam returns the charset parameter of the Content-Type header,
// or the empty string when absent.
func (m *Message) CharsetParam() string {
	return m.params["charset"]
}

// TransferEncoding returns the lowercased Content-Transfer-Encoding token,
// or the empty string when absent.
func (m *Message) TransferEncoding() string {
	return m.transfer
}

// IsMultipart reports whether this node has child parts.
func (m *Message) IsMultipart() bool {
	return m.parts != nil
}

// Children returns the child parts of a multipart node, in wire order.
func (m *Message) Children() []*Message {
	return m.parts
}

// PayloadBytes returns the leaf content with any base64 or
// quoted-printable transfer encoding already decoded. Nil for multipart
// nodes.
func (m *Message) PayloadBytes() []byte {
	return m.payload
}

// Preamble returns the free text before the first MIME boundary.
func (m *Message) Preamble() string {
	return m.preamble
}

// Epilogue returns the free text after the closing MIME boundary.
func (m *Message) Epilogue() string {
	return m.epilogue
}

// Defects returns the structural anomalies recorded on this node.
func (m *Message) Defects() []Defect {
	return m.defects
}
