package message

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/quotedprintable"
	"strings"
)

// Parser accumulates raw input and produces the parsed tree once the
// input is exhausted. It mirrors the feed-parser shape: the caller pushes
// lines as it reads them (so it can echo and capture them at the same
// time) and calls Close at end of stream.
type Parser struct {
	buf    bytes.Buffer
	closed bool
}

// NewParser returns a Parser ready to be fed input.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends a chunk of raw input. Chunks are expected to be whole
// lines including their line ending, but any split works.
func (p *Parser) Feed(chunk string) {
	p.buf.WriteString(chunk)
}

// Close parses everything fed so far and returns the message tree. It
// may be called only once.
func (p *Parser) Close() (*Message, error) {
	if p.closed {
		return nil, fmt.Errorf("parser already closed")
	}
	p.closed = true
	return parse(p.buf.Bytes()), nil
}

// parse builds one tree node from raw message bytes, recursing into
// multipart bodies. It never fails; anything structurally wrong is
// recorded as a defect on the nearest node.
func parse(raw []byte) *Message {
	m := &Message{
		mediaType: "text/plain",
		params:    map[string]string{},
	}

	headerRaw, body := splitHeaderBody(raw)
	m.fields = parseFields(headerRaw, m)

	if ct := firstField(m.fields, "Content-Type"); ct != "" {
		mt, params, err := mime.ParseMediaType(unfold(ct))
		if err != nil {
			m.defects = append(m.defects, Defect{
				Kind:   DefectInvalidContentType,
				Detail: fmt.Sprintf("%q: %v", ct, err),
			})
		} else {
			m.mediaType = strings.ToLower(mt)
			m.params = params
		}
	}
	if te := firstField(m.fields, "Content-Transfer-Encoding"); te != "" {
		m.transfer = strings.ToLower(strings.TrimSpace(te))
	}

	if strings.HasPrefix(m.mediaType, "multipart/") {
		boundary := m.params["boundary"]
		if boundary == "" {
			m.defects = append(m.defects, Defect{
				Kind:   DefectMissingBoundary,
				Detail: "multipart content type without a boundary parameter",
			})
			m.payload = decodePayload(body, m.transfer, m)
			return m
		}
		m.splitParts(body, boundary)
		return m
	}

	m.payload = decodePayload(body, m.transfer, m)
	return m
}

// splitHeaderBody cuts raw at the first blank line. When no blank line
// exists the whole input is treated as header.
func splitHeaderBody(raw []byte) (header, body []byte) {
	crlf := bytes.Index(raw, []byte("\r\n\r\n"))
	lf := bytes.Index(raw, []byte("\n\n"))
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return raw[:crlf+2], raw[crlf+4:]
	case lf >= 0:
		return raw[:lf+1], raw[lf+2:]
	}
	return raw, nil
}

// parseFields parses header lines preserving order and duplicates.
// Continuation lines (leading whitespace) are folded into the previous
// field value joined by a newline so the transcript can show them as
// separate physical lines.
func parseFields(headerRaw []byte, m *Message) []Field {
	var fields []Field
	for _, line := range splitLines(headerRaw) {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(fields) == 0 {
				m.defects = append(m.defects, Defect{
					Kind:   DefectMalformedHeader,
					Detail: fmt.Sprintf("continuation line with no preceding field: %q", line),
				})
				continue
			}
			fields[len(fields)-1].Value += "\n" + line
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			m.defects = append(m.defects, Defect{
				Kind:   DefectMalformedHeader,
				Detail: fmt.Sprintf("not a header line: %q", line),
			})
			continue
		}
		fields = append(fields, Field{
			Name:  name,
			Value: strings.TrimLeft(value, " \t"),
		})
	}
	return fields
}

// splitParts cuts a multipart body into preamble, child parts and
// epilogue using the boundary delimiter lines.
func (m *Message) splitParts(body []byte, boundary string) {
	delim := "--" + boundary
	closing := delim + "--"

	lines := splitLines(body)
	var (
		current  []string
		inPart   bool
		sawClose bool
		preamble []string
		epilogue []string
		partsRaw [][]string
	)
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case sawClose:
			epilogue = append(epilogue, line)
		case trimmed == closing:
			if inPart {
				partsRaw = append(partsRaw, current)
				current = nil
			}
			sawClose = true
		case trimmed == delim:
			if inPart {
				partsRaw = append(partsRaw, current)
				current = nil
			} else {
				preamble = current
				current = nil
			}
			inPart = true
		default:
			current = append(current, line)
		}
	}
	if !sawClose {
		m.defects = append(m.defects, Defect{
			Kind:   DefectMissingFinalBoundary,
			Detail: fmt.Sprintf("no closing %s delimiter", closing),
		})
		if inPart {
			partsRaw = append(partsRaw, current)
		} else {
			preamble = current
		}
	}
	if !inPart && !sawClose {
		// No delimiter at all: the body is preamble-only per the
		// delimiter scan above, which also deserves a defect.
		m.defects = append(m.defects, Defect{
			Kind:   DefectMissingBoundary,
			Detail: fmt.Sprintf("no %s delimiter found in multipart body", delim),
		})
	}

	m.preamble = strings.Join(preamble, "\n")
	m.epilogue = strings.Join(epilogue, "\n")
	m.parts = make([]*Message, 0, len(partsRaw))
	for _, p := range partsRaw {
		m.parts = append(m.parts, parse([]byte(strings.Join(p, "\n"))))
	}
}

// decodePayload resolves the Content-Transfer-Encoding of a leaf body.
// On a decoding error the raw bytes are kept and a defect is recorded.
func decodePayload(body []byte, transfer string, m *Message) []byte {
	if body == nil {
		return []byte{}
	}
	switch transfer {
	case "base64":
		decoded, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, bytes.NewReader(body)))
		if err != nil {
			m.defects = append(m.defects, Defect{
				Kind:   DefectBadTransferEncoding,
				Detail: fmt.Sprintf("base64: %v", err),
			})
			return body
		}
		return decoded
	case "quoted-printable":
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(body)))
		if err != nil {
			m.defects = append(m.defects, Defect{
				Kind:   DefectBadTransferEncoding,
				Detail: fmt.Sprintf("quoted-printable: %v", err),
			})
			return body
		}
		return decoded
	default:
		// 7bit, 8bit, binary and absent all pass through unchanged.
		return body
	}
}

// splitLines splits on '\n' and drops a trailing '\r' from each line. A
// trailing newline does not produce a final empty line.
func splitLines(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// firstField returns the value of the first field with the given name,
// compared case-insensitively.
func firstField(fields []Field, name string) string {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// unfold rejoins a folded header value into a single physical line for
// structured parsing (Content-Type and friends).
func unfold(v string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(v, "\n", " ")), " ")
}
