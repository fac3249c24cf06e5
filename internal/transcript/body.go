package transcript

import (
	"fmt"
	"sort"
	"strings"
)

// Default rendering parameters: the root of a tree is labelled "0" and
// each level of multipart nesting adds two spaces of indentation.
const (
	RootLabel     = "0"
	DefaultIndent = "  "
)

// Body renders the body of one message node, recursing into children for
// multipart nodes. label identifies the node's position in the tree as a
// hyphen-joined 1-based path ("0", "0-1", "0-1-2"). indent is appended
// to prefix on each descent.
//
// A charset decode failure ends the sequence with an error naming the
// failing part; the rest of the tree is not rendered.
func Body(p Part, prefix, indent, label string) Line {
	return func(yield func(string, error) bool) {
		renderBody(p, prefix, indent, label, yield)
	}
}

func renderBody(p Part, prefix, indent, label string, yield func(string, error) bool) bool {
	charset := p.CharsetParam()
	encoding := charset
	if encoding == "" {
		encoding = "us-ascii"
	}
	summary := fmt.Sprintf("%sMessage content %s (content_type: %s, params: %s, transfer: %s, encoding: %s):",
		prefix, label, p.ContentType(), formatParams(p.Params()), orNone(p.TransferEncoding()), encoding)
	if !yield(summary, nil) {
		return false
	}

	if pre := p.Preamble(); pre != "" {
		if !freeText("preamble:", pre, prefix, yield) {
			return false
		}
	}

	if p.IsMultipart() {
		for i, child := range p.Children() {
			if !renderBody(child, prefix+indent, indent, fmt.Sprintf("%s-%d", label, i+1), yield) {
				return false
			}
		}
	} else if p.Maintype() == "text" {
		text, err := decodeText(p.PayloadBytes(), encoding)
		if err != nil {
			yield("", fmt.Errorf("message content %s: %w", label, err))
			return false
		}
		for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			if !yield(fmt.Sprintf("%s> %s", prefix, rstrip(line)), nil) {
				return false
			}
		}
	} else {
		if !yield(fmt.Sprintf("%s> (Possibly binary data with size %d)", prefix, len(p.PayloadBytes())), nil) {
			return false
		}
	}

	if epi := p.Epilogue(); epi != "" {
		if !freeText("epilogue:", epi, prefix, yield) {
			return false
		}
	}

	if defects := p.Defects(); len(defects) > 0 {
		if !yield(prefix+"defects:", nil) {
			return false
		}
		for _, d := range defects {
			if !yield(fmt.Sprintf("%s- %s (detail: %s)", prefix, d.Kind, d.Detail), nil) {
				return false
			}
		}
	}
	return true
}

// freeText renders preamble or epilogue text under a banner line.
func freeText(banner, text, prefix string, yield func(string, error) bool) bool {
	if !yield(prefix+banner, nil) {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		if !yield(fmt.Sprintf("%s> %s", prefix, rstrip(line)), nil) {
			return false
		}
	}
	return true
}

// formatParams renders Content-Type parameters in a stable order.
func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", k, params[k])
	}
	return strings.Join(pairs, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
