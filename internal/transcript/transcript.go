package transcript

// Render produces the full transcript for one message node: a Header
// banner, the header lines, then the body (recursive for multipart).
// This is the entry point the capture run consumes once per message.
func Render(p Part, prefix, indent, label string) Line {
	return func(yield func(string, error) bool) {
		if !yield(prefix+"Header:", nil) {
			return
		}
		for line := range Headers(p, prefix) {
			if !yield(line, nil) {
				return
			}
		}
		renderBody(p, prefix, indent, label, yield)
	}
}
