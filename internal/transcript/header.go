package transcript

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Headers renders the header fields of one message node. Fields are
// grouped by case-insensitive name; group order follows the first
// occurrence of each name, and values inside a group keep their original
// relative order (the common case is a run of Received headers).
func Headers(p Part, prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		type group struct {
			name   string
			values []string
		}
		var (
			groups []*group
			byName = map[string]*group{}
		)
		for _, f := range p.Fields() {
			key := strings.ToLower(f.Name)
			g, ok := byName[key]
			if !ok {
				g = &group{name: f.Name}
				byName[key] = g
				groups = append(groups, g)
			}
			g.values = append(g.values, f.Value)
		}

		for _, g := range groups {
			if len(g.values) > 1 {
				if !multiValueGroup(g.name, g.values, prefix, yield) {
					return
				}
				continue
			}
			if !singleValue(g.name, g.values[0], prefix, yield) {
				return
			}
		}
	}
}

// singleValue renders a header name that occurs exactly once. Values
// with folded continuation lines get one physical line each.
func singleValue(name, value, prefix string, yield func(string) bool) bool {
	lines := strings.Split(value, "\n")
	if len(lines) == 1 {
		return yield(fmt.Sprintf("%s- %s: %s", prefix, name, rstrip(value)))
	}
	if !yield(fmt.Sprintf("%s- %s:", prefix, name)) {
		return false
	}
	for i, line := range lines {
		marker := ".."
		if i == 0 {
			marker = "--"
		}
		if !yield(fmt.Sprintf("%s%s %s", prefix, marker, rstrip(line))) {
			return false
		}
	}
	return true
}

// multiValueGroup renders a header name that occurs two or more times:
// a count banner, then each value indexed from zero. The index column is
// left-justified to the width of the largest index, and continuation
// lines carry a '>' marker one wider than that column.
func multiValueGroup(name string, values []string, prefix string, yield func(string) bool) bool {
	if !yield(fmt.Sprintf("%s- %s (%d items):", prefix, name, len(values))) {
		return false
	}
	width := len(strconv.Itoa(len(values) - 1))
	marker := strings.Repeat(">", width+1)
	for i, value := range values {
		for j, line := range strings.Split(value, "\n") {
			if j == 0 {
				if !yield(fmt.Sprintf("%s- %-*d: %s", prefix, width, i, rstrip(line))) {
					return false
				}
				continue
			}
			if !yield(fmt.Sprintf("%s. %s %s", prefix, marker, rstrip(line))) {
				return false
			}
		}
	}
	return true
}

// rstrip removes trailing whitespace, matching what the log sink should
// never have to carry.
func rstrip(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
