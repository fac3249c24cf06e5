// Package sysinfo collects facts about the running process and its
// host for the capture log. When a mail server invokes the pipe target,
// the interesting questions are usually who the process runs as and
// what environment the MTA handed it.
package sysinfo

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"strings"
)

// Lines returns the system facts as pre-formatted transcript lines.
func Lines() []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = fmt.Sprintf("(unavailable: %v)", err)
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = fmt.Sprintf("(unavailable: %v)", err)
	}

	return []string{
		fmt.Sprintf("- Go version:  %s (%s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("- hostname:    %s", hostname),
		fmt.Sprintf("- pid:         %d", os.Getpid()),
		fmt.Sprintf("- cwd:         %s", cwd),
		fmt.Sprintf("- uid:         %d (%s)", os.Getuid(), userName(os.Getuid())),
		fmt.Sprintf("- euid:        %d (%s)", os.Geteuid(), userName(os.Geteuid())),
		fmt.Sprintf("- gid:         %d (%s)", os.Getgid(), groupName(os.Getgid())),
		fmt.Sprintf("- egid:        %d (%s)", os.Getegid(), groupName(os.Getegid())),
		// local(8) typically runs pipe commands with a C locale, which
		// is why transcripts of non-ASCII mail need explicit charset
		// handling. Record what we actually got.
		fmt.Sprintf("- LANG:        %s", orUnset(os.Getenv("LANG"))),
		fmt.Sprintf("- LC_ALL:      %s", orUnset(os.Getenv("LC_ALL"))),
		fmt.Sprintf("- LC_CTYPE:    %s", orUnset(os.Getenv("LC_CTYPE"))),
	}
}

// EnvironLines returns every environment variable as a transcript line.
func EnvironLines() []string {
	environ := os.Environ()
	lines := make([]string, 0, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		lines = append(lines, fmt.Sprintf("- %q -> %q", k, v))
	}
	return lines
}

func userName(uid int) string {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return "unknown"
	}
	return u.Username
}

func groupName(gid int) string {
	g, err := user.LookupGroupId(strconv.Itoa(gid))
	if err != nil {
		return "unknown"
	}
	return g.Name
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
