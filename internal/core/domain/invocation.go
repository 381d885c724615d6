package domain

import "strings"

// Invocation is a fully-resolved external process launch. The argument order
// is a compatibility contract with the invoked tool and must not be reordered
// by any caller.
type Invocation struct {
	Program string
	Args    []string
	Env     map[string]string
	Dir     string
}

// CommandLine renders the invocation for logging.
func (i Invocation) CommandLine() string {
	return strings.Join(append([]string{i.Program}, i.Args...), " ")
}

// SplitCommand splits a configured command string on whitespace into the
// program and its embedded leading arguments. Wrapper commands like
// "sccache cargo" stay supported this way.
func SplitCommand(command string) (program string, leading []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
