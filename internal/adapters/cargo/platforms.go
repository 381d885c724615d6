package cargo

import (
	"context"
	"fmt"
	"strings"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// Platforms lists the installed platform target triples via the toolchain
// manager. Failures degrade to an empty list, logged only.
func (s *Source) Platforms(ctx context.Context) []string {
	program, leading := domain.SplitCommand(s.settings.RustupPath)
	if program == "" {
		program = "rustup"
	}
	inv := domain.Invocation{
		Program: program,
		Args:    append(leading, "target", "list", "--installed"),
	}

	out, err := s.invoker.Capture(ctx, inv)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("platform target query failed: %v", err))
		return nil
	}

	var triples []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			triples = append(triples, line)
		}
	}
	return triples
}
