package guard

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Auditor appends structured records of blocked and suspicious commands to
// the guard log. Auditing is best effort: any failure to open or write the
// log yields a no-op auditor, because the verdict matters more than the
// paper trail.
type Auditor struct {
	logger *zap.Logger
}

// NewAuditor opens an auditor writing JSON lines to path. An empty path
// disables auditing.
func NewAuditor(path string) *Auditor {
	if path == "" {
		return &Auditor{logger: zap.NewNop()}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Auditor{logger: zap.NewNop()}
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return &Auditor{logger: zap.NewNop()}
	}
	return &Auditor{logger: logger}
}

// Blocked records a refused command.
func (a *Auditor) Blocked(command, pattern string) {
	a.logger.Error("command blocked",
		zap.String("command", clip(command, 200)),
		zap.String("pattern", pattern),
	)
}

// Warned records a command that matched warning patterns but ran.
func (a *Auditor) Warned(command string, patterns []string) {
	a.logger.Warn("command matched warning patterns",
		zap.String("command", clip(command, 200)),
		zap.Strings("patterns", patterns),
	)
}

// Close flushes buffered records.
func (a *Auditor) Close() {
	_ = a.logger.Sync()
}
