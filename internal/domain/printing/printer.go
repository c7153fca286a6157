package printing

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// SpoolPrinter hands files to the system print spooler via lp. Retry of
// jammed or offline printers is the spooler's job, not ours.
type SpoolPrinter struct {
	name   string // empty means the system default printer
	logger *slog.Logger
}

// NewSpoolPrinter targets the named printer queue.
func NewSpoolPrinter(name string, logger *slog.Logger) *SpoolPrinter {
	return &SpoolPrinter{name: name, logger: logger}
}

// Print submits one file to the spooler.
func (p *SpoolPrinter) Print(ctx context.Context, path string) error {
	args := make([]string, 0, 3)
	if p.name != "" {
		args = append(args, "-d", p.name)
	}
	args = append(args, path)

	out, err := exec.CommandContext(ctx, "lp", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("lp %s: %v: %s", path, err, bytes.TrimSpace(out))
	}
	p.logger.Info("print job submitted",
		slog.String("path", path),
		slog.String("printer", p.name),
	)
	return nil
}
