// Package cleaner executes the deletion (and maintenance-command) side
// of a cleanup: safety gating, recursive removal, sudo retry, dry-run,
// and the per-item outcome bookkeeping.
package cleaner

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/macsweep/macsweep/internal/history"
	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/scanner"
)

// Status summarizes a whole batch.
type Status int

const (
	StatusSuccess Status = iota
	StatusPartial
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusPartial:
		return "Partial"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Failure records one item that could not be cleaned.
type Failure struct {
	Path   string
	Reason string
}

// Outcome is the per-batch result. Items are independent: one failure
// never aborts the rest.
type Outcome struct {
	SuccessCount int
	FailedCount  int
	TotalFreed   int64
	Failures     []Failure
	Duration     time.Duration
	DryRun       bool
}

// Status is Success only if every item succeeded, Partial if some did,
// Failed if none did. An empty batch counts as Success.
func (o *Outcome) Status() Status {
	switch {
	case o.FailedCount == 0:
		return StatusSuccess
	case o.SuccessCount > 0:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// Options control one Clean call.
type Options struct {
	DryRun     bool
	LogHistory bool
}

// Cleaner deletes findings with safety gating and logs what it freed.
type Cleaner struct {
	checker *safety.Checker
	history *history.Logger
	sudo    *SudoRunner
	log     zerolog.Logger
}

func New(log zerolog.Logger, hist *history.Logger) *Cleaner {
	return &Cleaner{
		checker: safety.NewChecker(),
		history: hist,
		sudo:    NewSudoRunner(),
		log:     log,
	}
}

// Clean processes every finding and returns the aggregate outcome.
// Maintenance findings run their command instead of being deleted; all
// others are gated on safety level plus a live re-check of the path,
// since a finding computed minutes ago may no longer be safe.
func (c *Cleaner) Clean(items []scanner.Finding, opts Options) *Outcome {
	start := time.Now()
	out := &Outcome{DryRun: opts.DryRun}

	for _, item := range items {
		if cmd, ok := item.Metadata["command"]; ok && item.Metadata["scanner_id"] == "maintenance" {
			if err := c.execute(cmd, opts.DryRun); err != nil {
				c.fail(out, item.Path, reasonCommandFailed.String()+": "+err.Error())
			} else {
				out.SuccessCount++
			}
			continue
		}

		if !c.canClean(item) {
			c.fail(out, item.Path, reasonUnsafe.String())
			continue
		}

		if err := c.delete(item.Path, opts.DryRun); err != nil {
			c.fail(out, item.Path, err.Error())
			continue
		}

		out.SuccessCount++
		if opts.DryRun {
			continue
		}
		out.TotalFreed += item.Size
		if opts.LogHistory && c.history != nil {
			if err := c.history.LogDelete(item.Path, item.Size); err != nil {
				c.log.Warn().Err(err).Str("path", item.Path).Msg("history append failed")
			}
		}
	}

	out.Duration = time.Since(start)
	c.log.Info().
		Int("success", out.SuccessCount).
		Int("failed", out.FailedCount).
		Int64("freed", out.TotalFreed).
		Bool("dry_run", opts.DryRun).
		Msg("clean finished")
	return out
}

func (c *Cleaner) fail(out *Outcome, path, reason string) {
	out.FailedCount++
	out.Failures = append(out.Failures, Failure{Path: path, Reason: reason})
	c.log.Warn().Str("path", path).Str("reason", reason).Msg("item not cleaned")
}

// canClean gates on the safety level recorded at scan time and on a
// fresh classification of the live path. Protected is never deletable,
// selected or not.
func (c *Cleaner) canClean(item scanner.Finding) bool {
	if item.Safety != safety.Safe && item.Safety != safety.Caution {
		return false
	}
	return c.checker.IsSafeToDelete(item.Path)
}

// delete removes a directory recursively or a file singly. A path that
// no longer exists counts as already deleted. Permission failures get
// one retry through sudo.
func (c *Cleaner) delete(path string, dryRun bool) error {
	if dryRun {
		c.log.Debug().Str("path", path).Msg("dry-run: would delete")
		return nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err == nil {
		return nil
	}
	if !isPermissionErr(err) {
		return err
	}

	c.log.Debug().Str("path", path).Msg("permission denied, retrying with sudo")
	if serr := c.sudo.Delete(path); serr != nil {
		return err
	}
	return nil
}

// execute runs a maintenance command through the shell. Non-zero exit
// is a per-item failure.
func (c *Cleaner) execute(command string, dryRun bool) error {
	if dryRun {
		c.log.Debug().Str("command", command).Msg("dry-run: would execute")
		return nil
	}

	out, err := exec.Command("sh", "-c", command).CombinedOutput()
	if err != nil {
		c.log.Warn().Str("command", command).Str("output", strings.TrimSpace(string(out))).Msg("maintenance command failed")
		return err
	}
	return nil
}
