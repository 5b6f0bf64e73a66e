package cleaner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// SudoRunner retries permission-denied deletions through sudo. The
// password is prompted once per process, held only for the lifetime of
// the runner and zeroed on Clear.
type SudoRunner struct {
	available bool
	password  []byte
	prompted  bool
}

func NewSudoRunner() *SudoRunner {
	_, err := exec.LookPath("sudo")
	return &SudoRunner{available: err == nil}
}

// Available reports whether sudo exists on this system.
func (s *SudoRunner) Available() bool { return s.available }

// prompt reads the password from the terminal without echo. A cached
// passwordless sudo session skips the prompt entirely.
func (s *SudoRunner) prompt() error {
	if s.prompted {
		return nil
	}

	if exec.Command("sudo", "-n", "true").Run() == nil {
		s.prompted = true
		return nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	s.password = pw
	s.prompted = true
	return nil
}

// Delete removes path as root, prompting for the password on first use.
func (s *SudoRunner) Delete(path string) error {
	if !s.available {
		return fmt.Errorf("sudo not available")
	}
	if err := s.prompt(); err != nil {
		return err
	}

	cmd := exec.Command("sudo", "-S", "-p", "", "rm", "-rf", "--", path)
	if len(s.password) > 0 {
		cmd.Stdin = strings.NewReader(string(s.password) + "\n")
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("sudo rm: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Clear zeroes the cached password.
func (s *SudoRunner) Clear() {
	for i := range s.password {
		s.password[i] = 0
	}
	s.password = nil
	s.prompted = false
}
