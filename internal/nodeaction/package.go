package nodeaction

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// provider identifies a host's package manager.
type provider int

const (
	providerApt provider = iota
	providerDnf
	providerPacman
	providerHomebrew
	providerZypper
)

// commandArgs returns the package manager binary plus the
// install/remove/upgrade subcommand and the flags that make it run
// unattended.
func (p provider) commandArgs(state string) (string, []string) {
	verb := map[string]string{"present": "install", "absent": "remove", "latest": "upgrade"}[state]

	switch p {
	case providerApt:
		return "apt-get", []string{verb, "--yes"}
	case providerDnf:
		return "dnf", []string{verb, "--assumeyes"}
	case providerPacman:
		flag := map[string]string{"present": "-S", "absent": "-R", "latest": "-Syu"}[state]
		return "pacman", []string{flag, "--noconfirm"}
	case providerHomebrew:
		return "brew", []string{verb}
	case providerZypper:
		return "zypper", []string{verb, "-y"}
	default:
		return "", nil
	}
}

// detectProvider maps the running OS to the package manager used to
// satisfy a package action. Linux distribution detection is left to
// the presence of each manager's binary on PATH rather than parsing
// /etc/os-release, since the node agent only needs "can I run this
// command", not a full OS identity.
func detectProvider() (provider, error) {
	switch runtime.GOOS {
	case "darwin":
		return providerHomebrew, nil
	case "linux":
		for _, candidate := range []struct {
			bin string
			p   provider
		}{
			{"apt-get", providerApt},
			{"dnf", providerDnf},
			{"pacman", providerPacman},
			{"zypper", providerZypper},
		} {
			if lookPath(candidate.bin) {
				return candidate.p, nil
			}
		}
		return 0, fmt.Errorf("package: no supported package manager found on PATH")
	default:
		return 0, fmt.Errorf("package: unsupported OS %s", runtime.GOOS)
	}
}

// PackageExecutor installs, removes, or upgrades packages through
// the host's detected package manager.
type PackageExecutor struct{}

func (e *PackageExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	d := wire.NewDecoder(payload)
	names, err := d.StringList()
	if err != nil {
		return fmt.Errorf("package: decode name: %w", err)
	}
	state, err := d.String()
	if err != nil {
		return fmt.Errorf("package: decode state: %w", err)
	}

	p, err := detectProvider()
	if err != nil {
		return err
	}

	program, args := p.commandArgs(state)
	if program == "" {
		return fmt.Errorf("package: unknown state %q", state)
	}
	args = append(args, names...)

	if err := runCommand(ctx, id, out, program, args); err != nil {
		return fmt.Errorf("package %s: %w", state, err)
	}
	return nil
}
