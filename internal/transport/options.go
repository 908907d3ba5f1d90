package transport

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tiron-sh/tiron/internal/buildinfo"
	"github.com/tiron-sh/tiron/internal/logging"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// SSHOptions configures one host's remote transport. Port defaults to
// the system ssh client's own default (22) when zero.
type SSHOptions struct {
	Host       string `validate:"required"`
	User       string
	Port       int `validate:"omitempty,min=1,max=65535"`
	Become     bool
	RemotePath string `validate:"required"`

	// Logger receives debug lines for the probe/deploy/dispatch
	// lifecycle. A nil Logger is safe to use — every method on it is
	// a no-op in that case.
	Logger *logging.Logger
}

// Validate runs struct-tag validation and returns a descriptive error
// on the first failing field.
func (o SSHOptions) Validate() error {
	if err := validatorInstance().Struct(o); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			fe := ves[0]
			return fmt.Errorf("transport: %s failed validation for %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("transport: %w", err)
	}
	return nil
}

// UserHost returns the "user@host" (or bare "host") string passed to
// the ssh client.
func (o SSHOptions) UserHost() string {
	if o.User == "" {
		return o.Host
	}
	return o.User + "@" + o.Host
}

// DefaultRemotePath returns the per-host install location the agent
// binary is probed against and, if missing or stale, deployed to.
// Unix hosts get `~/.local/share/tiron/tiron-node-<version>`; Windows
// hosts get `%LocalAppData%\tiron\tiron\data\tiron-node-<version>.exe`.
// The local controller's own GOOS decides which shape to build, since
// remote hosts are assumed to match the controller's platform family
// when no explicit RemotePath override is configured.
func DefaultRemotePath() string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf(`%%LocalAppData%%\tiron\tiron\data\tiron-node-%s.exe`, buildinfo.Version)
	}
	return fmt.Sprintf("~/.local/share/tiron/tiron-node-%s", buildinfo.Version)
}
