// internal/cli/root.go
package cli

import (
	"kreads/internal/version"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrUsage marks configuration errors detected before any resource is
// created; the app maps it to exit code 2.
var ErrUsage = errors.New("usage error")

func usageErrf(format string, a ...interface{}) error {
	return errors.Wrapf(ErrUsage, format, a...)
}

// NewRootCmd builds the kreads command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kreads",
		Short:         "filter sequencing reads by k-mer graph membership",
		Long:          "kreads filters sequencing reads according to whether any of their k-mers is present in a k-mer set built from a genome graph.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Flag parse failures (unknown flag, bad value) are configuration
	// errors too and take the same exit code as our own validation.
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrf("%s", err.Error())
	})
	root.AddCommand(newFilterCmd())
	root.AddCommand(newIndexCmd())
	return root
}
