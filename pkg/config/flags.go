// pkg/config/flags.go

package config

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlagsToViper binds every flag in fs to v. Dashes in flag names become
// underscores in keys, so --swap-delay sets swap_delay.
func BindFlagsToViper(fs *pflag.FlagSet, v *viper.Viper) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(FlagKey(f.Name), f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// FlagKey converts a flag name to its config key.
func FlagKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}
