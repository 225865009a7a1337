package wheelink

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/wheelink/pkg/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, flags, nil); err != nil {
				return err
			}
			out, err := config.Get().TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
