package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [kind...]",
	Short: "Print generator configurations as YAML",
	Long: `Print the effective configuration of each kind: the built-in defaults
with any config file sections applied. The output is a valid config file.`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfgs, err := loadConfigs(viper.GetViper())
	if err != nil {
		return err
	}

	var out any = cfgs
	if len(args) > 0 {
		kinds, err := parseKinds(strings.Join(args, ","))
		if err != nil {
			return err
		}
		doc := make(map[string]any, len(kinds))
		for _, k := range kinds {
			section, err := cfgs.section(k)
			if err != nil {
				return err
			}
			doc[k] = section[k]
		}
		out = doc
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
