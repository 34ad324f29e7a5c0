package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides: PROCTEX_TEXTURES_WIDTH sets
// textures.width and PROCTEX_OUTPUT_DIR sets output-dir.
const envPrefix = "PROCTEX"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "proctex",
	Short: "A procedural seamless texture generator",
	Long: `proctex synthesizes tileable surface textures (bark, rock, ground) and
alpha-cut foliage cards (leaf, twig) as albedo, normal and ORM maps.

Generator parameters are read from the bark, rock, ground, leaf and twig
sections of the config file and fall back to built-in defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return readConfig(viper.GetViper(), cfgFile)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml if present)")
	rootCmd.PersistentFlags().String("output-dir", "./textures", "Output directory for generated textures")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	for _, key := range []string{"output-dir", "verbose"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", key, err))
		}
	}
}

// readConfig wires environment overrides into v and reads the config file.
// An explicit path must exist; the implicit ./config.yaml is optional.
func readConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
		}
		return nil
	case path == "" && errors.As(err, &notFound):
		return nil
	default:
		return fmt.Errorf("failed to read config: %w", err)
	}
}
