package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/config"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/where"
)

func configFile() string {
	return filepath.Join(where.Config(), constant.Ytfetch+".toml")
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// lookupField resolves the first positional argument, so legacy names like ADDR work too.
func lookupField(args []string) config.Field {
	if len(args) == 0 {
		handleErr(errors.New("a key is required"))
	}
	field, err := config.Lookup(args[0])
	handleErr(err)
	return field
}

// persist writes the in-memory configuration, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfigAs(configFile())
	}
	return err
}

func success(format string, a ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, a...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configPathCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print the fields as JSON")
	configInfoCmd.Flags().Bool("env", false, "Only list fields that can be set from the environment with their variables")
	configGetCmd.Flags().BoolP("source", "s", false, "Also print where the value comes from (env, file or default)")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key and remove the config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe settings, their environment variables and current values",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = lo.Map(args, func(name string, _ int) config.Field {
				return lookupField([]string{name})
			})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })

		if lo.Must(cmd.Flags().GetBool("env")) {
			for _, field := range fields {
				fmt.Printf("%s %s\n", style.Fg(color.Purple)(field.Env()), style.Faint(fmt.Sprint(field.Aliases)))
			}
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			pointers := lo.Map(fields, func(f config.Field, _ int) *config.Field { return &f })
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(pointers))
			return
		}

		for i := range fields {
			if i > 0 {
				fmt.Print("\n\n")
			}
			fmt.Print(fields[i].Pretty())
		}
		fmt.Println()
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := lookupField(args)
		if lo.Must(cmd.Flags().GetBool("source")) {
			fmt.Printf("%v %s\n", viper.Get(field.Key), style.Faint("("+field.Source()+")"))
			return
		}
		fmt.Println(viper.Get(field.Key))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Validate and store a setting in the config file",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := lookupField(args)
		value, err := field.Parse(args[1:])
		handleErr(err)

		viper.Set(field.Key, value)
		handleErr(persist())

		success("set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
		if field.Source() == "env" {
			fmt.Println(style.Faint("an environment variable still overrides this value, see config info " + field.Key))
		}
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore a setting, or with --all every setting, to its default",
	Aliases:           []string{"unset"},
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}
			if err := filesystem.API().Remove(configFile()); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			success("reset every setting")
			return
		}

		field := lookupField(args)
		viper.Set(field.Key, field.Value)
		handleErr(persist())
		success("reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()
		if exists := lo.Must(filesystem.API().Exists(path)); !exists {
			fmt.Println(path, style.Faint("(not written yet)"))
			return
		}
		fmt.Println(path)
	},
}
