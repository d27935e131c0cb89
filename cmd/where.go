package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/where"
)

type location struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	scratch bool
}

// locations lists every directory the app reads or writes. Scratch ones are swept on startup.
func locations() []location {
	return []location{
		{Name: "config", Path: where.Config()},
		{Name: "logs", Path: where.Logs()},
		{Name: "binaries", Path: where.Binaries()},
		{Name: "cache", Path: where.Cache()},
		{Name: "video-tmp", Path: where.ExtractorVideo(), scratch: true},
		{Name: "audio-tmp", Path: where.ExtractorAudio(), scratch: true},
	}
}

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.Flags().BoolP("all", "a", false, "Include the extractor scratch directories")
	whereCmd.Flags().BoolP("json", "j", false, "Print the locations as JSON")
}

var whereCmd = &cobra.Command{
	Use:   "where [name]",
	Short: "Show where configuration, logs, binaries and temp files live",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(locations(), func(l location, _ int) string { return l.Name }), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		all := locations()

		if len(args) == 1 {
			l, ok := lo.Find(all, func(l location) bool { return l.Name == args[0] })
			if !ok {
				names := lo.Map(all, func(l location, _ int) string { return l.Name })
				handleErr(fmt.Errorf("unknown location %s, expected one of %s", args[0], strings.Join(names, ", ")))
			}
			fmt.Println(l.Path)
			return
		}

		if !lo.Must(cmd.Flags().GetBool("all")) {
			all = lo.Reject(all, func(l location, _ int) bool { return l.scratch })
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(all))
			return
		}

		width := lo.Max(lo.Map(all, func(l location, _ int) int { return len(l.Name) }))
		for _, l := range all {
			fmt.Printf("%s  %s\n", style.Fg(color.Purple)(fmt.Sprintf("%-*s", width, l.Name)), l.Path)
		}
	},
}
