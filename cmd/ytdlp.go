package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/util"
	"github.com/ytfetch-cli/ytfetch/ytdlp"
)

func init() {
	rootCmd.AddCommand(ytdlpCmd)
	ytdlpCmd.AddCommand(ytdlpInstallCmd)
	ytdlpCmd.AddCommand(ytdlpPathCmd)
}

var ytdlpCmd = &cobra.Command{
	Use:   "ytdlp",
	Short: "Manage the yt-dlp companion binary",
}

var ytdlpInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download the latest yt-dlp release into the binary cache",
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), ytdlp.AssetName()))
		path, err := newInstaller().Install(context.Background())
		erase()
		handleErr(err)

		fmt.Printf("%s installed yt-dlp to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

var ytdlpPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the yt-dlp binary that would be used",
	Run: func(cmd *cobra.Command, args []string) {
		path, ok := newInstaller().Locate().Get()
		if !ok {
			handleErr(ytdlp.ErrNotFound)
		}
		fmt.Println(path)
	},
}
