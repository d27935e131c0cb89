package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/ffmpeg"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/version"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that ffmpeg and yt-dlp are available",
	Run: func(cmd *cobra.Command, args []string) {
		missing := false

		if path, err := ffmpeg.Locate(viper.GetString(key.FFmpegPath)); err != nil {
			missing = true
			printMissingDependency("ffmpeg", ffmpegInstallHint())
		} else {
			printFound("ffmpeg", path)
		}

		switch {
		case viper.GetBool(key.YtdlpDisable):
			fmt.Printf("%s yt-dlp %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), style.Faint("disabled"))
		default:
			if path, ok := newInstaller().Locate().Get(); ok {
				printFound("yt-dlp", path)
			} else if viper.GetBool(key.YtdlpAutoInstall) {
				latest, err := version.YtDlp.Latest()
				if err != nil {
					latest = "latest"
				}
				fmt.Printf("%s yt-dlp %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)),
					style.Faint(fmt.Sprintf("not installed, %s will be downloaded on first use", latest)))
			} else {
				missing = true
				printMissingDependency("yt-dlp", constant.Ytfetch+" ytdlp install")
			}
		}

		if missing {
			os.Exit(1)
		}
	},
}

func ffmpegInstallHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install ffmpeg"
	case constant.Linux:
		return "sudo apt install ffmpeg"
	case constant.Windows:
		return "scoop install ffmpeg"
	default:
		return ""
	}
}

func printFound(name, path string) {
	fmt.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), name, style.Faint(path))
}

func printMissingDependency(dep, installCmd string) {
	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.Text).Render(fmt.Sprintf("'%s' was not found.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\nTo install it, try running:\n  %s", style.New().Foreground(color.Accent).Bold(true).Render(installCmd))
	}

	fmt.Println(style.Box(color.HiRed, lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
