package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/auth"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/network"
	"github.com/ytfetch-cli/ytfetch/open"
	"github.com/ytfetch-cli/ytfetch/strategy"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/tui"
	"github.com/ytfetch-cli/ytfetch/util"
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("format", "f", "", "Format token, e.g. best, 720p, audio, audio:mp3")
	getCmd.Flags().StringP("output", "o", "", "Output file or directory (defaults to the current directory)")
	getCmd.Flags().String("cookie", "", "Cookie header sent upstream")
	getCmd.Flags().Bool("open", false, "Open the file with the default application when done")
	getCmd.Flags().String("open-with", "", "Open the file with this application when done")

	lo.Must0(getCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatChoices(nil), cobra.ShellCompDirectiveNoFileComp
	}))
}

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Download a video or its audio to a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var (
			service = newService(false)
			format  = lo.Must(cmd.Flags().GetString("format"))
			output  = lo.Must(cmd.Flags().GetString("output"))
		)

		if format == "" && util.IsTerminal() {
			info, err := service.Info(ctx, args[0])
			handleErr(err)

			prompt := &survey.Select{
				Message: "Format",
				Options: formatChoices(info.AvailableQualities),
				Default: constant.TokenBest,
			}
			handleErr(survey.AskOne(prompt, &format))
		}

		req := media.Request{
			URL:    args[0],
			Token:  format,
			Cookie: cookieFor(cmd).OrEmpty(),
		}

		path, err := tui.Run(ctx, &tui.Options{
			Label: args[0],
			Retrieve: func(ctx context.Context) (*strategy.Result, error) {
				result, err := service.Retrieve(ctx, req)
				if err != nil {
					return nil, err
				}
				return follow(ctx, result)
			},
			Create: func(filename string) (io.WriteCloser, string, error) {
				target := destination(output, filename)
				file, err := filesystem.API().Create(target)
				return file, target, err
			},
		})
		if err != nil && path != "" {
			_ = filesystem.API().Remove(path)
		}
		handleErr(err)

		fmt.Printf("%s saved to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)

		app := lo.Must(cmd.Flags().GetString("open-with"))
		if app != "" || lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(path, app))
		}
	},
}

// formatChoices lists the tokens offered by the format prompt.
func formatChoices(qualities []string) []string {
	choices := append([]string{constant.TokenBest}, qualities...)
	choices = append(choices, constant.TokenAudio)
	for _, sub := range media.AudioSubformats {
		choices = append(choices, constant.TokenAudio+":"+sub)
	}
	return lo.Uniq(choices)
}

// cookieFor prefers the flag and falls back to the keyring when enabled.
func cookieFor(cmd *cobra.Command) mo.Option[string] {
	if cookie := lo.Must(cmd.Flags().GetString("cookie")); cookie != "" {
		return mo.Some(cookie)
	}
	if viper.GetBool(key.CookieKeyring) {
		return auth.StoredCookie()
	}
	return mo.None[string]()
}

// destination resolves output against the suggested filename.
// An empty output or an existing directory receives the suggested name.
func destination(output, filename string) string {
	if output == "" {
		return filename
	}
	if info, err := filesystem.API().Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filename)
	}
	return output
}

// follow turns a redirect result into a relayed body.
func follow(ctx context.Context, result *strategy.Result) (*strategy.Result, error) {
	if result.Status != http.StatusFound {
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.Location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.NewMediaClient(viper.GetBool(key.NetworkFingerprint), 0).Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &strategy.UpstreamError{Status: resp.StatusCode}
	}

	result.Body = resp.Body
	result.Status = resp.StatusCode
	result.Location = ""
	if resp.ContentLength >= 0 {
		result.ContentLength = mo.Some(resp.ContentLength)
	}
	return result, nil
}
