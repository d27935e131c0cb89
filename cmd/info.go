package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/fetch"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/style"
	"github.com/ytfetch-cli/ytfetch/util"
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Print the info response as JSON")
	infoCmd.Flags().BoolP("formats", "f", false, "List every resolved format")
	infoCmd.SetOut(os.Stdout)
}

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Show the title and available qualities of a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			ctx         = context.Background()
			service     = newService(false)
			asJson      = lo.Must(cmd.Flags().GetBool("json"))
			withFormats = lo.Must(cmd.Flags().GetBool("formats"))
		)

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving...", icon.Get(icon.Progress)))
		info, err := service.Info(ctx, args[0])
		erase()
		handleErr(err)

		var formats []media.Format
		if withFormats {
			_, md, err := service.Plan(ctx, media.Request{URL: args[0]})
			handleErr(err)
			formats = md.Formats
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(struct {
				*fetch.InfoResponse
				Formats []media.Format `json:"formats,omitempty"`
			}{info, formats}))
			return
		}

		cmd.Print(prettyInfo(info, formats))
	},
}

func prettyInfo(info *fetch.InfoResponse, formats []media.Format) string {
	width := 80
	if w, _, err := util.TerminalSize(); err == nil && w > 20 {
		width = min(w, 100)
	}

	var b strings.Builder
	label := style.New().Bold(true).Foreground(color.HiPurple).Render

	title := info.RawTitle
	if title == "" {
		title = style.Faint("untitled")
	}
	b.WriteString(wordwrap.String(style.Title(title), width))
	if info.Limited {
		b.WriteString(" " + style.Tag(color.Text, color.Gray)("limited"))
	}
	b.WriteString("\n\n")

	if info.Thumbnail != "" {
		fmt.Fprintf(&b, "%s %s\n", label("Thumbnail"), info.Thumbnail)
	}

	qualities := style.Faint("none")
	if len(info.AvailableQualities) > 0 {
		qualities = strings.Join(lo.Map(info.AvailableQualities, func(q string, _ int) string {
			return style.Fg(color.Yellow)(q)
		}), ", ")
	}
	fmt.Fprintf(&b, "%s %s\n", label("Qualities"), wordwrap.String(qualities, width-10))

	if len(formats) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s\n", label(util.Quantify(len(formats), "format", "formats")))
	for _, f := range formats {
		fmt.Fprintf(&b, "  %-8s %s %-10s %s %s\n",
			f.ID,
			formatIcon(f),
			lo.Ternary(f.Label() != "", f.Label(), "-"),
			style.Faint(lo.Ternary(f.ContentLength > 0, humanize.Bytes(uint64(f.ContentLength)), "?")),
			style.Faint(f.MimeHint),
		)
	}

	return b.String()
}

func formatIcon(f media.Format) string {
	switch {
	case f.AudioOnly():
		return icon.Get(icon.Audio)
	default:
		return icon.Get(icon.Video)
	}
}
