package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytfetch-cli/ytfetch/auth"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/style"
)

func init() {
	rootCmd.AddCommand(cookieCmd)
	cookieCmd.AddCommand(cookieSetCmd)
	cookieCmd.AddCommand(cookieShowCmd)
	cookieCmd.AddCommand(cookieDeleteCmd)

	cookieShowCmd.Flags().BoolP("reveal", "r", false, "Print the full cookie instead of a masked preview")
}

var cookieCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Manage the cookie stored in the system keyring",
}

var cookieSetCmd = &cobra.Command{
	Use:   "set [cookie]",
	Short: "Store the cookie sent with CLI downloads",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var cookie string
		if len(args) == 1 {
			cookie = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{Message: "Cookie"}, &cookie))
		}

		handleErr(auth.SetCookie(cookie))
		fmt.Printf("%s cookie stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var cookieShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored cookie",
	Run: func(cmd *cobra.Command, args []string) {
		cookie, err := auth.GetCookie()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("reveal")) {
			fmt.Println(cookie)
			return
		}
		fmt.Println(auth.Mask(strings.TrimSpace(cookie)))
	},
}

var cookieDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored cookie",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		confirm := false
		handleErr(survey.AskOne(&survey.Confirm{Message: "Delete the stored cookie?"}, &confirm))
		if !confirm {
			return
		}

		handleErr(auth.DeleteCookie())
		fmt.Printf("%s cookie deleted\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
