package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/server"
	"github.com/ytfetch-cli/ytfetch/style"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddr, serveCmd.Flags().Lookup("addr")))

	serveCmd.Flags().Bool("fast-redirect", false, "Redirect direct-stream downloads to the upstream URL")
	lo.Must0(viper.BindPFlag(key.ServerFastRedirect, serveCmd.Flags().Lookup("fast-redirect")))

	serveCmd.Flags().Bool("fast-mode", false, "Skip the HEAD request used to learn the upstream length")
	lo.Must0(viper.BindPFlag(key.ServerFastMode, serveCmd.Flags().Lookup("fast-mode")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP download server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := viper.GetString(key.ServerAddr)
		srv := server.New(addr, newService(viper.GetBool(key.ServerFastRedirect)))

		fmt.Printf("%s listening on %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(addr))
		handleErr(srv.Run(ctx))
	},
}
