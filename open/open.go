// Package open hands a finished download or a URL to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/log"
)

// ErrUnsupported is returned on platforms without a known opener.
var ErrUnsupported = fmt.Errorf("no opener known for %s", runtime.GOOS)

// Command builds the opener invocation for target on goos.
// An empty app selects the platform's default handler.
func Command(goos, target, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
		}
		// start treats & as a command separator.
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(target, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", target), nil
		}
		return exec.Command("open", "-a", app, target), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", target), nil
		}
		return exec.Command(app, target), nil
	default:
		return nil, ErrUnsupported
	}
}

// Start launches the opener for target without waiting for it.
func Start(target, app string) error {
	cmd, err := Command(runtime.GOOS, target, app)
	if err != nil {
		return err
	}

	log.Infof("opening %s with %s", target, cmd.Path)
	return cmd.Start()
}
