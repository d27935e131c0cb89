package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Aliases are unprefixed environment variables honored for compatibility with existing deployments.
	Aliases []string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the prefixed environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Ytfetch + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Env         []string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Env:         append([]string{f.Env()}, f.Aliases...),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string, aliases ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Aliases: aliases}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServerAddr, ":8080", "Address the HTTP server listens on", "ADDR")
	register(key.ServerFastRedirect, false, "Answer direct-stream downloads with a redirect to the upstream URL.\nExposes the signed upstream URL and skips cookie forwarding", "FAST_REDIRECT")
	register(key.ServerFastMode, false, "Skip the HEAD request used to learn the upstream Content-Length", "FAST_MODE")
	register(key.YtdlpDisable, false, "Disable every yt-dlp code path (metadata and downloads)", "DISABLE_YTDLP")
	register(key.YtdlpPath, "", "Explicit path to a yt-dlp binary.\nChecked before ./bin and the temp cache", "YTDLP_PATH")
	register(key.YtdlpAutoInstall, true, "Download yt-dlp into the temp cache when no binary is found")
	register(key.FFmpegPath, "", "Explicit path to ffmpeg. Looked up on PATH when empty", "FFMPEG_PATH")
	register(key.NetworkFingerprint, false, "Use a Chrome TLS fingerprint for upstream media requests")
	register(key.NetworkTimeout, 0, "Upstream request timeout in seconds. 0 leaves streams unbounded")
	register(key.SweepTTLHours, 6, "Age in hours after which leftover extractor temp files are removed on startup")
	register(key.CookieKeyring, false, "Send the keyring-stored cookie with CLI downloads when none is given")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd (nerd-font required), plain, squares")
	register(key.LogsWrite, false, "Write logs to a dated file in the logs directory")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsConsole, true, "Write logs to stderr when file logging is disabled")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}{{ if .Aliases }} {{ faint (join .Aliases ", ") }}{{ end }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
