// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// HTTP Server - these keys govern the listener and the response strategy of the download endpoint.
const (
	ServerAddr         = "server.addr"
	ServerFastRedirect = "server.fast_redirect"
	ServerFastMode     = "server.fast_mode"
)

// Companion Extractor - these keys control discovery and use of the yt-dlp binary.
const (
	YtdlpDisable     = "ytdlp.disable"
	YtdlpPath        = "ytdlp.path"
	YtdlpAutoInstall = "ytdlp.auto_install"
)

// Transcoding Engine
const (
	FFmpegPath = "ffmpeg.path"
)

// Upstream Networking - these keys tune the HTTP client used against media hosts.
const (
	NetworkFingerprint = "network.fingerprint"
	NetworkTimeout     = "network.timeout"
)

// Temporary Artifacts
const (
	SweepTTLHours = "sweep.ttl_hours"
)

// Cookie Storage - these keys decide whether the keyring-stored cookie is applied to CLI downloads.
const (
	CookieKeyring = "cookie.keyring"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite   = "logs.write"
	LogsLevel   = "logs.level"
	LogsJson    = "logs.json"
	LogsConsole = "logs.console"
)

// CLI Execution Environment - these settings govern the interactive command behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
