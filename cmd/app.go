package cmd

import (
	"time"

	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/fetch"
	"github.com/ytfetch-cli/ytfetch/ffmpeg"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/network"
	"github.com/ytfetch-cli/ytfetch/resolver"
	"github.com/ytfetch-cli/ytfetch/selector"
	"github.com/ytfetch-cli/ytfetch/strategy"
	"github.com/ytfetch-cli/ytfetch/where"
	"github.com/ytfetch-cli/ytfetch/ytdlp"
)

func newInstaller() *ytdlp.Installer {
	return &ytdlp.Installer{
		EnvPath:     viper.GetString(key.YtdlpPath),
		LocalDir:    where.LocalBin(),
		CacheDir:    where.Binaries(),
		AutoInstall: viper.GetBool(key.YtdlpAutoInstall),
		Client:      network.Client,
		ReleaseURL:  ytdlp.ReleaseURL,
	}
}

func locateFFmpeg() string {
	path, err := ffmpeg.Locate(viper.GetString(key.FFmpegPath))
	if err != nil {
		log.Warnf("ffmpeg not found, in-process transcoding will fail over to yt-dlp: %v", err)
		return "ffmpeg"
	}
	return path
}

// newService wires the resolver tiers and retrieval strategies from the current configuration.
// redirect lets direct targets be answered with the upstream URL instead of a relay.
func newService(redirect bool) *fetch.Service {
	client := network.NewMediaClient(
		viper.GetBool(key.NetworkFingerprint),
		time.Duration(viper.GetInt(key.NetworkTimeout))*time.Second,
	)
	ffmpegPath := locateFFmpeg()

	runner := &ytdlp.Runner{
		Installer: newInstaller(),
		FFmpeg:    ffmpegPath,
		Disabled:  viper.GetBool(key.YtdlpDisable),
	}

	tiers := []resolver.Tier{
		{Tier: media.Primary, Provider: resolver.NewPrimary(client)},
		{Tier: media.Secondary, Provider: resolver.NewSecondary(client)},
	}

	res := resolver.New(tiers...)
	if runner.Enabled() {
		res = resolver.New(append(tiers, resolver.Tier{Tier: media.Extractor, Provider: runner})...).
			WithHydrator(runner)
	}

	service := &fetch.Service{
		Resolver: res,
		Proxy: &strategy.Proxy{
			Client:   client,
			FastMode: viper.GetBool(key.ServerFastMode),
		},
		Library: &strategy.Library{
			Upstream: &strategy.YouTubeUpstream{HTTPClient: client},
			FFmpeg:   &ffmpeg.Transcoder{Path: ffmpegPath},
		},
		Options: selector.Options{Redirect: redirect},
	}

	// An unset interface, not a typed nil, keeps the extractor tier out of the chain.
	if runner.Enabled() {
		service.Extractor = &strategy.Extractor{
			Runner:   runner,
			VideoDir: where.ExtractorVideo(),
			AudioDir: where.ExtractorAudio(),
		}
	}

	return service
}
