package constant

// Fallback download names used when a title is empty or sanitizes away.
const (
	DefaultVideoName = "video"
	DefaultAudioName = "audio"
)

// Format tokens understood by the selector.
const (
	TokenBest        = "best"
	TokenAudio       = "audio"
	DefaultAudioType = "m4a"
)

// Canonical watch page used for every recognized short-link shape.
const WatchURLPrefix = "https://www.youtube.com/watch?v="
