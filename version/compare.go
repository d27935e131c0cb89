package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type parsed struct {
	segments   []int
	prerelease bool
}

// parse accepts "v1.2.3", "1.2.3-rc1" and yt-dlp tags such as "2025.01.15" or
// the nightly "2025.01.15.232704".
func parse(s string) (parsed, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	core, suffix, _ := strings.Cut(s, "-")
	if core == "" {
		return parsed{}, fmt.Errorf("empty version %q", s)
	}

	var err error
	segments := lo.Map(strings.Split(core, "."), func(part string, _ int) int {
		n, convErr := strconv.Atoi(part)
		if convErr != nil && err == nil {
			err = fmt.Errorf("invalid version %q: %w", s, convErr)
		}
		return n
	})

	return parsed{segments: segments, prerelease: suffix != ""}, err
}

// Compare orders two versions segment by segment; missing segments count as zero,
// and a pre-release sorts before its release.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := 0; i < max(len(av.segments), len(bv.segments)); i++ {
		x, y := segment(av.segments, i), segment(bv.segments, i)
		if x != y {
			return lo.Ternary(x > y, 1, -1), nil
		}
	}

	switch {
	case av.prerelease == bv.prerelease:
		return 0, nil
	case av.prerelease:
		return -1, nil
	default:
		return 1, nil
	}
}

func segment(segments []int, i int) int {
	if i < len(segments) {
		return segments[i]
	}
	return 0
}
