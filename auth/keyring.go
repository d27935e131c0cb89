// Package auth persists the YouTube cookie used for age- or region-restricted videos in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/where"
	"github.com/zalando/go-keyring"
)

const user = "youtube-cookie"

// ErrEmptyCookie is returned when trying to store a blank cookie.
var ErrEmptyCookie = errors.New("cookie is empty")

// SetCookie persists the cookie header value to the system keyring.
func SetCookie(cookie string) error {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return ErrEmptyCookie
	}
	return keyring.Set(where.Keyring(), user, cookie)
}

// GetCookie retrieves the stored cookie.
func GetCookie() (string, error) {
	return keyring.Get(where.Keyring(), user)
}

// StoredCookie returns the stored cookie, or None when nothing is stored or the keyring is unavailable.
func StoredCookie() mo.Option[string] {
	cookie, err := GetCookie()
	if err != nil || cookie == "" {
		return mo.None[string]()
	}
	return mo.Some(cookie)
}

// DeleteCookie removes the stored cookie.
func DeleteCookie() error {
	return keyring.Delete(where.Keyring(), user)
}

// Mask hides all but the first few characters of a cookie for display.
func Mask(cookie string) string {
	const visible = 6
	if len(cookie) <= visible {
		return strings.Repeat("*", len(cookie))
	}
	return cookie[:visible] + strings.Repeat("*", min(len(cookie)-visible, 24))
}
