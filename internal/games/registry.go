// Package games holds the static list of titles the check-in runs against.
package games

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

const (
	GenshinURL = "https://sg-hk4e-api.hoyolab.com/event/sol/sign?lang=en-us&act_id=e202102251931481"
	HSRURL     = "https://sg-public-api.hoyolab.com/event/luna/os/sign?lang=en-us&act_id=e202303301540311"
)

const (
	KeyGenshin = "genshin"
	KeyHSR     = "hsr"
)

// Default returns the registry in processing order. Each call returns a new slice.
func Default() []models.Game {
	return []models.Game{
		{
			Key:       KeyGenshin,
			Name:      "Genshin Impact",
			URL:       GenshinURL,
			Username:  "Genshin Impact Check-In",
			AvatarURL: "https://upload-os-bbs.hoyolab.com/upload/2021/08/31/141033342/8fae6ff523cf0eb911df33e08fbb3f81_6839218126942510885.jpg",
			Success: models.SuccessFormat{
				Headline: "Successfully checked in!",
				FlavorLines: []string{
					"What do we have here...",
					"I can put these to good use.",
				},
			},
		},
		{
			Key:       KeyHSR,
			Name:      "Honkai Star Rail",
			URL:       HSRURL,
			Username:  "Honkai Star Rail Check-In",
			AvatarURL: "https://upload-os-bbs.hoyolab.com/upload/2023/03/14/145173938/214a8d73665c28493289c76d1ef31a91_5039956508100338870.jpg?x-oss-process=image/resize,s_1000/quality,q_80/auto-orient,0/interlace,1/format,jpg",
			Success: models.SuccessFormat{
				Headline: "Successfully claimed daily rewards!",
				FlavorLines: []string{
					"Hmm. We can use it.",
					"Not bad.",
				},
			},
		},
	}
}

// WithBaseURL points every endpoint at baseURL, keeping path and query.
// Used to run against a local mock of the HoYoLAB API.
func WithBaseURL(list []models.Game, baseURL string) ([]models.Game, error) {
	if baseURL == "" {
		return list, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	out := make([]models.Game, len(list))
	for i, g := range list {
		u, err := url.Parse(g.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint for %s: %w", g.Name, err)
		}
		u.Scheme = base.Scheme
		u.Host = base.Host
		u.Path = strings.TrimRight(base.Path, "/") + u.Path
		g.URL = u.String()
		out[i] = g
	}
	return out, nil
}

// Filter keeps the games whose key is listed. No keys means no filtering.
func Filter(list []models.Game, keys ...string) []models.Game {
	if len(keys) == 0 {
		return list
	}

	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	var out []models.Game
	for _, g := range list {
		if _, ok := wanted[g.Key]; ok {
			out = append(out, g)
		}
	}
	return out
}
