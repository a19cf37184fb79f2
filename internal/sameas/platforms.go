package sameas

import (
	"fmt"
	"strings"
)

// Platform describes how to build a profile URL for one social network
type Platform struct {
	Name     string
	Template string // %s receives the handle
	AtPrefix bool   // Handle is written with a leading @
}

// platforms lists every network a handle is expanded against, in the
// order results are reported
var platforms = []Platform{
	{Name: "instagram", Template: "https://www.instagram.com/%s/"},
	{Name: "x", Template: "https://x.com/%s"},
	{Name: "facebook", Template: "https://www.facebook.com/%s"},
	{Name: "linkedin", Template: "https://www.linkedin.com/company/%s/"},
	{Name: "youtube", Template: "https://www.youtube.com/%s", AtPrefix: true},
	{Name: "tiktok", Template: "https://www.tiktok.com/%s", AtPrefix: true},
	{Name: "threads", Template: "https://www.threads.net/%s", AtPrefix: true},
	{Name: "github", Template: "https://github.com/%s"},
	{Name: "pinterest", Template: "https://www.pinterest.com/%s/"},
	{Name: "reddit", Template: "https://www.reddit.com/user/%s/"},
	{Name: "medium", Template: "https://medium.com/%s", AtPrefix: true},
}

// linkedinPersonalTemplate is tried when the company-page URL fails
const linkedinPersonalTemplate = "https://www.linkedin.com/in/%s/"

// ProfileURL expands the platform template for a handle
func (p Platform) ProfileURL(handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if p.AtPrefix {
		handle = "@" + handle
	}
	return fmt.Sprintf(p.Template, handle)
}

// Platforms returns the supported platform list
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}
