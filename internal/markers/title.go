package markers

import (
	"regexp"
	"strings"
)

var (
	headingHashRe = regexp.MustCompile(`^#+(\s)`)
	titleBulletRe = regexp.MustCompile(`^([-+*]|\d+\.)(\s)`)
	anyMirrorRe   = regexp.MustCompile(`\s*<!--\s*mirror:[a-zA-Z0-9-]+\s*-->\s*`)
	anyBlockIDRe  = regexp.MustCompile(`\s*\^outliner-[a-zA-Z0-9]+\s*`)
)

// CleanTitle turns a heading or list line into a breadcrumb title.
func CleanTitle(line string) string {
	title := strings.TrimSpace(line)
	title = headingHashRe.ReplaceAllString(title, "$1")
	title = titleBulletRe.ReplaceAllString(title, "$2")
	title = anyMirrorRe.ReplaceAllString(title, "")
	title = anyBlockIDRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
