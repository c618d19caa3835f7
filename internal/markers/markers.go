// Package markers reads and writes the two end-of-line markers that tie an
// original list item to its mirrors:
//
//	- some text ^outliner-ab12cd                  (block identifier)
//	- some text <!-- mirror:outliner-ab12cd -->   (mirror reference)
package markers

import (
	"math/rand"
	"regexp"
	"strings"

	"outliner/internal/outline"
)

// IDPrefix starts every identifier generated by this package.
const IDPrefix = "outliner-"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

var (
	// The host resolves block references only when a space precedes '^'.
	blockIDRe        = regexp.MustCompile(`\s\^(outliner-[a-zA-Z0-9]+)$`)
	blockIDNoSpaceRe = regexp.MustCompile(`\^(outliner-[a-zA-Z0-9]+)$`)
	blockIDStripRe   = regexp.MustCompile(`\s*\^outliner-[a-zA-Z0-9]+$`)

	mirrorRe         = regexp.MustCompile(`<!--\s*mirror:(outliner-[a-zA-Z0-9]+)\s*-->`)
	mirrorTrailingRe = regexp.MustCompile(`\s*<!--\s*mirror:outliner-[a-zA-Z0-9]+\s*-->$`)

	bulletRe   = regexp.MustCompile(`^\s*[-*+]\s+|^\s*\d+\.\s+`)
	checkboxRe = regexp.MustCompile(`^\[.\]\s*`)
)

// GenerateID returns a fresh block identifier. Uniqueness is probabilistic
// and not checked against the vault.
func GenerateID() string {
	var b strings.Builder
	b.WriteString(IDPrefix)
	for i := 0; i < idLength; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}

// ParseBlockID returns the block identifier at the end of line, or "" when
// there is none. The malformed form without a leading space is accepted so
// that it can be detected and repaired.
func ParseBlockID(line string) string {
	if m := blockIDRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := blockIDNoSpaceRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// HasBlockID reports whether line carries a block identifier in either form.
func HasBlockID(line string) bool {
	return ParseBlockID(line) != ""
}

// HasBlockIDWithoutSpace reports whether line carries the malformed marker.
func HasBlockIDWithoutSpace(line string) bool {
	return !blockIDRe.MatchString(line) && blockIDNoSpaceRe.MatchString(line)
}

// RepairBlockID inserts the missing space before a malformed marker. Other
// lines are returned unchanged.
func RepairBlockID(line string) string {
	if !HasBlockIDWithoutSpace(line) {
		return line
	}
	return blockIDNoSpaceRe.ReplaceAllString(line, " ^$1")
}

// AddBlockID appends a block identifier to line.
func AddBlockID(line, id string) string {
	return strings.TrimRight(line, " \t") + " ^" + id
}

// RemoveBlockID strips a trailing block identifier from line.
func RemoveBlockID(line string) string {
	return strings.TrimRight(blockIDStripRe.ReplaceAllString(line, ""), " \t")
}

// ParseMirrorMarker returns the identifier referenced by a mirror marker on
// line, or "" when there is none. Whitespace inside the comment is tolerated.
func ParseMirrorMarker(line string) string {
	if m := mirrorRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// HasMirrorMarker reports whether line is a mirror root.
func HasMirrorMarker(line string) bool {
	return mirrorRe.MatchString(line)
}

// AddMirrorMarker appends a canonical mirror marker to line.
func AddMirrorMarker(line, id string) string {
	return strings.TrimRight(line, " \t") + " <!-- mirror:" + id + " -->"
}

// RemoveMirrorMarker strips the mirror marker from line.
func RemoveMirrorMarker(line string) string {
	return strings.TrimRight(mirrorRe.ReplaceAllString(line, ""), " \t")
}

// ExtractListContent returns the text of a list item without its bullet,
// checkbox, block identifier or mirror marker.
func ExtractListContent(line string) string {
	content := bulletRe.ReplaceAllString(line, "")
	content = checkboxRe.ReplaceAllString(content, "")
	content = blockIDStripRe.ReplaceAllString(content, "")
	content = mirrorTrailingRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// LinePrefix returns the indentation, bullet and checkbox of a list line.
func LinePrefix(line string) string {
	return outline.ListPrefix(line)
}

// MirrorLine renders the mirror root line for an original: the mirror's own
// prefix, the original's pure content and the mirror marker.
func MirrorLine(prefix, originalLine, id string) string {
	return AddMirrorMarker(prefix+ExtractListContent(originalLine), id)
}

// CreateMirrorContent builds the text of a new mirror: the original's prefix
// and content followed by the marker, then the children unchanged.
func CreateMirrorContent(originalLine string, children []string, id string) string {
	mirrorLine := MirrorLine(LinePrefix(originalLine), originalLine, id)
	if len(children) == 0 {
		return mirrorLine
	}
	return mirrorLine + "\n" + strings.Join(children, "\n")
}
