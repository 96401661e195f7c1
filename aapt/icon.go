package aapt

import (
	"path"
	"regexp"
	"strings"
)

// densities in order of preference.
var densities = []string{"xxxhdpi", "xxhdpi", "xhdpi", "hdpi"}

// Lister produces an `aapt list` output on demand.
type Lister func() (string, error)

// IconDeclaration is one application-icon-<density>:'<path>' line.
type IconDeclaration struct {
	Density string // numeric density code, e.g. "640" or "65534"
	Path    string
}

var (
	iconLineRegexp    = regexp.MustCompile(`application-icon-([0-9]+):'(.*)'`)
	adaptiveRegexp    = regexp.MustCompile(`application-icon-[0-9]+:'(.*\.xml)'`)
	labelIconMatchers = []matcher{
		// application: label='CardsUp' icon='res/mipmap-hdpi-v4/ic_launcher.png'
		regexpMatcher(`application: label='.*' icon='(.*?)'`),
	}
)

// IconDeclarations returns every application-icon line in text order.
func IconDeclarations(badging string) []IconDeclaration {
	var decls []IconDeclaration
	for _, m := range iconLineRegexp.FindAllStringSubmatch(badging, -1) {
		decls = append(decls, IconDeclaration{Density: m[1], Path: m[2]})
	}
	return decls
}

type iconMatcher func(badging string, list Lister) (string, bool)

var iconMatchers = []iconMatcher{
	densityIcon,
	adaptiveIcon,
	labelIcon,
}

// ResolveIcon returns the in-archive path of the best icon declared in badging,
// or "" if there is none. list is only called for adaptive icons.
func ResolveIcon(badging string, list Lister) string {
	for _, match := range iconMatchers {
		if p, ok := match(badging, list); ok {
			return p
		}
	}
	return ""
}

// densityIcon picks the highest density bucket present; the last declaration
// of a bucket overrides earlier ones.
func densityIcon(badging string, _ Lister) (string, bool) {
	decls := IconDeclarations(badging)
	for _, density := range densities {
		for i := len(decls) - 1; i >= 0; i-- {
			if strings.Contains(decls[i].Path, density) {
				return decls[i].Path, true
			}
		}
	}
	return "", false
}

// adaptiveIcon follows application-icon-65534:'res/mipmap-anydpi-v26/ic_launcher.xml'
// to the raster ic_launcher.png that only shows up in the archive listing.
// Once an adaptive icon is declared the listing decides: no png means no icon,
// since every other declaration points at the same compiled xml.
func adaptiveIcon(badging string, list Lister) (string, bool) {
	m := adaptiveRegexp.FindStringSubmatch(badging)
	if m == nil {
		return "", false
	}
	if list == nil {
		return "", true
	}
	base := strings.TrimSuffix(path.Base(m[1]), ".xml")
	listing, err := list()
	if err != nil {
		log.Warnf("adaptive icon %s: %v", m[1], err)
		return "", true
	}
	want := base + ".png"
	found := ""
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, want) {
			found = strings.TrimSpace(line)
		}
	}
	if found == "" {
		log.Warnf("adaptive icon %s: no %s in archive listing", m[1], want)
	}
	return found, true
}

func labelIcon(badging string, _ Lister) (string, bool) {
	if m := firstMatch(badging, labelIconMatchers...); m != nil && m[0] != "" {
		return m[0], true
	}
	return "", false
}
