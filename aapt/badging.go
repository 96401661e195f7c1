package aapt

import "regexp"

// matcher returns the submatches of one pattern, or nil when it does not apply.
type matcher func(text string) []string

func regexpMatcher(pattern string) matcher {
	re := regexp.MustCompile(pattern)
	return func(text string) []string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		return m[1:]
	}
}

func firstMatch(text string, matchers ...matcher) []string {
	for _, m := range matchers {
		if captures := m(text); captures != nil {
			return captures
		}
	}
	return nil
}

var (
	// build tools >= 28: package: name='com.example' versionCode='1' versionName='1.0'
	// build tools < 28:  package: name='com.example' versionCode='1' versionName='1.0' platformBuildVersionName=''
	// Each value ends at a quote followed by a blank or the end of line, so a
	// trailing attribute never leaks into versionName.
	packageMatchers = []matcher{
		regexpMatcher(`(?m)package: name='(.*?)' versionCode='(.*?)' versionName='(.*?)'(?:[ \t]+platformBuildVersionName='.*?')?(?:\s|$)`),
	}

	appLabelMatchers = []matcher{
		// application: label='CardsUp' icon='res/mipmap-hdpi-v4/ic_launcher.png'
		regexpMatcher(`application: label='(.+)' icon=`),
		// application-label:'CardsUp'
		regexpMatcher(`application-label:'(.*)'`),
	}

	minSDKMatchers = []matcher{
		regexpMatcher(`(?m)^sdkVersion:'(.*?)'`),
	}
)

// ParsePackage returns package name, version code and version name from a
// badging dump. All three are empty when there is no package line.
func ParsePackage(badging string) (name, versionCode, versionName string) {
	m := firstMatch(badging, packageMatchers...)
	if m == nil {
		return "", "", ""
	}
	return m[0], m[1], m[2]
}

// ParseAppLabel returns the application label or "".
func ParseAppLabel(badging string) string {
	if m := firstMatch(badging, appLabelMatchers...); m != nil {
		return m[0]
	}
	return ""
}

// ParseMinSDKVersion returns the sdkVersion value or "".
func ParseMinSDKVersion(badging string) string {
	if m := firstMatch(badging, minSDKMatchers...); m != nil {
		return m[0]
	}
	return ""
}
