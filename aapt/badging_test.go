package aapt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePackage(t *testing.T) {
	lines := []string{
		"package: name='com.example.app' versionCode='3' versionName='1.2.0'",
		"package: name='com.example.app' versionCode='3' versionName='1.2.0' platformBuildVersionName=''",
		"package: name='com.example.app' versionCode='3' versionName='1.2.0' platformBuildVersionName='8.0.0'",
		"package: name='com.example.app' versionCode='3' versionName='1.2.0' compileSdkVersion='28' compileSdkVersionCodename='9'",
		"package: name='com.example.app' versionCode='3' versionName='1.2.0'\r",
	}
	for _, line := range lines {
		name, code, version := ParsePackage(line + "\nsdkVersion:'21'\n")
		assert.Equal(t, "com.example.app", name, line)
		assert.Equal(t, "3", code, line)
		assert.Equal(t, "1.2.0", version, line)
	}
}

func TestParsePackageTestdata(t *testing.T) {
	name, code, version := ParsePackage(readTestdata(t, "badging_pre28.txt"))
	assert.Equal(t, "sample.results.test.multiple.bitrise.com.multipletestresultssample", name)
	assert.Equal(t, "1", code)
	assert.Equal(t, "1.0", version)

	name, code, version = ParsePackage(readTestdata(t, "badging_adaptive.txt"))
	assert.Equal(t, "io.bitrise.sample", name)
	assert.Equal(t, "42", code)
	assert.Equal(t, "2.3.1", version)
}

func TestParsePackageEmptyValues(t *testing.T) {
	name, code, version := ParsePackage("package: name='com.example' versionCode='' versionName=''\n")
	assert.Equal(t, "com.example", name)
	assert.Equal(t, "", code)
	assert.Equal(t, "", version)
}

func TestParsePackageMissing(t *testing.T) {
	name, code, version := ParsePackage("sdkVersion:'21'\n")
	assert.Equal(t, "", name)
	assert.Equal(t, "", code)
	assert.Equal(t, "", version)
}

func TestParseAppLabel(t *testing.T) {
	assert.Equal(t, "CardsUp", ParseAppLabel("application: label='CardsUp' icon='res/mipmap-hdpi-v4/ic_launcher.png'\n"))
	assert.Equal(t, "Bob's 'Best' App", ParseAppLabel("application: label='Bob's 'Best' App' icon='res/a.png'\n"))
	assert.Equal(t, "CardsUp", ParseAppLabel("application-label:'CardsUp'\n"))
	assert.Equal(t, "it's here", ParseAppLabel("application-label:'it's here'\n"))
	// label='' falls through to the standalone label line
	assert.Equal(t, "Fallback", ParseAppLabel("application: label='' icon='res/a.png'\napplication-label:'Fallback'\n"))
	assert.Equal(t, "", ParseAppLabel("package: name='a' versionCode='1' versionName='1'\n"))
	assert.Equal(t, "", ParseAppLabel(""))
}

func TestParseAppLabelPrefersApplicationLine(t *testing.T) {
	text := "application-label:'Standalone'\napplication: label='Inline' icon='res/a.png'\n"
	assert.Equal(t, "Inline", ParseAppLabel(text))
}

func TestParseMinSDKVersion(t *testing.T) {
	assert.Equal(t, "17", ParseMinSDKVersion(readTestdata(t, "badging_pre28.txt")))
	assert.Equal(t, "21", ParseMinSDKVersion(readTestdata(t, "badging_adaptive.txt")))
	assert.Equal(t, "", ParseMinSDKVersion("targetSdkVersion:'28'\n"))
	assert.Equal(t, "", ParseMinSDKVersion(""))
}

func TestParsersAreIdempotent(t *testing.T) {
	text := readTestdata(t, "badging_pre28.txt")
	n1, c1, v1 := ParsePackage(text)
	n2, c2, v2 := ParsePackage(text)
	assert.Equal(t, []string{n1, c1, v1}, []string{n2, c2, v2})
	assert.Equal(t, ParseAppLabel(text), ParseAppLabel(text))
	assert.Equal(t, ParseMinSDKVersion(text), ParseMinSDKVersion(text))
	assert.Equal(t, ResolveIcon(text, nil), ResolveIcon(text, nil))
}
