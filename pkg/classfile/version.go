package classfile

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Java 8's class-file major version is 52; Java 17's is 61 (JVMS 4.1 Table
// 4.1-A). Versions outside this window still decode (the attribute set
// this package recognizes is a superset through Java 17) but
// SupportedVersion reports them as unsupported for execution.
const (
	minSupportedMajor = 52
	maxSupportedMajor = 61
)

// semverString renders a class-file (major, minor) pair as a semver
// string so golang.org/x/mod/semver's comparison functions can order it;
// minor_version becomes the patch component since JVMS minor versions
// are rarely nonzero outside preview builds.
func semverString(major, minor uint16) string {
	return fmt.Sprintf("v%d.0.%d", major, minor)
}

// SupportedVersion reports whether this class file's version falls within
// the Java 8 through Java 17 window this core targets.
func (cf *ClassFile) SupportedVersion() bool {
	v := semverString(cf.MajorVersion, cf.MinorVersion)
	min := semverString(minSupportedMajor, 0)
	max := semverString(maxSupportedMajor, 0xFFFF)
	return semver.Compare(v, min) >= 0 && semver.Compare(v, max) <= 0
}

// CompareVersion orders two class files by major.minor version, useful
// when a classpath yields multiple candidate definitions of one class.
func CompareVersion(a, b *ClassFile) int {
	return semver.Compare(
		semverString(a.MajorVersion, a.MinorVersion),
		semverString(b.MajorVersion, b.MinorVersion),
	)
}
