package cvss

import (
	"regexp"
	"strings"
)

// Version tags the scoring standard a vector belongs to.
type Version int

const (
	VersionUnknown Version = iota
	V2
	V30
	V31
	V40
)

func (v Version) String() string {
	switch v {
	case V2:
		return "CVSS 2.0"
	case V30:
		return "CVSS 3.0"
	case V31:
		return "CVSS 3.1"
	case V40:
		return "CVSS 4.0"
	}
	return "unknown"
}

// MarshalText renders the version the way the CLI and report output show it.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

var (
	v4Mandatory = `^CVSS:4\.0/AV:[NALP]/AC:[LH]/AT:[NP]/PR:[NLH]/UI:[NPA]/VC:[NLH]/VI:[NLH]/VA:[NLH]/SC:[NLH]/SI:[NLH]/SA:[NLH]`

	// every optional 4.0 token must be one of these, otherwise the vector is rejected
	v4Optional = `(E:[XAPU]|CR:[XHML]|IR:[XHML]|AR:[XHML]|` +
		`MAV:[XNALP]|MAC:[XLH]|MAT:[XNP]|MPR:[XNLH]|MUI:[XNPA]|` +
		`MVC:[XHLN]|MVI:[XHLN]|MVA:[XHLN]|MSC:[XHLN]|MSI:[XSHLN]|MSA:[XSHLN]|` +
		`S:[XNP]|AU:[XNY]|R:[XAUI]|V:[XDC]|RE:[XLMH]|U:(X|Clear|Green|Amber|Red))`

	v4Pattern = regexp.MustCompile(v4Mandatory + `(/` + v4Optional + `)*/?$`)
	v3Pattern = regexp.MustCompile(`^CVSS:(3\.1|3\.0)/AV:[NALP]/AC:[LH]/PR:[NLH]/UI:[NR]/S:[UC]/C:[NLH]/I:[NLH]/A:[NLH]`)
	v2Pattern = regexp.MustCompile(`AV:[LAN]/AC:[HML]/Au:[MSN]/C:[NCP]/I:[NCP]/A:[NCP]`)
)

// Classify determines which standard the vector conforms to. The 4.0 grammar
// is tried first, then 3.x, then the header-less-friendly 2.0 grammar.
func Classify(vector string) (Version, error) {
	switch {
	case v4Pattern.MatchString(vector):
		return V40, nil
	case v3Pattern.MatchString(vector):
		if strings.HasPrefix(vector, "CVSS:3.1/") {
			return V31, nil
		}
		return V30, nil
	case v2Pattern.MatchString(vector):
		return V2, nil
	}
	return VersionUnknown, ErrInvalidVector
}
