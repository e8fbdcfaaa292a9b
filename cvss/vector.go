package cvss

import "strings"

// notDefined is the "not defined" sentinel of the 3.x and 4.0 grammars.
const notDefined = "X"

// findValue returns the value of the first /<metric>:<value> token. The
// vector is searched as if it began with a slash so that header-less v2
// vectors expose their first metric too.
func findValue(vector, metric string) (string, bool) {
	needle := "/" + metric + ":"
	haystack := "/" + vector
	i := strings.Index(haystack, needle)
	if i < 0 {
		return "", false
	}
	rest := haystack[i+len(needle):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return rest, true
}

// requireValue is findValue for mandatory metrics.
func requireValue(vector, metric string) (string, error) {
	v, ok := findValue(vector, metric)
	if !ok {
		return "", missingValue(metric)
	}
	return v, nil
}

// optionalValue reports ok=false for absent metrics and for the "not
// defined" sentinels, which leave the formulas unaffected.
func optionalValue(vector, metric, sentinel string) (string, bool) {
	v, ok := findValue(vector, metric)
	if !ok || v == sentinel {
		return "", false
	}
	return v, true
}

// splitVector breaks a vector into an ordered list of key/value pairs,
// dropping the version header and empty segments.
func splitVector(vector string) []pair {
	var out []pair
	for _, part := range strings.Split(vector, "/") {
		k, v, ok := strings.Cut(part, ":")
		if !ok || k == "" || k == "CVSS" {
			continue
		}
		out = append(out, pair{Key: k, Value: v})
	}
	return out
}

type pair struct {
	Key, Value string
}
