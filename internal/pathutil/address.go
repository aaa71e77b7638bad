package pathutil

import "regexp"

// AddressParamRegex matches channel address parameters like {userId}.
// It captures the parameter name inside the braces.
var AddressParamRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// AddressParams returns the parameter names in a channel address, in order
// of first appearance.
func AddressParams(address string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range AddressParamRegex.FindAllStringSubmatch(address, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
