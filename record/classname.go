package record

import "strings"

// LineMatches pairs the lines of a diff with the messages reported on them.
type LineMatches struct {
	Lines    []int
	Messages []Located
}

// ClassNameFromPath derives a fully qualified Java class name from a source
// path, starting at its com or org package root. It returns the empty
// string when the path has neither.
func ClassNameFromPath(path string) string {
	for _, root := range []string{"com", "org"} {
		marker := "/" + root + "/"
		if _, rest, found := strings.Cut(path, marker); found {
			// only the segment up to a repeated marker belongs to the class
			rest, _, _ = strings.Cut(rest, marker)
			return root + "." + strings.ReplaceAll(strings.ReplaceAll(rest, "/", "."), ".java", "")
		}
	}
	return ""
}
