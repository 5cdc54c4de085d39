package mapper

import "strings"

// Resolve composes base with segments into a single absolute JSON Pointer,
// the way a POSIX path joiner composes directories: "." segments are
// dropped, ".." pops the last resolved segment, and a segment that is
// itself an absolute pointer ("/...") replaces everything resolved so far.
func Resolve(base string, segments ...string) string {
	parts := tokenize(base)
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "/") {
			parts = tokenize(seg)
			continue
		}
		for _, tok := range strings.Split(seg, "/") {
			switch tok {
			case "", ".":
				// no-op
			case "..":
				if len(parts) > 0 {
					parts = parts[:len(parts)-1]
				}
			default:
				parts = append(parts, tok)
			}
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

func tokenize(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	return strings.Split(pointer, "/")
}
