package suite

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownProfile is returned for a profile name with no tag expression.
var ErrUnknownProfile = errors.New("unknown profile")

// ignoreTag excludes work-in-progress scenarios from every run.
const ignoreTag = "~@ignore"

var builtinProfiles = map[string]string{
	"smoke":      "@smoke",
	"regression": "@regression",
	"login":      "@login",
	"contact-us": "@contact-us",
	"contactUs":  "@contact-us",
}

// Profiles returns the built-in profiles overlaid with extra.
func Profiles(extra map[string]string) map[string]string {
	out := make(map[string]string, len(builtinProfiles)+len(extra))
	for name, tags := range builtinProfiles {
		out[name] = tags
	}
	for name, tags := range extra {
		if strings.TrimSpace(tags) != "" {
			out[name] = tags
		}
	}
	return out
}

// ProfileNames lists profile names in sorted order.
func ProfileNames(extra map[string]string) []string {
	profiles := Profiles(extra)
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTags returns the tag expression for profile. An empty profile selects
// every scenario that is not ignored.
func ResolveTags(profile string, extra map[string]string) (string, error) {
	if profile == "" {
		return ignoreTag, nil
	}
	tags, ok := Profiles(extra)[profile]
	if !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownProfile, profile, strings.Join(ProfileNames(extra), ", "))
	}
	return CombineTags(tags, ignoreTag), nil
}

// CombineTags ANDs the non-empty expressions together, dropping duplicates.
func CombineTags(exprs ...string) string {
	seen := make(map[string]bool, len(exprs))
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		parts = append(parts, e)
	}
	return strings.Join(parts, " && ")
}
