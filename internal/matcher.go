package internal

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

var ErrUnknownRules = errors.New("unknown rule set")

// DirMatch selects how RuleSet.SkipDirs is compared against a directory name.
type DirMatch int

const (
	MatchSuffix DirMatch = iota
	MatchContains
)

// Pinned is a special-cased inclusion. Path is slash separated and relative
// to the scan root. With an empty Suffix, Path names a single file; otherwise
// every file ending in Suffix below the Path directory is pinned.
type Pinned struct {
	Path   string
	Suffix string
	First  bool // listed before the general walk instead of after it
}

// RuleSet - static include/exclude configuration for one run.
type RuleSet struct {
	Name            string
	Suffixes        []string
	ResourceSegment string
	MarkupSuffix    string
	SkipDirs        []string
	SkipMatch       DirMatch
	SkipNames       []string // pruned on the whole name only
	SkipFileDirs    []string
	Pinned          *Pinned
}

var (
	androidSources = []string{
		".java", ".kt",
		".gradle", ".gradle.kts",
		".properties",
		".pro",
		"AndroidManifest.xml",
	}
	androidOutputDirs = []string{"build", "bin", ".gradle", ".idea", "__pycache__", "node_modules"}
	// "out" as a suffix would also prune res/layout
	androidExactDirs = []string{"out"}

	ruleSets = map[string]RuleSet{
		"android": {
			Name:      "android",
			Suffixes:  append([]string{".xml", ".xml.kts"}, androidSources...),
			SkipDirs:  androidOutputDirs,
			SkipMatch: MatchSuffix,
			SkipNames: androidExactDirs,
		},
		"android-res": {
			Name:            "android-res",
			Suffixes:        androidSources,
			ResourceSegment: "res",
			MarkupSuffix:    ".xml",
			SkipDirs:        androidOutputDirs,
			SkipMatch:       MatchSuffix,
			SkipNames:       androidExactDirs,
			Pinned:          &Pinned{Path: "app/src/main/res/layout/activity_main.xml", First: true},
		},
		"android-layout": {
			Name:         "android-layout",
			Suffixes:     append([]string{".xml"}, androidSources...),
			SkipDirs:     []string{"build", ".idea", "__pycache__", "node_modules"},
			SkipMatch:    MatchContains,
			SkipFileDirs: []string{"build", "bin", ".idea", ".gradle", "__pycache__", "node_modules"},
			Pinned:       &Pinned{Path: "app/src/main/res/layout", Suffix: ".xml"},
		},
	}
)

const DefaultRules = "android-res"

// Rules returns the named rule set.
func Rules(name string) (RuleSet, error) {
	rs, ok := ruleSets[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownRules, name, strings.Join(RuleNames(), ", "))
	}
	return rs, nil
}

func RuleNames() []string {
	names := make([]string, 0, len(ruleSets))
	for n := range ruleSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizePath converts both separator styles to '/' and cleans the result.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

func segments(dir string) []string {
	dir = NormalizePath(dir)
	if dir == "." || dir == "/" {
		return nil
	}
	return strings.Split(strings.Trim(dir, "/"), "/")
}

// SkipDir reports whether the directory subtree named name must be pruned.
func (r RuleSet) SkipDir(name string) bool {
	for _, s := range r.SkipNames {
		if name == s {
			return true
		}
	}
	for _, s := range r.SkipDirs {
		if r.SkipMatch == MatchContains && strings.Contains(name, s) {
			return true
		}
		if r.SkipMatch == MatchSuffix && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// IncludeFile reports whether the file name inside dir (relative to the
// scan root, any separator style) belongs in the report.
func (r RuleSet) IncludeFile(dir, name string) bool {
	segs := segments(dir)
	for _, seg := range segs {
		for _, s := range r.SkipFileDirs {
			if strings.HasSuffix(seg, s) {
				return false
			}
		}
	}
	for _, s := range r.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	if r.ResourceSegment != "" && strings.HasSuffix(name, r.MarkupSuffix) {
		for _, seg := range segs {
			if seg == r.ResourceSegment {
				return true
			}
		}
	}
	return false
}

// pinnedFile reports whether rel is covered by the pinned rule.
func (r RuleSet) pinnedFile(rel string) bool {
	if r.Pinned == nil {
		return false
	}
	rel = NormalizePath(rel)
	p := NormalizePath(r.Pinned.Path)
	if r.Pinned.Suffix == "" {
		return rel == p
	}
	return strings.HasPrefix(rel, p+"/") && strings.HasSuffix(rel, r.Pinned.Suffix)
}
