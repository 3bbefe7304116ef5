package internal

import (
	"context"
	iofs "io/fs"
	"path"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// ScanResult is the ordered, de-duplicated list of report files.
// Paths are slash separated and relative to the scan root.
type ScanResult struct {
	Paths []string
	Err   error // non-fatal walk problems, nil when the walk was clean
}

func (r ScanResult) Len() int { return len(r.Paths) }

// Walk collects every file the rule set includes, never descending into a
// directory the rule set prunes. Pinned files are listed exactly once.
func Walk(ctx context.Context, fsys iofs.FS, rules RuleSet, maxDepth int) ScanResult {
	var (
		paths []string
		errs  *multierror.Error
		seen  = make(map[string]struct{})
	)
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	pinned := collectPinned(fsys, rules)
	skip := make(map[string]struct{}, len(pinned))
	for _, p := range pinned {
		skip[p] = struct{}{}
	}
	if rules.Pinned != nil && rules.Pinned.First {
		for _, p := range pinned {
			logrus.Debugf("Scanning: %s (pinned)", p)
			add(p)
		}
	}

	limit, visited := entryLimit(fsys), 0
	err := WalkWithDepth(ctx, fsys, ".", maxDepth, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			errs = multierror.Append(errs, err)
			if d != nil && d.IsDir() && p != "." {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && rules.SkipDir(d.Name()) {
				logrus.Debugf("Skip dir: %s", p)
				return iofs.SkipDir
			}
			return nil
		}
		visited++
		if limit > 0 && visited > limit {
			logrus.Warnf("Archive walk stopped: too many files (> %d)", limit)
			errs = multierror.Append(errs, ErrArchiveLimit)
			return iofs.SkipAll
		}
		logrus.Debugf("Scanning: %s", p)
		if !rules.IncludeFile(path.Dir(p), d.Name()) || !isRegular(fsys, p, d) {
			return nil
		}
		if _, ok := skip[p]; ok {
			return nil
		}
		add(p)
		return nil
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if rules.Pinned != nil && !rules.Pinned.First {
		for _, p := range pinned {
			logrus.Debugf("Scanning: %s (pinned)", p)
			add(p)
		}
	}
	return ScanResult{Paths: paths, Err: errs.ErrorOrNil()}
}

// collectPinned resolves the pinned rule against fsys. Missing targets yield nothing.
func collectPinned(fsys iofs.FS, rules RuleSet) []string {
	if rules.Pinned == nil {
		return nil
	}
	target := NormalizePath(rules.Pinned.Path)
	if rules.Pinned.Suffix == "" {
		info, err := iofs.Stat(fsys, target)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		return []string{target}
	}

	var out []string
	_ = iofs.WalkDir(fsys, target, func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rules.pinnedFile(p) && isRegular(fsys, p, d) {
			out = append(out, p)
		}
		return nil
	})
	return out
}
