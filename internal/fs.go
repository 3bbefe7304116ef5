package internal

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// IsArchive by extension. O(1) map lookup
var archiveExt = map[string]struct{}{
	".zip": {}, ".tar": {}, ".gz": {}, ".tgz": {}, ".bz2": {}, ".xz": {},
	".rar": {}, ".br": {}, ".lz4": {}, ".lz": {}, ".mz": {},
	".sz": {}, ".s2": {}, ".zz": {}, ".zst": {}, ".7z": {},
}

var ErrNotSource = errors.New("not a directory or archive")

// maxArchiveFiles caps the entries walked inside an archive (zip-bomb protection).
var maxArchiveFiles = 10000

var ErrArchiveLimit = errors.New("archive file limit reached")

func IsArchive(p string) bool {
	_, ok := archiveExt[strings.ToLower(filepath.Ext(p))]
	return ok
}

// OpenSource opens the scan root as a read-only file system. Directories are
// served from disk, archive files through their archive format.
func OpenSource(ctx context.Context, root string) (iofs.FS, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() && !IsArchive(root) {
		return nil, fmt.Errorf("%s: %w", root, ErrNotSource)
	}
	fsys, err := archives.FileSystem(ctx, root, nil)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return listedDirFS{fsys}, nil
	}
	return fsys, nil
}

// listedDirFS lists directories in the order the OS returns them.
// archives.DirFS and os.DirFS sort entries by name.
type listedDirFS struct {
	iofs.FS
}

func (f listedDirFS) ReadDir(name string) ([]iofs.DirEntry, error) {
	d, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	rd, ok := d.(iofs.ReadDirFile)
	if !ok {
		return nil, &iofs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}
	return rd.ReadDir(-1)
}

func (f listedDirFS) Stat(name string) (iofs.FileInfo, error) {
	return iofs.Stat(f.FS, name)
}

// entryLimit is the number of file entries Walk visits before giving up.
// Zero means no limit.
func entryLimit(fsys iofs.FS) int {
	if _, ok := fsys.(*archives.ArchiveFS); ok {
		return maxArchiveFiles
	}
	return 0
}

// OutputDir returns the directory the report artifact is written to: the root
// itself, or the directory holding it when the root is an archive.
func OutputDir(root string) string {
	if st, err := os.Stat(root); err == nil && !st.IsDir() && IsArchive(root) {
		return filepath.Dir(root)
	}
	return root
}

// WalkWithDepth uses fs.WalkDir and cuts branches by depth.
func WalkWithDepth(ctx context.Context, fsys iofs.FS, root string, maxDepth int, fn iofs.WalkDirFunc) error {
	return iofs.WalkDir(fsys, root, func(p string, d iofs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fn(p, d, err)
		}
		if maxDepth > 0 && p != root && depthCount(relTo(root, p)) > maxDepth {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		return fn(p, d, nil)
	})
}

func relTo(root, p string) string {
	if root == "." {
		return p
	}
	return strings.TrimPrefix(p, root+"/")
}

func depthCount(rel string) int {
	if rel == "" || rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// isRegular follows symlinks the way a directory listing would.
func isRegular(fsys iofs.FS, p string, d iofs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&iofs.ModeSymlink == 0 {
		return false
	}
	info, err := iofs.Stat(fsys, p)
	return err == nil && info.Mode().IsRegular()
}

// DisplayPath renders a slash separated relative path with the host separator.
func DisplayPath(rel string) string {
	return filepath.FromSlash(path.Clean(rel))
}
