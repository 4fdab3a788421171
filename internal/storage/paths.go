package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// segmentPattern accepts ASCII word characters with interior dots, e.g.
// "photo", "file.txt", "archive.tar.gz".
var segmentPattern = regexp.MustCompile(`^\w+(\.\w+)*$`)

// cleanPath validates a logical path and returns it slash-separated without
// leading slashes. Empty segments are dropped; "." and ".." are rejected.
func cleanPath(path string) (string, error) {
	trimmed := strings.TrimLeft(path, "/")
	if trimmed == "" {
		return "", &ValidationError{Path: path, Msg: "path is empty"}
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(parts))
	for _, seg := range parts {
		switch {
		case seg == "":
			continue
		case seg == "." || seg == "..":
			return "", &ValidationError{Path: path, Msg: "relative segments are not allowed"}
		case !segmentPattern.MatchString(seg):
			return "", &ValidationError{Path: path, Msg: fmt.Sprintf("segment %q contains disallowed characters", seg)}
		}
		segments = append(segments, seg)
	}
	return strings.Join(segments, "/"), nil
}

// normalizePath maps a logical path onto an absolute path beneath the root.
// Symlinks along the parent directories must resolve inside the root; the
// last component is left as is, so callers that Lstat it never follow a link.
func (s *LocalFileStorage) normalizePath(path string) (string, error) {
	clean, err := cleanPath(path)
	if err != nil {
		return "", err
	}
	root, err := s.resolvedRoot()
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(clean))
	if rel, err := filepath.Rel(root, full); err != nil || rel == "." || !within(rel) {
		return "", &ValidationError{Path: path, Msg: "path escapes root"}
	}
	if !within(relTo(root, resolveExisting(root, filepath.Dir(full)))) {
		return "", &ValidationError{Path: path, Msg: "path resolves outside root"}
	}
	return full, nil
}

// followPath is normalizePath for operations that follow a symlink in the
// last component. The link target has to exist and stay inside the root.
func (s *LocalFileStorage) followPath(path string) (string, error) {
	full, err := s.normalizePath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Lstat(full)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return full, nil
	}
	target, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", &ValidationError{Path: path, Msg: "symbolic link target does not exist"}
	}
	root, err := s.resolvedRoot()
	if err != nil {
		return "", err
	}
	if !within(relTo(root, target)) {
		return "", &ValidationError{Path: path, Msg: "path resolves outside root"}
	}
	return full, nil
}

// resolveExisting returns the symlink-resolved form of the deepest existing
// directory on the way from p up to root. root itself is returned as is.
func resolveExisting(root, p string) string {
	for p != root {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return resolved
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return root
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return ".."
	}
	return rel
}

// within reports whether a root-relative path stays at or below the root.
func within(rel string) bool {
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// resolvedRoot returns the absolute root with symlinks resolved when it exists.
func (s *LocalFileStorage) resolvedRoot() (string, error) {
	if strings.TrimSpace(s.rootPath) == "" {
		return "", ErrRootNotConfigured
	}
	root, err := filepath.Abs(s.rootPath)
	if err != nil {
		return "", fmt.Errorf("storage: resolve root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}
