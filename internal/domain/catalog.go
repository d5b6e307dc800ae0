package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

const (
	goFileExt       = ".go"
	recursiveSuffix = "/..."
)

// catalog finds every function carrying an expectation annotation under
// args.Paths. Files are loaded by a bounded pool of args.Threads workers.
func catalog(ctx context.Context, fsAdapter adapter.SourceFSAdapter, goFileAdapter adapter.GoFileAdapter, args ListArgs) ([]m.CatalogEntry, error) {
	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(ctx, fsAdapter, args.Paths, exclude)
	if err != nil {
		return nil, err
	}

	slog.Debug("Collected sources", "files", len(files), "threads", args.Threads)

	var (
		entries []m.CatalogEntry
		mu      sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for _, file := range files {
		group.Go(func() error {
			found, err := catalogFile(groupCtx, fsAdapter, goFileAdapter, file)
			if err != nil {
				return err
			}

			mu.Lock()
			entries = append(entries, found...)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}

		return entries[i].Line < entries[j].Line
	})

	return entries, nil
}

// catalogFile lists the golden functions of one file. Files that do not
// parse are reported as a single entry instead of failing the listing.
func catalogFile(ctx context.Context, fsAdapter adapter.SourceFSAdapter, goFileAdapter adapter.GoFileAdapter, path m.Path) ([]m.CatalogEntry, error) {
	src, err := LoadSource(ctx, fsAdapter, goFileAdapter, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return []m.CatalogEntry{{Path: path, Problem: problemOf(err)}}, nil
	}

	var entries []m.CatalogEntry

	for _, node := range Functions(src) {
		if !hasExpectation(node) {
			continue
		}

		entry := m.CatalogEntry{
			Path: path,
			Line: node.DeclarationLine,
			Name: node.Name,
		}

		target, err := Validate(path, node)
		if err == nil {
			_, err = Span(path, node)
		}

		if err != nil {
			entry.Problem = problemOf(err)
		} else {
			entry.Expected = target.Expected
			entry.Trigger = target.Trigger
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func hasExpectation(node m.FunctionNode) bool {
	for _, annotation := range node.Annotations {
		if annotation.Name == ExpectationName {
			return true
		}
	}

	return false
}

// collectFiles expands Go-style path patterns into Go files. A trailing /...
// descends into subdirectories, skipping vendor, testdata and hidden ones.
func collectFiles(ctx context.Context, fsAdapter adapter.SourceFSAdapter, roots []m.Path, exclude []*regexp.Regexp) ([]m.Path, error) {
	if len(roots) == 0 {
		roots = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[m.Path]bool)

	var files []m.Path

	for _, root := range roots {
		rootStr, recursive := parseRootPath(string(root))

		if _, err := fsAdapter.FileInfo(ctx, m.Path(rootStr)); err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		err := fsAdapter.Walk(ctx, m.Path(rootStr), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != rootStr && skipDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(path) != goFileExt || isExcluded(path, exclude) {
				return nil
			}

			if !seen[m.Path(path)] {
				seen[m.Path(path)] = true

				files = append(files, m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, recursiveSuffix) {
		path = strings.TrimSuffix(rootStr, recursiveSuffix)
		if path == "" {
			path = "/"
		}

		return path, true
	}

	return rootStr, false
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func isExcluded(path string, exclude []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	for _, re := range exclude {
		if re.MatchString(slashed) || re.MatchString(filepath.Base(path)) {
			return true
		}
	}

	return false
}

func problemOf(err error) string {
	var promotionErr *PromotionError
	if errors.As(err, &promotionErr) {
		return promotionErr.Summary()
	}

	return err.Error()
}
