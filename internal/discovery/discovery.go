// Package discovery walks content, theme and asset directories, producing the
// flat registry of content stubs and the asset manifest the later phases
// consume.
package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
)

// contentExtensions are the source file types that become content stubs.
var contentExtensions = map[string]bool{".md": true, ".html": true, ".xml": true, ".txt": true}

const imagesDirName = "images"

type walkTask struct {
	name string
	run  func(*Registry) error
}

func (t walkTask) String() string { return t.name }

// Discover walks every existing content and asset root in parallel and
// returns the populated registry.
func Discover(site *config.Site) (*Registry, error) {
	reg := NewRegistry()
	tasks := buildTasks(site)

	err := parallel.RunVoid(tasks, site.MaxWorkers, func(t walkTask) error {
		return t.run(reg)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Content discovery complete",
		logfields.Phase("discovery"),
		logfields.Count(len(reg.Stubs(Posts))+len(reg.Stubs(Pages))))
	return reg, nil
}

// buildTasks lists one task per existing top-level path. Page walks for theme
// and site are separate tasks; AddStub's override flag keeps their combined
// result order-independent.
func buildTasks(site *config.Site) []walkTask {
	var tasks []walkTask

	if dir := site.ThemePagesDir(); dirExists(dir) {
		tasks = append(tasks, walkTask{name: "theme-pages", run: func(r *Registry) error {
			return walkContent(dir, Pages, false, r)
		}})
	}
	if dir := site.ContentDir("pages"); dirExists(dir) {
		tasks = append(tasks, walkTask{name: "site-pages", run: func(r *Registry) error {
			return walkContent(dir, Pages, true, r)
		}})
	}

	postsRoot := site.ContentDir("posts")
	if dirExists(postsRoot) {
		years, err := os.ReadDir(postsRoot)
		if err == nil {
			for _, year := range years {
				if !year.IsDir() {
					continue
				}
				dir := filepath.Join(postsRoot, year.Name())
				tasks = append(tasks, walkTask{name: "posts-" + year.Name(), run: func(r *Registry) error {
					return walkContent(dir, Posts, true, r)
				}})
			}
		}
	}

	if dir := site.ThemeAssetsDir(); dirExists(dir) {
		tasks = append(tasks, walkTask{name: "theme-assets", run: func(r *Registry) error {
			return walkAssets(dir, false, r)
		}})
	}
	if dir := site.AssetsDir(); dirExists(dir) {
		tasks = append(tasks, walkTask{name: "site-assets", run: func(r *Registry) error {
			return walkAssets(dir, true, r)
		}})
	}

	return tasks
}

// walkContent recursively collects content stubs from dir. An images/
// subdirectory anywhere below contributes its files to the images asset
// bucket instead of becoming content.
func walkContent(dir string, ct ContentType, fromSite bool, reg *Registry) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "walk content directory").
				WithContext("dir", dir)
		}
		if d.IsDir() {
			return nil
		}
		if inImagesDir(dir, path) {
			reg.AddAsset(imagesDirName, path, fromSite)
			return nil
		}
		ext := filepath.Ext(d.Name())
		if !contentExtensions[ext] {
			return nil
		}
		name := d.Name()[:len(d.Name())-len(ext)]
		reg.AddStub(Stub{FilePath: path, ContentType: ct, Name: name}, fromSite)
		return nil
	})
}

// walkAssets contributes one bucket per immediate subdirectory of dir,
// flattening nested files into it.
func walkAssets(dir string, fromSite bool, reg *Registry) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read assets directory").
			WithContext("dir", dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bucket := entry.Name()
		bucketDir := filepath.Join(dir, bucket)
		err := filepath.WalkDir(bucketDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				reg.AddAsset(bucket, path, fromSite)
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "walk asset bucket").
				WithContext("bucket", bucket)
		}
	}
	return nil
}

// inImagesDir reports whether path sits below an images/ directory under root.
// The file itself is excluded; only parent components count.
func inImagesDir(root, path string) bool {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == imagesDirName {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
