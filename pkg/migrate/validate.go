package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates the on-disk migrations tree rooted at dir.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	return ValidateFS(os.DirFS(dir), ".")
}

// ValidateEmbedded validates the migrations compiled into the binary.
func ValidateEmbedded() error {
	return ValidateFS(embedded, "migrations")
}

// ValidateFS checks filenames, goose headers, and that every dialect ships the same versions.
func ValidateFS(fsys fs.FS, root string) error {
	versionsByDialect := map[string][]string{}

	for _, dialect := range Dialects {
		dir := path.Join(root, dialect)
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return fmt.Errorf("read dir %q: %w", dir, err)
		}

		seen := map[string]string{} // version -> filename
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if !strings.HasSuffix(name, ".sql") {
				continue
			}

			m := sqlFileRe.FindStringSubmatch(name)
			if m == nil {
				return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
			}

			version := m[1]
			if prev, ok := seen[version]; ok {
				return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
			}
			seen[version] = name

			b, err := fs.ReadFile(fsys, path.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read file %q: %w", name, err)
			}

			txt := string(b)
			if !strings.Contains(txt, "-- +goose Up") {
				return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
			}
			if !strings.Contains(txt, "-- +goose Down") {
				return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
			}
			versionsByDialect[dialect] = append(versionsByDialect[dialect], version)
		}
		sort.Strings(versionsByDialect[dialect])
	}

	base := versionsByDialect[Dialects[0]]
	for _, dialect := range Dialects[1:] {
		if strings.Join(base, ",") != strings.Join(versionsByDialect[dialect], ",") {
			return fmt.Errorf("dialect %s migrations %v do not match %s migrations %v", dialect, versionsByDialect[dialect], Dialects[0], base)
		}
	}
	return nil
}
