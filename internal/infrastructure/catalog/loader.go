// Package catalog loads the crawl catalog from JSON5 files. A sibling
// "<name>.local.json5" overrides the main file, which lets operators pin
// extra teams without touching the shipped catalog.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/titanous/json5"
)

//go:embed default.json5
var defaultCatalog []byte

var validate = validator.New()

// Loader reads the catalog once and serves it from memory afterwards.
type Loader struct {
	path   string
	logger *logging.Logger

	once    sync.Once
	catalog crawl.Catalog
	err     error
}

// NewLoader reads path lazily; an empty path selects the embedded catalog.
func NewLoader(path string, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{path: strings.TrimSpace(path), logger: logger.Named("catalog")}
}

func (l *Loader) Catalog(_ context.Context) (crawl.Catalog, error) {
	l.once.Do(func() {
		if l.path == "" {
			l.catalog, l.err = Default()
			return
		}
		l.catalog, l.err = Load(l.path, l.logger)
	})
	return l.catalog, l.err
}

// Default returns the catalog shipped with the binary.
func Default() (crawl.Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes, defaults and validates one catalog document.
func Parse(raw []byte) (crawl.Catalog, error) {
	var out crawl.Catalog
	if err := json5.Unmarshal(raw, &out); err != nil {
		return crawl.Catalog{}, crerr.Wrap(err, "decode catalog")
	}
	return finalize(out)
}

// Load reads name and merges "<name>.local.<ext>" over it when present.
func Load(name string, logger *logging.Logger) (crawl.Catalog, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var out crawl.Catalog
	raw, err := os.ReadFile(name)
	if err != nil {
		return crawl.Catalog{}, crerr.Wrapf(err, "read catalog %s", name)
	}
	if err := json5.Unmarshal(raw, &out); err != nil {
		return crawl.Catalog{}, crerr.Wrapf(err, "decode catalog %s", name)
	}

	localPath := localName(name)
	localRaw, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return crawl.Catalog{}, crerr.Wrapf(err, "read catalog %s", localPath)
	}
	if len(localRaw) > 0 {
		var override crawl.Catalog
		if err := json5.Unmarshal(localRaw, &override); err != nil {
			return crawl.Catalog{}, crerr.Wrapf(err, "decode catalog %s", localPath)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return crawl.Catalog{}, crerr.Wrapf(err, "merge catalog %s", localPath)
		}
		logger.Info("merging catalog with local overrides", "local", localPath)
	}

	return finalize(out)
}

// finalize copies league table ids into entries that leave them empty and
// validates the result.
func finalize(in crawl.Catalog) (crawl.Catalog, error) {
	for key, lg := range in.Leagues {
		for i := range lg.Entries {
			if err := mergo.Merge(&lg.Entries[i].Tables, lg.Tables); err != nil {
				return crawl.Catalog{}, crerr.Wrapf(err, "default tables for %s entry %d", key, i)
			}
		}
		in.Leagues[key] = lg
	}

	if err := validate.Struct(in); err != nil {
		return crawl.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return in, nil
}

func localName(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, prefix+".local"+ext)
}
