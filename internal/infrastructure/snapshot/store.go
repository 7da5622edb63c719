// Package snapshot persists extracted batches as JSON documents under
// {base}/{nation}/{league}/{club}_{dataType}_{season}_{timestamp}.json.
package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// timestampLayout carries microseconds so two batches for the same club,
// data type and season written within one second still get distinct names.
const timestampLayout = "20060102_150405.000000"

// maxNameAttempts bounds the "-N" suffixes tried when a name is taken.
const maxNameAttempts = 100

type envelope struct {
	Club        string    `json:"club"`
	League      string    `json:"league"`
	Nation      string    `json:"nation"`
	Season      string    `json:"season,omitempty"`
	DataType    string    `json:"dataType"`
	ExportDate  time.Time `json:"exportDate"`
	RecordCount int       `json:"recordCount"`
	Data        any       `json:"data"`
}

// storedEnvelope also accepts the snake_case keys of files written before
// the envelope settled on camelCase.
type storedEnvelope struct {
	Club              string           `json:"club"`
	League            string           `json:"league"`
	Nation            string           `json:"nation"`
	Season            string           `json:"season"`
	DataType          string           `json:"dataType"`
	ExportDate        *time.Time       `json:"exportDate"`
	RecordCount       *int             `json:"recordCount"`
	LegacyDataType    string           `json:"data_type"`
	LegacyExportDate  *time.Time       `json:"export_date"`
	LegacyRecordCount *int             `json:"record_count"`
	Data              []map[string]any `json:"data"`
}

func (e storedEnvelope) snapshot() usecase.Snapshot {
	out := usecase.Snapshot{
		Club:     e.Club,
		League:   e.League,
		Nation:   e.Nation,
		Season:   e.Season,
		DataType: e.DataType,
		Data:     e.Data,
	}
	if out.DataType == "" {
		out.DataType = e.LegacyDataType
	}
	switch {
	case e.ExportDate != nil:
		out.ExportDate = *e.ExportDate
	case e.LegacyExportDate != nil:
		out.ExportDate = *e.LegacyExportDate
	}
	switch {
	case e.RecordCount != nil:
		out.RecordCount = *e.RecordCount
	case e.LegacyRecordCount != nil:
		out.RecordCount = *e.LegacyRecordCount
	default:
		out.RecordCount = len(e.Data)
	}
	if out.Data == nil {
		out.Data = []map[string]any{}
	}
	return out
}

type FileStore struct {
	base   string
	logger *logging.Logger
	now    func() time.Time
}

func NewFileStore(base string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	base = strings.TrimSpace(base)
	if base == "" {
		base = "data/snapshots"
	}
	return &FileStore{base: base, logger: logger.Named("snapshot"), now: time.Now}
}

func (s *FileStore) Base() string {
	return s.base
}

// Write encodes records (a slice of any JSON-encodable type) inside the
// metadata envelope and returns the file path. An existing file is never
// replaced: a taken name gets a "-N" suffix.
func (s *FileStore) Write(ctx context.Context, meta usecase.SnapshotMeta, records any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	exportDate := s.now().UTC()
	dir := filepath.Join(s.base, sanitize(meta.Nation), sanitize(meta.League))
	stem := sanitize(meta.Club) + "_" + string(meta.DataType) + "_" + sanitize(meta.Season) + "_" + exportDate.Format(timestampLayout)

	doc := envelope{
		Club:        meta.Club,
		League:      meta.League,
		Nation:      meta.Nation,
		Season:      meta.Season,
		DataType:    string(meta.DataType),
		ExportDate:  exportDate,
		RecordCount: recordCount(records),
		Data:        records,
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(doc); err != nil {
		return "", crerr.Wrapf(err, "encode snapshot %s", stem)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create snapshot dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, stem+".*.tmp")
	if err != nil {
		return "", crerr.Wrapf(err, "create snapshot %s", stem)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	_, err = tmp.Write(buf.B)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", crerr.Wrapf(err, "write snapshot %s", stem)
	}

	path, err := claim(tmpPath, dir, stem)
	if err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "snapshot written", "path", path, "records", doc.RecordCount)
	return path, nil
}

// claim links the finished temp file to the first free name. Link fails
// when the target exists, so concurrent writers never overwrite each other.
func claim(tmpPath, dir, stem string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := stem
		if attempt > 0 {
			name += "-" + strconv.Itoa(attempt)
		}
		path := filepath.Join(dir, name+".json")

		err := os.Link(tmpPath, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", crerr.Wrapf(err, "finalize snapshot %s", path)
		}
	}
	return "", crerr.Newf("finalize snapshot %s: no free name after %d attempts", stem, maxNameAttempts)
}

func (s *FileStore) Read(ctx context.Context, path string) (usecase.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return usecase.Snapshot{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return usecase.Snapshot{}, crerr.Wrapf(err, "read snapshot %s", path)
	}

	var doc storedEnvelope
	if err := sonic.ConfigStd.Unmarshal(raw, &doc); err != nil {
		return usecase.Snapshot{}, crerr.Wrapf(err, "decode snapshot %s", path)
	}
	return doc.snapshot(), nil
}

// List returns the snapshot files below dir (the store base when empty) in
// lexical order, which is chronological per club and data type.
func (s *FileStore) List(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = s.base
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "list snapshots in %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// FileName is what a snapshot file name says about its contents.
type FileName struct {
	Club     string
	DataType string
	// Season is empty for names written before seasons were recorded.
	Season   string
	Exported time.Time
}

// ParseFileName splits "{club}_{dataType}_{season}_{YYYYMMDD}_{HHMMSS.ffffff}[-N].json"
// and the older "{club}_{dataType}_{YYYYMMDD}_{HHMMSS}.json".
func ParseFileName(path string) (FileName, bool) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(name, "_")
	if len(parts) != 4 && len(parts) != 5 {
		return FileName{}, false
	}

	clock := parts[len(parts)-1]
	if i := strings.LastIndexByte(clock, '-'); i >= 0 {
		clock = clock[:i]
	}
	exported, err := time.Parse("20060102_150405", parts[len(parts)-2]+"_"+clock)
	if err != nil {
		return FileName{}, false
	}

	out := FileName{Club: parts[0], DataType: parts[1], Exported: exported}
	if len(parts) == 5 {
		out.Season = parts[2]
	}
	if out.Club == "" || out.DataType == "" {
		return FileName{}, false
	}
	return out, true
}

// sanitize keeps letters, digits, dashes and dots; everything else becomes
// a dash so names stay a single path component.
func sanitize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			return r
		}
		return '-'
	}, v)
	out = strings.Trim(out, ".-")
	if out == "" {
		return "unknown"
	}
	return out
}

func recordCount(records any) int {
	if records == nil {
		return 0
	}
	v := reflect.ValueOf(records)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return v.Len()
	default:
		return 1
	}
}
