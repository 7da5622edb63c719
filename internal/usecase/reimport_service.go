package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

const (
	ReimportSuccess = "success"
	ReimportFailed  = "failed"
	ReimportSkipped = "skipped"

	defaultReimportWorkers = 4
	maxReimportWorkers     = 32
)

type ReimportTaskResult struct {
	Path     string         `json:"path"`
	DataType crawl.DataType `json:"dataType,omitempty"`
	Club     string         `json:"club,omitempty"`
	Status   string         `json:"status"`
	Saved    int            `json:"saved"`
	Message  string         `json:"message,omitempty"`
}

type ReimportReport struct {
	Dir        string               `json:"dir"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	Skipped    int                  `json:"skipped"`
	Tasks      []ReimportTaskResult `json:"tasks"`
}

// ReimportService replays snapshot files through the importer on a worker
// pool. Players files run in a first phase because the other data types are
// matched against imported players.
type ReimportService struct {
	snapshots SnapshotStore
	importer  Importer
	workers   int
	logger    *logging.Logger
}

func NewReimportService(snapshots SnapshotStore, importer Importer, workers int, logger *logging.Logger) *ReimportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReimportService{
		snapshots: snapshots,
		importer:  importer,
		workers:   normalizeReimportWorkers(workers),
		logger:    logger.Named("reimport"),
	}
}

func normalizeReimportWorkers(n int) int {
	if n <= 0 {
		return defaultReimportWorkers
	}
	if n > maxReimportWorkers {
		return maxReimportWorkers
	}
	return n
}

func (s *ReimportService) ImportDir(ctx context.Context, dir string) (ReimportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReimportService.ImportDir", attrDir.String(dir))
	defer span.End()

	report := ReimportReport{Dir: dir, StartedAt: time.Now().UTC(), Tasks: []ReimportTaskResult{}}
	if s.snapshots == nil || s.importer == nil {
		return report, fmt.Errorf("%w: re-importer is not configured", ErrDependencyUnavailable)
	}

	paths, err := s.snapshots.List(ctx, dir)
	if err != nil {
		return report, fmt.Errorf("%w: list snapshots in %s: %v", ErrNotFound, dir, err)
	}

	var first, second []string
	for _, path := range paths {
		if snapshotDataType(path) == crawl.DataTypePlayers {
			first = append(first, path)
		} else {
			second = append(second, path)
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return report, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	for _, phase := range [][]string{first, second} {
		var wg sync.WaitGroup
		for _, path := range phase {
			wg.Add(1)
			task := func() {
				defer wg.Done()
				res := s.importFile(ctx, path)
				mu.Lock()
				report.Tasks = append(report.Tasks, res)
				mu.Unlock()
			}
			if submitErr := pool.Submit(task); submitErr != nil {
				wg.Done()
				mu.Lock()
				report.Tasks = append(report.Tasks, ReimportTaskResult{Path: path, Status: ReimportFailed, Message: submitErr.Error()})
				mu.Unlock()
			}
		}
		wg.Wait()
	}

	sort.Slice(report.Tasks, func(i, j int) bool { return report.Tasks[i].Path < report.Tasks[j].Path })
	for _, task := range report.Tasks {
		switch task.Status {
		case ReimportSuccess:
			report.Succeeded++
		case ReimportSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}
	report.FinishedAt = time.Now().UTC()

	s.logger.InfoContext(ctx, "snapshot re-import finished",
		"dir", dir,
		"files", len(report.Tasks),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (s *ReimportService) importFile(ctx context.Context, path string) (res ReimportTaskResult) {
	res = ReimportTaskResult{Path: path}
	defer func() {
		if r := recover(); r != nil {
			res.Status = ReimportFailed
			res.Message = fmt.Sprintf("re-import panicked: %v", r)
		}
	}()

	snap, err := s.snapshots.Read(ctx, path)
	if err != nil {
		res.Status = ReimportFailed
		res.Message = err.Error()
		return res
	}

	dataType, ok := crawl.ParseDataType(snap.DataType)
	if !ok || !dataType.Importable() {
		res.Status = ReimportSkipped
		res.DataType = dataType
		res.Message = fmt.Sprintf("data type %q is not importable", snap.DataType)
		return res
	}
	res.DataType = dataType
	res.Club = snap.Club

	if len(snap.Data) == 0 {
		res.Status = ReimportSkipped
		res.Message = "snapshot has no records"
		return res
	}

	result, err := s.importer.Import(ctx, ImportInput{
		Records:  snap.Data,
		DataType: dataType,
		Club:     snap.Club,
		League:   snap.League,
		Nation:   snap.Nation,
		Season:   snap.Season,
	})
	res.Saved = result.Saved
	if err != nil || !result.Success {
		res.Status = ReimportFailed
		res.Message = ImportFailureMessage(result, err)
		s.logger.WarnContext(ctx, "snapshot re-import failed", "path", path, "message", res.Message)
		return res
	}

	res.Status = ReimportSuccess
	res.Message = result.Message
	return res
}

// snapshotDataType reads the data type out of a "{club}_{type}_..." file
// name without opening the file. Club names never contain underscores.
func snapshotDataType(path string) crawl.DataType {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(name, "_")
	if len(parts) < 4 {
		return ""
	}
	dataType, _ := crawl.ParseDataType(parts[1])
	return dataType
}
