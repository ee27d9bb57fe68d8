package compressor

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/horacio12345/image-compressor/internal/logger"
)

// progressTracker is the single shared record of a batch. Workers only hold
// its lock for the counter update, never while decoding or encoding.
type progressTracker struct {
	total int

	mu   sync.Mutex
	info ProgressInfo
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{total: total, info: ProgressInfo{TotalImages: total}}
}

func (t *progressTracker) record(path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.info.Failed++
	} else {
		t.info.Successful++
	}
	// last writer wins; this is not a live cursor
	t.info.CurrentFile = path
}

func (t *progressTracker) snapshot() ProgressInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.info
}

// ProcessImages runs ProcessSingleImage for every path on a fixed pool of
// workers and returns the aggregate counts. Per-file failures are absorbed
// into ProgressInfo.Failed; the only error is an empty path list.
//
// If ctx is cancelled, files that have not started yet are counted as failed
// without being touched. updates may be nil; when set it receives one
// ProgressUpdate per file and is not closed.
func ProcessImages(ctx context.Context, paths []string, opts ProcessOptions, updates chan<- ProgressUpdate) (ProgressInfo, error) {
	if len(paths) == 0 {
		return ProgressInfo{}, errInternal("no images provided")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.WithField("batch", uuid.NewString())
	log.WithFields(logrus.Fields{
		"images":  len(paths),
		"quality": opts.Quality.String(),
		"format":  opts.Format.String(),
		"privacy": opts.Privacy.String(),
		"width":   opts.Width,
		"output":  opts.OutputDir,
	}).Info("Starting batch")

	tracker := newProgressTracker(len(paths))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, jobs, opts, tracker, updates, log)
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	summary := tracker.snapshot()
	log.WithFields(logrus.Fields{
		"total":      summary.TotalImages,
		"successful": summary.Successful,
		"failed":     summary.Failed,
	}).Info("Batch finished")

	return summary, nil
}

func worker(ctx context.Context, jobs <-chan string, opts ProcessOptions, tracker *progressTracker, updates chan<- ProgressUpdate, log *logrus.Entry) {
	for path := range jobs {
		err := ctx.Err()
		if err == nil {
			err = ProcessSingleImage(path, opts)
		}

		tracker.record(path, err)

		entry := log.WithField("file", path)
		if err != nil {
			entry.WithError(err).Debug("Image failed")
		} else {
			entry.Debug("Image compressed")
		}

		if updates != nil {
			updates <- ProgressUpdate{
				Total:  tracker.total,
				File:   path,
				Err:    err,
				Failed: err != nil,
			}
		}
	}
}
