package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/catalog"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/sources/bootstrap"
)

// ReloadReport counts what a reload did.
type ReloadReport struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
	Invalid   int `json:"invalid"`
}

// BootstrapReloader keeps the catalog in line with the bootstrap file.
// Entities it created and that later disappear from the file are deleted;
// entities created through the API are never touched.
type BootstrapReloader struct {
	loader        *bootstrap.Loader
	catalog       *catalog.Catalog
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger <-chan struct{}

	mu    sync.Mutex
	owned map[string]map[uuid.UUID]bool // kind -> ids loaded from the file
}

// NewBootstrapReloader creates a new bootstrap reloader. A zero interval
// disables periodic reloads; manual triggers still work.
func NewBootstrapReloader(
	bootstrapFile string,
	cat *catalog.Catalog,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *BootstrapReloader {
	return &BootstrapReloader{
		loader:        bootstrap.NewLoader(bootstrapFile),
		catalog:       cat,
		index:         idx,
		logger:        log.Named("bootstrap"),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		owned:         make(map[string]map[uuid.UUID]bool),
	}
}

// Start loads the file once, then reloads on every tick or manual trigger
// until Stop is called or ctx is done.
func (br *BootstrapReloader) Start(ctx context.Context) error {
	if _, err := br.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	go br.loop(ctx)
	return nil
}

func (br *BootstrapReloader) loop(ctx context.Context) {
	var tick <-chan time.Time
	if br.interval > 0 {
		ticker := time.NewTicker(br.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			br.reloadLogged(ctx)
		case <-br.manualTrigger:
			br.logger.Info("manual reload triggered")
			br.reloadLogged(ctx)
		case <-br.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (br *BootstrapReloader) reloadLogged(ctx context.Context) {
	if _, err := br.Reload(ctx); err != nil {
		br.logger.Error("failed to reload bootstrap file", logger.Error(err))
	}
}

// Stop stops the reloader. It is safe to call more than once.
func (br *BootstrapReloader) Stop() {
	br.stopOnce.Do(func() { close(br.stopCh) })
}

// Reload applies the bootstrap file to the catalog. Invalid entries are
// logged and skipped; only an unreadable file fails the reload.
func (br *BootstrapReloader) Reload(ctx context.Context) (ReloadReport, error) {
	br.mu.Lock()
	defer br.mu.Unlock()

	br.logger.Info("reloading bootstrap file", logger.String("path", br.loader.Path()))

	file, err := br.loader.Load()
	if err != nil {
		return ReloadReport{}, fmt.Errorf("failed to load bootstrap file: %w", err)
	}

	var report ReloadReport
	set, err := bootstrap.Map(file)
	if err != nil {
		report.Invalid = countJoined(err)
		br.logger.Warn("skipping invalid bootstrap entries", logger.Error(err))
	}

	br.owned["broker"] = apply(ctx, br, br.catalog.Brokers, set.Brokers, set.Skipped["broker"], br.owned["broker"], &report)
	br.owned["endpoint"] = apply(ctx, br, br.catalog.Endpoints, set.Endpoints, set.Skipped["endpoint"], br.owned["endpoint"], &report)
	br.owned["rule"] = apply(ctx, br, br.catalog.Rules, set.Rules, set.Skipped["rule"], br.owned["rule"], &report)

	br.index.MarkReloaded(time.Now())

	br.logger.Info("bootstrap file applied",
		logger.Int("entries", set.Len()),
		logger.Int("created", report.Created),
		logger.Int("updated", report.Updated),
		logger.Int("unchanged", report.Unchanged),
		logger.Int("removed", report.Removed),
		logger.Int("invalid", report.Invalid))
	return report, nil
}

// apply upserts entries into c and deletes the previously owned ids that
// are no longer listed. Skipped entries and entries that failed to apply are
// still listed: a previously owned id among them stays owned and untouched.
// It returns the ids now owned.
func apply[E, D any](
	ctx context.Context,
	br *BootstrapReloader,
	c *catalog.Collection[E, D],
	entries []bootstrap.Entry[D],
	skipped []uuid.UUID,
	previous map[uuid.UUID]bool,
	report *ReloadReport,
) map[uuid.UUID]bool {
	owned := make(map[uuid.UUID]bool, len(entries))

	for _, entry := range entries {
		_, created, changed, err := c.Upsert(ctx, entry.ID, entry.Desc)
		if err != nil {
			report.Invalid++
			br.logger.Warn("failed to apply bootstrap entry",
				logger.String("kind", c.Kind()),
				logger.String("name", entry.Name),
				logger.Error(err))
			if previous[entry.ID] {
				owned[entry.ID] = true
			}
			continue
		}
		owned[entry.ID] = true

		switch {
		case created:
			report.Created++
		case changed:
			report.Updated++
		default:
			report.Unchanged++
		}
	}

	for _, id := range skipped {
		if previous[id] {
			owned[id] = true
		}
	}

	for id := range previous {
		if owned[id] {
			continue
		}
		if err := c.Delete(ctx, id); err == nil {
			report.Removed++
			br.logger.Info("removed entity no longer in bootstrap file",
				logger.String("kind", c.Kind()),
				logger.Stringer("id", id))
		}
	}
	return owned
}

// countJoined returns how many errors an errors.Join result holds.
func countJoined(err error) int {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}
