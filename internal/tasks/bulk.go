package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/emx/internal/formatter"
	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/services"
	"github.com/desertthunder/emx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkFetchOpts contains configuration for concurrent employee lookups.
type BulkFetchOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 8)
	RateLimit  float64 // Requests per second (default: 10)
}

// FetchResult is the outcome of looking up a single id.
type FetchResult struct {
	ID       int
	Employee *models.Employee
	Error    error
}

// BulkFetchResult collects every lookup in the order the ids were given.
type BulkFetchResult struct {
	Results   []FetchResult
	Found     int
	NotFound  int
	Failed    int
	Employees []models.Employee
}

// BulkFetch looks up several employees by id with a bounded worker pool and a shared rate limit.
//
// A failed lookup is recorded in its [FetchResult] and does not stop the others. Only a missing service or a
// canceled context returns an error.
func BulkFetch(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	svc services.EmployeeService,
	ids []int,
	opts BulkFetchOpts,
) (*BulkFetchResult, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	type job struct {
		index int
		id    int
	}
	type indexed struct {
		index int
		res   FetchResult
	}

	jobs := make(chan job)
	results := make(chan indexed, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- indexed{j.index, FetchResult{ID: j.id, Error: err}}
					continue
				}
				e, err := svc.GetByID(ctx, j.id)
				results <- indexed{j.index, FetchResult{ID: j.id, Employee: e, Error: err}}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, id: id}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexed, 0, len(ids))
	for r := range results {
		collected = append(collected, r)
		step := len(collected)
		if r.res.Error != nil {
			sendProgress(prog, fetchEmployeeFailedUpdate(step, len(ids), r.res.ID, r.res.Error))
		} else {
			sendProgress(prog, fetchEmployeeUpdate(step, len(ids), r.res.Employee))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}

	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })

	out := &BulkFetchResult{Results: make([]FetchResult, 0, len(collected))}
	for _, c := range collected {
		out.Results = append(out.Results, c.res)
		switch {
		case c.res.Error == nil:
			out.Found++
			out.Employees = append(out.Employees, *c.res.Employee)
		case isNotFound(c.res.Error):
			out.NotFound++
		default:
			out.Failed++
		}
	}
	return out, nil
}

// ExportOpts selects which records are exported and where they go.
type ExportOpts struct {
	Format formatter.Format
	Output string // Destination path (default: employees.{ext})
	Search string
	Order  roster.SortOrder
}

// ExportResult describes a finished export.
type ExportResult struct {
	Path  string
	Count int
}

// Export fetches the store, applies the search and sort from opts to every record, and writes them out.
//
// The export is not paginated.
func Export(ctx context.Context, prog chan<- ProgressUpdate, svc services.EmployeeService, opts ExportOpts) (*ExportResult, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(prog, fetchingEmployeesUpdate())
	records, err := svc.ListAll(ctx)
	if err != nil {
		sendProgress(prog, failedUpdate(MsgLoadFailed))
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	sendProgress(prog, fetchedEmployeesUpdate(len(records)))

	selected := roster.Filter(records, opts.Search)
	roster.Sort(selected, opts.Order)

	path, err := formatter.WriteExport(opts.Format, selected, opts.Output)
	if err != nil {
		return nil, err
	}

	sendProgress(prog, exportedUpdate(len(selected), path))
	return &ExportResult{Path: path, Count: len(selected)}, nil
}

func isNotFound(err error) bool { return errors.Is(err, shared.ErrNotFound) }
