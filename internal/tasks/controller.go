package tasks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/services"
	"github.com/desertthunder/emx/internal/shared"
)

const (
	MsgAddFailed    string = "Failed to add employee. Please try again."
	MsgUpdateFailed string = "Failed to update employee. Please try again."
	MsgDeleteFailed string = "Failed to delete employee. Please try again."
	MsgLoadFailed   string = "Failed to load employees. Please try again."
)

// Dialog is the modal currently shown over the list.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogCreate
	DialogEdit
	DialogConfirmDelete
)

func (d Dialog) String() string {
	switch d {
	case DialogCreate:
		return "create"
	case DialogEdit:
		return "edit"
	case DialogConfirmDelete:
		return "confirm_delete"
	default:
		return "none"
	}
}

// State is a snapshot of everything the list screen renders.
type State struct {
	Loading       bool
	Submitting    bool
	Error         string
	Dialog        Dialog
	Editing       *models.Employee // record behind an open edit form
	PendingDelete *models.Employee // record awaiting delete confirmation
	Display       roster.DisplayState
	View          roster.View
	Window        []int
	Count         int // records in the store, before filtering
}

// Options configures a [Controller].
type Options struct {
	Service  services.EmployeeService
	Logger   *log.Logger
	PageSize int
	Order    roster.SortOrder
	Signals  *SignalBus
	OnChange func(State)
	Progress chan<- ProgressUpdate
}

// Controller owns the record store and reconciles it with the remote service.
//
// The store is only ever replaced wholesale from ListAll. Every successful mutation re-fetches it before the
// open dialog is closed. At most one mutation is in flight; a second one fails with [shared.ErrBusy].
type Controller struct {
	svc      services.EmployeeService
	logger   *log.Logger
	pageSize int
	signals  *SignalBus
	onChange func(State)
	progress chan<- ProgressUpdate

	mu         sync.Mutex
	records    []models.Employee
	display    roster.DisplayState
	loading    bool
	submitting bool
	errMsg     string
	dialog     Dialog
	editing    *models.Employee
	pending    *models.Employee
	releaseEsc func()

	// reloads are numbered when issued; a result older than the last applied one is dropped
	reloadGen  uint64
	appliedGen uint64
}

// NewController creates a controller with an empty store. Call [Controller.Refresh] to load it.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.PageSize < 1 {
		opts.PageSize = roster.DefaultPageSize
	}
	if opts.Signals == nil {
		opts.Signals = NewSignalBus()
	}

	return &Controller{
		svc:      opts.Service,
		logger:   opts.Logger,
		pageSize: opts.PageSize,
		signals:  opts.Signals,
		onChange: opts.OnChange,
		progress: opts.Progress,
		records:  []models.Employee{},
		display:  roster.DisplayState{Order: opts.Order, Page: 1},
	}
}

// Signals returns the bus that carries the cancel key.
func (c *Controller) Signals() *SignalBus { return c.signals }

// Refresh replaces the store with the service's current records.
//
// On failure the store is kept, any dialog is closed and the load message is surfaced.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.svc == nil {
		return fmt.Errorf("%w: employee service not configured", shared.ErrServiceUnavailable)
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	c.notify()

	err := c.reload(ctx)

	c.mu.Lock()
	if !c.submitting {
		c.loading = false
		if err != nil {
			c.errMsg = MsgLoadFailed
			c.closeDialogLocked()
		} else {
			c.errMsg = ""
		}
	}
	c.mu.Unlock()
	c.notify()

	if err != nil {
		sendProgress(c.progress, failedUpdate(MsgLoadFailed))
		return fmt.Errorf("failed to load employees: %w", err)
	}
	return nil
}

// Add creates a new employee and refreshes the store.
func (c *Controller) Add(ctx context.Context, candidate models.Candidate) error {
	candidate = candidate.WithoutID()
	return c.mutate(ctx, CreateEmployee, candidate.Name, MsgAddFailed, func(ctx context.Context) error {
		return c.svc.Create(ctx, candidate)
	})
}

// Edit replaces the employee with the given id and refreshes the store.
func (c *Controller) Edit(ctx context.Context, id int, candidate models.Candidate) error {
	candidate.ID = models.IntPtr(id)
	return c.mutate(ctx, UpdateEmployee, candidate.Name, MsgUpdateFailed, func(ctx context.Context) error {
		return c.svc.Update(ctx, candidate)
	})
}

// Remove deletes the employee with the given id and refreshes the store.
func (c *Controller) Remove(ctx context.Context, id int) error {
	return c.mutate(ctx, DeleteEmployee, fmt.Sprintf("employee %d", id), MsgDeleteFailed, func(ctx context.Context) error {
		return c.svc.DeleteByID(ctx, id)
	})
}

// OpenCreate shows an empty form.
func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	c.closeDialogLocked()
	c.dialog = DialogCreate
	c.errMsg = ""
	c.mu.Unlock()

	c.notify()
	return nil
}

// OpenEdit shows the form pre-filled from the stored record with the given id.
func (c *Controller) OpenEdit(id int) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	record, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}
	c.closeDialogLocked()
	c.dialog = DialogEdit
	c.editing = &record
	c.errMsg = ""
	c.mu.Unlock()

	c.notify()
	return nil
}

// CloseForm dismisses an open create or edit form and clears the error message.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	if c.dialog == DialogCreate || c.dialog == DialogEdit {
		c.closeDialogLocked()
	}
	c.errMsg = ""
	c.mu.Unlock()

	c.notify()
}

// Submit sends the candidate through whichever form is open.
//
// The candidate is checked against the store first; a static or duplicate failure leaves the form open and
// sends nothing.
func (c *Controller) Submit(ctx context.Context, candidate models.Candidate) error {
	c.mu.Lock()
	dialog := c.dialog
	var excludeID *int
	if c.editing != nil {
		excludeID = c.editing.ID
	}
	existing := slices.Clone(c.records)
	c.mu.Unlock()

	if dialog != DialogCreate && dialog != DialogEdit {
		return fmt.Errorf("%w: no form is open", shared.ErrNoDialog)
	}
	if errs := roster.ValidateCandidate(candidate); len(errs) > 0 {
		return fmt.Errorf("%w: %d invalid fields", shared.ErrValidation, len(errs))
	}
	if report := roster.CheckDuplicates(candidate, existing, excludeID); !report.Empty() {
		return fmt.Errorf("%w: %s", shared.ErrDuplicate, report.Summary())
	}

	if dialog == DialogCreate {
		return c.Add(ctx, candidate)
	}
	return c.Edit(ctx, *excludeID, candidate)
}

// MarkDelete opens the delete confirmation for a stored record and subscribes it to the cancel signal.
func (c *Controller) MarkDelete(id int) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	record, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}
	c.closeDialogLocked()
	c.dialog = DialogConfirmDelete
	c.pending = &record
	c.releaseEsc = c.signals.Subscribe(c.CancelDelete)
	c.mu.Unlock()

	c.notify()
	return nil
}

// CancelDelete dismisses the delete confirmation. The store and display are left as they were.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	if c.dialog != DialogConfirmDelete || c.submitting {
		c.mu.Unlock()
		return
	}
	c.closeDialogLocked()
	c.mu.Unlock()

	c.notify()
}

// ConfirmDelete removes the record awaiting confirmation.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.dialog != DialogConfirmDelete || c.pending == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: nothing is marked for deletion", shared.ErrNoDialog)
	}
	id := c.pending.SortKey()
	c.mu.Unlock()

	return c.Remove(ctx, id)
}

// SetSearch changes the search term and returns to the first page.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.display.Search = term
	c.display.Page = 1
	c.mu.Unlock()

	c.notify()
}

// ClearSearch empties the search term.
func (c *Controller) ClearSearch() { c.SetSearch("") }

// SetSort changes the sort order and returns to the first page.
func (c *Controller) SetSort(order roster.SortOrder) {
	c.mu.Lock()
	c.display.Order = order
	c.display.Page = 1
	c.mu.Unlock()

	c.notify()
}

// ToggleSort flips between newest and oldest first.
func (c *Controller) ToggleSort() {
	c.mu.Lock()
	order := c.display.Order.Toggle()
	c.mu.Unlock()

	c.SetSort(order)
}

// GoToPage moves to page and reports whether it was in range. Out of range targets are ignored.
func (c *Controller) GoToPage(page int) bool {
	c.mu.Lock()
	v := c.viewLocked()
	if page < 1 || page > v.TotalPages {
		c.mu.Unlock()
		return false
	}
	c.display.Page = page
	c.mu.Unlock()

	c.notify()
	return true
}

func (c *Controller) NextPage() bool { return c.GoToPage(c.View().Page + 1) }

func (c *Controller) PreviousPage() bool { return c.GoToPage(c.View().Page - 1) }

// View derives the visible page from the current store and display settings.
func (c *Controller) View() roster.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// PageWindow returns the page numbers to show in the pager.
func (c *Controller) PageWindow() []int {
	v := c.View()
	return roster.PageWindow(v.TotalPages, v.Page)
}

// Records returns a copy of the store in service order.
func (c *Controller) Records() []models.Employee {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// mutate runs one remote mutation followed by a full refresh, guarding against overlapping calls.
func (c *Controller) mutate(ctx context.Context, phase Phase, name, failure string, call func(context.Context) error) error {
	if c.svc == nil {
		return fmt.Errorf("%w: employee service not configured", shared.ErrServiceUnavailable)
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return fmt.Errorf("%w: another change is still in flight", shared.ErrBusy)
	}
	c.submitting = true
	c.loading = true
	c.mu.Unlock()

	sendProgress(c.progress, mutationUpdate(phase, name))
	c.notify()

	if err := call(ctx); err != nil {
		c.logger.Error("mutation failed", "phase", phase, "error", err)
		c.fail(failure)
		return fmt.Errorf("%s failed: %w", phase, err)
	}

	if err := c.reload(ctx); err != nil {
		c.fail(MsgLoadFailed)
		return fmt.Errorf("failed to load employees: %w", err)
	}

	c.mu.Lock()
	c.submitting = false
	c.loading = false
	c.errMsg = ""
	c.closeDialogLocked()
	c.mu.Unlock()

	c.logger.Info("mutation applied", "phase", phase, "name", name)
	c.notify()
	return nil
}

// reload fetches the store and swaps it in. The page is clamped so it never points past the new end.
func (c *Controller) reload(ctx context.Context) error {
	c.mu.Lock()
	c.reloadGen++
	gen := c.reloadGen
	c.mu.Unlock()

	sendProgress(c.progress, fetchingEmployeesUpdate())

	records, err := c.svc.ListAll(ctx)
	if err != nil {
		c.logger.Error("failed to load employees", "error", err)
		return err
	}

	c.mu.Lock()
	if applied := c.appliedGen; gen < applied {
		c.mu.Unlock()
		c.logger.Debug("dropped stale employee list", "generation", gen, "applied", applied)
		return nil
	}
	c.appliedGen = gen
	c.records = records
	c.display.Page = c.viewLocked().Page
	c.mu.Unlock()

	c.logger.Debug("refreshed employees", "count", len(records))
	sendProgress(c.progress, fetchedEmployeesUpdate(len(records)))
	return nil
}

// fail returns the controller to a stable state after a remote error. The store is not touched.
func (c *Controller) fail(message string) {
	c.mu.Lock()
	c.submitting = false
	c.loading = false
	c.errMsg = message
	c.closeDialogLocked()
	c.mu.Unlock()

	sendProgress(c.progress, failedUpdate(message))
	c.notify()
}

func (c *Controller) closeDialogLocked() {
	c.dialog = DialogNone
	c.editing = nil
	c.pending = nil
	if c.releaseEsc != nil {
		c.releaseEsc()
		c.releaseEsc = nil
	}
}

func (c *Controller) findLocked(id int) (models.Employee, bool) {
	for _, r := range c.records {
		if r.Same(&id) {
			return r, true
		}
	}
	return models.Employee{}, false
}

func (c *Controller) viewLocked() roster.View {
	return roster.DeriveView(c.records, c.display.Search, c.display.Order, c.display.Page, c.pageSize)
}

func (c *Controller) stateLocked() State {
	v := c.viewLocked()
	return State{
		Loading:       c.loading,
		Submitting:    c.submitting,
		Error:         c.errMsg,
		Dialog:        c.dialog,
		Editing:       c.editing,
		PendingDelete: c.pending,
		Display:       c.display,
		View:          v,
		Window:        roster.PageWindow(v.TotalPages, v.Page),
		Count:         len(c.records),
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.State())
}
