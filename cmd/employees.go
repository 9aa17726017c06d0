package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/emx/internal/formatter"
	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/desertthunder/emx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// listOutput is the JSON shape of one listed page.
type listOutput struct {
	Records    []models.Employee `json:"records"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
	Pages      []int             `json:"pages"`
}

// checkOutput is the JSON shape of a check result, keyed by field label.
type checkOutput struct {
	Errors     map[string]string `json:"errors"`
	Duplicates map[string]string `json:"duplicates"`
}

// ListEmployees prints one page of the filtered, sorted roster.
func (r *Runner) ListEmployees(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	svc, err := r.service()
	if err != nil {
		return err
	}
	order, err := r.sortOrder(cmd.String("sort"))
	if err != nil {
		return err
	}
	pageSize := int(cmd.Int("page-size"))
	if pageSize < 1 {
		pageSize = r.config.View.PageSize
	}

	records, err := svc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgLoadFailed, err)
	}

	view := roster.DeriveView(records, cmd.String("search"), order, int(cmd.Int("page")), pageSize)
	window := roster.PageWindow(view.TotalPages, view.Page)
	r.logger.Debug("listed employees", "total", view.Total, "page", view.Page, "order", order)

	if useJSON {
		return r.writeJSON(listOutput{
			Records:    view.Records,
			Page:       view.Page,
			TotalPages: view.TotalPages,
			Total:      view.Total,
			Pages:      window,
		}, pretty)
	}

	if view.Total == 0 {
		return r.writePlain("No employees found.\n")
	}

	text, err := formatter.ExportToText(view.Records)
	if err != nil {
		return err
	}
	if err := r.writePlain("%s", text); err != nil {
		return err
	}
	return r.writePlain("Page %d of %d (%d matching, pages %s)\n", view.Page, view.TotalPages, view.Total, joinInts(window))
}

// GetEmployees fetches each id concurrently and prints the records that were found.
func (r *Runner) GetEmployees(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one employee id", shared.ErrMissingArgument)
	}
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	prog, done := r.drainProgress()
	result, err := tasks.BulkFetch(ctx, prog, svc, ids, tasks.BulkFetchOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  r.config.Remote.RateLimit,
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result.Employees, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Employees (%d requested)", len(ids)))
	for _, res := range result.Results {
		switch {
		case res.Error == nil:
			e := res.Employee
			r.writePlain("%d\t%s\t%s\t%s\t%s\n", res.ID, e.Name, e.Email, e.Address, e.Phone)
		case errors.Is(res.Error, shared.ErrNotFound):
			r.writePlain("%d\tnot found\n", res.ID)
		default:
			r.writePlain("%d\terror: %v\n", res.ID, res.Error)
		}
	}
	r.writePlainln("Found %d of %d", result.Found, len(ids))

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d lookups failed", shared.ErrAPIRequest, result.Failed)
	}
	return nil
}

// AddEmployee validates a new record, checks it against the roster for duplicates, and creates it.
func (r *Runner) AddEmployee(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}

	candidate := r.candidateFromFlags(cmd, models.Candidate{})
	if err := r.preflight(ctx, candidate); err != nil {
		return err
	}

	if err := svc.Create(ctx, candidate); err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgAddFailed, err)
	}

	records, err := svc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("employee added but the roster could not be reloaded: %w", err)
	}
	created, ok := findCreated(records, candidate)
	if !ok {
		return fmt.Errorf("%w: added employee %q is missing from the roster", shared.ErrNotFound, candidate.Email)
	}
	r.logger.Info("employee added", "id", created.SortKey(), "name", created.Name)

	if cmd.Bool("json") {
		return r.writeJSON(created, cmd.Bool("pretty"))
	}
	return r.writePlain("✓ Added %s (id %d)\n", created.Name, created.SortKey())
}

// EditEmployee overlays the given flags onto an existing record and saves it.
func (r *Runner) EditEmployee(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	svc, err := r.service()
	if err != nil {
		return err
	}

	existing, err := svc.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load employee %d: %w", id, err)
	}

	candidate := r.candidateFromFlags(cmd, existing.Candidate())
	candidate.ID = models.IntPtr(id)
	if err := r.preflight(ctx, candidate); err != nil {
		return err
	}

	if err := svc.Update(ctx, candidate); err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgUpdateFailed, err)
	}

	stored, err := svc.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("employee %d updated but could not be reloaded: %w", id, err)
	}
	r.logger.Info("employee updated", "id", id)

	if cmd.Bool("json") {
		return r.writeJSON(stored, cmd.Bool("pretty"))
	}
	return r.writePlain("✓ Updated %d (%s)\n", id, stored.Name)
}

// DeleteEmployee removes a record after confirmation.
func (r *Runner) DeleteEmployee(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	svc, err := r.service()
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		existing, err := svc.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load employee %d: %w", id, err)
		}
		if !r.confirm(fmt.Sprintf("Delete %s (%s)? [y/N] ", existing.Name, existing.Email)) {
			return r.writePlain("Cancelled\n")
		}
	}

	if err := svc.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgDeleteFailed, err)
	}
	r.logger.Info("employee deleted", "id", id)
	return r.writePlain("✓ Deleted %d\n", id)
}

// CheckEmployee prints validation and duplicate findings for a record without saving it.
func (r *Runner) CheckEmployee(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}

	var exclude *int
	if raw := cmd.String("exclude"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return err
		}
		exclude = models.IntPtr(id)
	}

	candidate := r.candidateFromFlags(cmd, models.Candidate{})
	records, err := svc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgLoadFailed, err)
	}

	static := roster.ValidateCandidate(candidate)
	report := roster.CheckDuplicates(candidate, records, exclude)

	if cmd.Bool("json") {
		out := checkOutput{Errors: map[string]string{}, Duplicates: map[string]string{}}
		for f, msg := range static {
			out.Errors[f.Label()] = msg
		}
		for f, msg := range report {
			out.Duplicates[f.Label()] = msg
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(static) == 0 && report.Empty() {
		return r.writePlain("✓ No problems found\n")
	}
	for _, f := range roster.Fields {
		if msg, ok := static[f]; ok {
			r.writePlain("✗ %s: %s\n", f.Label(), msg)
		}
	}
	for _, f := range report.Fields() {
		r.writePlain("⚠ %s: %s\n", f.Label(), report[f])
	}
	return nil
}

// ExportEmployees writes every record matching the search to a file.
func (r *Runner) ExportEmployees(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	order, err := r.sortOrder(cmd.String("sort"))
	if err != nil {
		return err
	}

	prog, done := r.drainProgress()
	result, err := tasks.Export(ctx, prog, svc, tasks.ExportOpts{
		Format: format,
		Output: cmd.String("output"),
		Search: cmd.String("search"),
		Order:  order,
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	return r.writePlain("✓ Exported %d employees to %s\n", result.Count, result.Path)
}

// preflight runs the static rules and the duplicate check the form would run before submitting.
func (r *Runner) preflight(ctx context.Context, c models.Candidate) error {
	if errs := roster.ValidateCandidate(c); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, f := range roster.Fields {
			if msg, ok := errs[f]; ok {
				msgs = append(msgs, msg)
			}
		}
		return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(msgs, "; "))
	}

	records, err := r.svc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", tasks.MsgLoadFailed, err)
	}
	if report := roster.CheckDuplicates(c, records, c.ID); !report.Empty() {
		return fmt.Errorf("%w: already in use: %s", shared.ErrDuplicate, report.Summary())
	}
	return nil
}

// candidateFromFlags overlays every set record flag onto base.
func (r *Runner) candidateFromFlags(cmd *cli.Command, base models.Candidate) models.Candidate {
	for _, f := range roster.Fields {
		name := string(f)
		if cmd.IsSet(name) {
			base = f.Set(base, cmd.String(name))
		}
	}
	return base
}

func (r *Runner) sortOrder(flag string) (roster.SortOrder, error) {
	value := flag
	if value == "" {
		value = r.config.View.Sort
	}
	order, err := roster.ParseSortOrder(value)
	if err != nil {
		return order, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	return order, nil
}

// confirm prompts on the runner's output and reads a yes/no answer from its input.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s", prompt)
	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// drainProgress returns a progress channel whose updates are logged at debug level.
//
// The caller closes the channel and waits on done.
func (r *Runner) drainProgress() (chan tasks.ProgressUpdate, <-chan struct{}) {
	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()
	return prog, done
}

// findCreated picks the newest record whose email matches c. Emails are unique across the roster.
func findCreated(records []models.Employee, c models.Candidate) (models.Employee, bool) {
	var (
		found models.Employee
		ok    bool
	)
	for _, e := range records {
		if !strings.EqualFold(strings.TrimSpace(e.Email), strings.TrimSpace(c.Email)) {
			continue
		}
		if !ok || e.SortKey() > found.SortKey() {
			found, ok = e, true
		}
	}
	return found, ok
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
