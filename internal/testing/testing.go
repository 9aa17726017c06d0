// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/shared"
)

// FakeEmployeeService is an in-memory test double for [services.EmployeeService].
//
// Ids are assigned from a counter starting after the highest seeded id. Setting one of the Err fields makes the
// matching operation fail without touching the store. When Gate is non-nil, every operation blocks until it
// receives from Gate or the context is done.
type FakeEmployeeService struct {
	mu        sync.Mutex
	employees []models.Employee
	nextID    int

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	Gate      chan struct{}

	Calls map[string]int
}

// NewFakeEmployeeService seeds the fake with employees, in service order.
func NewFakeEmployeeService(seed ...models.Employee) *FakeEmployeeService {
	f := &FakeEmployeeService{Calls: map[string]int{}}
	for _, e := range seed {
		if e.SortKey() > f.nextID {
			f.nextID = e.SortKey()
		}
		f.employees = append(f.employees, e)
	}
	return f
}

// CallCount returns how many times op was invoked.
func (f *FakeEmployeeService) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[op]
}

// Employees returns a copy of the stored records.
func (f *FakeEmployeeService) Employees() []models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Employee(nil), f.employees...)
}

func (f *FakeEmployeeService) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.Calls[op]++
	gate := f.Gate
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeEmployeeService) ListAll(ctx context.Context) ([]models.Employee, error) {
	if err := f.enter(ctx, "ListAll"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.Employee{}, f.employees...), nil
}

func (f *FakeEmployeeService) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	if err := f.enter(ctx, "GetByID"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for _, e := range f.employees {
		if e.SortKey() == id && e.HasID() {
			found := e
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", shared.ErrNotFound, id)
}

func (f *FakeEmployeeService) Create(ctx context.Context, c models.Candidate) error {
	if err := f.enter(ctx, "Create"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.nextID++
	f.employees = append(f.employees, models.Employee{
		ID: models.IntPtr(f.nextID), Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone,
	})
	return nil
}

func (f *FakeEmployeeService) Update(ctx context.Context, c models.Candidate) error {
	if err := f.enter(ctx, "Update"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i, e := range f.employees {
		if e.Same(c.ID) {
			f.employees[i] = models.Employee{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone}
			return nil
		}
	}
	return fmt.Errorf("%w: %v", shared.ErrNotFound, c.ID)
}

func (f *FakeEmployeeService) DeleteByID(ctx context.Context, id int) error {
	if err := f.enter(ctx, "DeleteByID"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, e := range f.employees {
		if e.Same(&id) {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", shared.ErrNotFound, id)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
