package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/repositories"
	"github.com/desertthunder/emx/internal/services"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func newSandbox(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	srv := httptest.NewServer(NewSandboxRouter(repositories.NewEmployeeRepository(db), shared.DiscardLogger()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return srv
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(v)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Not Allowed", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if diff := cmp.Diff([]string{"first", "second", "handler"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestID Generates And Echoes", func(t *testing.T) {
		var seen string
		h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("expected generated id echoed, got ctx=%q header=%q", seen, rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("RequestID Reuses Caller ID", func(t *testing.T) {
		h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "abc" {
			t.Errorf("expected abc, got %q", got)
		}
	})

	t.Run("Recover", func(t *testing.T) {
		h := Recover(shared.DiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("Logging Records Status", func(t *testing.T) {
		var buf bytes.Buffer
		h := Logging(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))
		if out := buf.String(); !strings.Contains(out, "status=418") || !strings.Contains(out, "path=/tea") {
			t.Errorf("expected status and path in log, got %q", out)
		}
	})
}

func TestEmployeeHandler(t *testing.T) {
	valid := models.Candidate{Name: "Ann Lee", Email: "ann@x.com", Address: "1 Main Street", Phone: "555-0101"}

	t.Run("Add Then List", func(t *testing.T) {
		srv := newSandbox(t)

		resp := postJSON(t, srv.URL+"/api/Employees/addEmployee", valid)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var created models.Employee
		json.NewDecoder(resp.Body).Decode(&created)
		if created.SortKey() != 1 {
			t.Errorf("expected id 1, got %+v", created)
		}

		listResp, err := http.Get(srv.URL + "/api/Employees/getAllEmployees")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer listResp.Body.Close()

		var all []models.Employee
		json.NewDecoder(listResp.Body).Decode(&all)
		if len(all) != 1 || all[0].Email != "ann@x.com" {
			t.Errorf("unexpected list %+v", all)
		}
		if listResp.Header.Get(RequestIDHeader) == "" {
			t.Error("expected request id header")
		}
	})

	t.Run("Invalid Body", func(t *testing.T) {
		srv := newSandbox(t)

		resp := postJSON(t, srv.URL+"/api/Employees/addEmployee", models.Candidate{Name: "A"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}

		var body errorBody
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Fields["Email"] != "Email is required" {
			t.Errorf("expected field errors, got %+v", body)
		}
	})

	t.Run("Edit Requires ID", func(t *testing.T) {
		srv := newSandbox(t)

		resp := postJSON(t, srv.URL+"/api/Employees/editEmployee", valid)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Get Unknown And Bad IDs", func(t *testing.T) {
		srv := newSandbox(t)

		resp, err := http.Get(srv.URL + "/api/Employees/getEmpByID/9")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}

		resp, err = http.Get(srv.URL + "/api/Employees/getEmpByID/abc")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Client Round Trip", func(t *testing.T) {
		srv := newSandbox(t)
		ctx := context.Background()
		client := services.NewHTTPEmployeeService(services.NewAPIService(srv.URL, nil))

		if err := client.Create(ctx, valid); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		bob := models.Candidate{Name: "Bob Ray", Email: "bob@x.com", Address: "2 Main Street", Phone: "555-0102"}
		if err := client.Create(ctx, bob); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		bob.ID = models.IntPtr(2)
		bob.Phone = "555-0199"
		if err := client.Update(ctx, bob); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := client.GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Phone != "555-0199" {
			t.Errorf("expected updated phone, got %q", got.Phone)
		}

		if err := client.DeleteByID(ctx, 1); err != nil {
			t.Fatalf("DeleteByID failed: %v", err)
		}
		all, err := client.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(all) != 1 || all[0].SortKey() != 2 {
			t.Errorf("expected only employee 2, got %+v", all)
		}

		if err := client.DeleteByID(ctx, 1); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListenAndServe(t *testing.T) {
	t.Run("Stops On Cancel", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to reserve port: %v", err)
		}
		addr := l.Addr().String()
		l.Close()

		ctx, cancel := context.WithCancel(context.Background())
		ready := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- ListenAndServe(ctx, addr, http.NotFoundHandler(), shared.DiscardLogger(), ready)
		}()

		<-ready
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})
}
