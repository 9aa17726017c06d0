package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func newEmployeeServer(t *testing.T, handler http.HandlerFunc) *HTTPEmployeeService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPEmployeeService(NewAPIService(server.URL, nil, WithRetries(0)))
}

func TestHTTPEmployeeService(t *testing.T) {
	ctx := context.Background()

	t.Run("ListAll", func(t *testing.T) {
		t.Run("Decodes Employees", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/Employees/getAllEmployees" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(`[{"empId":1,"empName":"Ann","empEmail":"a@x.com","empAddress":"1 Road","empPhone":"111"}]`))
			})

			got, err := srv.ListAll(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []models.Employee{{ID: models.IntPtr(1), Name: "Ann", Email: "a@x.com", Address: "1 Road", Phone: "111"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ListAll() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("Null Body Is Empty List", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`null`))
			})

			got, err := srv.ListAll(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", got)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			})

			_, err := srv.ListAll(ctx)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "Error Code: 500") {
				t.Errorf("expected status code in error, got %v", err)
			}
		})

		t.Run("Undecodable Body", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"a list"}`))
			})

			if _, err := srv.ListAll(ctx); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("GetByID", func(t *testing.T) {
		t.Run("Found", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/Employees/getEmpByID/7" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(`{"empId":7,"empName":"Gus"}`))
			})

			got, err := srv.GetByID(ctx, 7)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.SortKey() != 7 || got.Name != "Gus" {
				t.Errorf("unexpected employee %+v", got)
			}
		})

		t.Run("Not Found", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			if _, err := srv.GetByID(ctx, 7); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Posts Candidate Without ID", func(t *testing.T) {
			var body map[string]any
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/Employees/addEmployee" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				json.NewDecoder(r.Body).Decode(&body)
				w.WriteHeader(http.StatusOK)
			})

			c := models.Candidate{ID: models.IntPtr(99), Name: "Ann", Email: "a@x.com", Address: "1 Road", Phone: "111"}
			if err := srv.Create(ctx, c); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, ok := body["empId"]; ok {
				t.Errorf("expected empId to be omitted, got %v", body)
			}
			if body["empName"] != "Ann" {
				t.Errorf("expected empName 'Ann', got %v", body["empName"])
			}
		})

		t.Run("Unreachable Service", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			url := server.URL
			server.Close()

			srv := NewHTTPEmployeeService(NewAPIService(url, nil, WithRetries(0)))
			if err := srv.Create(ctx, models.Candidate{Name: "Ann"}); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("Posts Candidate With ID", func(t *testing.T) {
			var body map[string]any
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/Employees/editEmployee" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				json.NewDecoder(r.Body).Decode(&body)
			})

			if err := srv.Update(ctx, models.Candidate{ID: models.IntPtr(5), Name: "Eve"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body["empId"] != float64(5) {
				t.Errorf("expected empId 5, got %v", body["empId"])
			}
		})

		t.Run("Requires ID", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("expected no request to be sent")
			})

			if err := srv.Update(ctx, models.Candidate{Name: "Eve"}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("DeleteByID", func(t *testing.T) {
		t.Run("Uses GET Route", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/api/Employees/deleteEmpByID/3" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
			})

			if err := srv.DeleteByID(ctx, 3); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Bad Request", func(t *testing.T) {
			srv := newEmployeeServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			})

			if err := srv.DeleteByID(ctx, 3); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}
