package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/shared"
)

const employeesPath string = "/api/Employees"

// HTTPEmployeeService implements [EmployeeService] over the roster service's JSON API.
type HTTPEmployeeService struct {
	api *APIService
}

// NewHTTPEmployeeService wraps an [APIService] with typed roster operations.
func NewHTTPEmployeeService(api *APIService) *HTTPEmployeeService {
	return &HTTPEmployeeService{api: api}
}

func (s *HTTPEmployeeService) ListAll(ctx context.Context) ([]models.Employee, error) {
	resp, err := s.api.Get(ctx, employeesPath+"/getAllEmployees")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	var employees []models.Employee
	if err := json.Unmarshal(resp.Body, &employees); err != nil {
		return nil, fmt.Errorf("%w: failed to decode employees: %v", shared.ErrAPIRequest, err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (s *HTTPEmployeeService) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("%s/getEmpByID/%d", employeesPath, id))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	var employee models.Employee
	if err := json.Unmarshal(resp.Body, &employee); err != nil {
		return nil, fmt.Errorf("%w: failed to decode employee: %v", shared.ErrAPIRequest, err)
	}
	return &employee, nil
}

func (s *HTTPEmployeeService) Create(ctx context.Context, c models.Candidate) error {
	data, err := json.Marshal(c.WithoutID())
	if err != nil {
		return fmt.Errorf("failed to encode employee: %w", err)
	}

	resp, err := s.api.Post(ctx, employeesPath+"/addEmployee", data)
	return checkResponse(resp, err)
}

func (s *HTTPEmployeeService) Update(ctx context.Context, c models.Candidate) error {
	if !c.IsEdit() {
		return fmt.Errorf("%w: update requires an employee id", shared.ErrInvalidInput)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode employee: %w", err)
	}

	resp, err := s.api.Post(ctx, employeesPath+"/editEmployee", data)
	return checkResponse(resp, err)
}

func (s *HTTPEmployeeService) DeleteByID(ctx context.Context, id int) error {
	resp, err := s.api.Get(ctx, fmt.Sprintf("%s/deleteEmpByID/%d", employeesPath, id))
	return checkResponse(resp, err)
}

// checkResponse maps transport failures and non-2xx statuses onto the shared sentinels.
func checkResponse(resp *APIResponse, err error) error {
	switch {
	case err != nil:
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: Error Code: %d", shared.ErrNotFound, resp.StatusCode)
	case !resp.OK():
		return fmt.Errorf("%w: Error Code: %d\nMessage: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	default:
		return nil
	}
}
