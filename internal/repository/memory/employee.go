package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees []employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{}
}

func (r *employeeRepository) indexOf(id string) int {
	return slices.IndexFunc(r.employees, func(e employee.Employee) bool { return e.ID == id })
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(r.employees[i]), nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, cloneEmployee(e))
	}
	return result, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(newEmployee.ID) >= 0 {
		return employee.Employee{}, employee.ErrEmployeeExists
	}
	r.employees = append(r.employees, cloneEmployee(newEmployee))
	return cloneEmployee(newEmployee), nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(e.ID)
	if i < 0 {
		return employee.ErrEmployeeNotFound
	}
	r.employees[i] = cloneEmployee(e)
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return employee.ErrEmployeeNotFound
	}
	r.employees = slices.Delete(r.employees, i, i+1)
	return nil
}

// ReplaceAll implements employee.EmployeeRepository.
func (r *employeeRepository) ReplaceAll(ctx context.Context, employees []employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.employees = make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		r.employees = append(r.employees, cloneEmployee(e))
	}
	return nil
}

func cloneEmployee(e employee.Employee) employee.Employee {
	if e.WorkSchedule != nil {
		s := *e.WorkSchedule
		s.WorkDays = slices.Clone(e.WorkSchedule.WorkDays)
		e.WorkSchedule = &s
	}
	return e
}
