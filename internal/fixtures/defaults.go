package fixtures

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

// ==========================================
// DEFAULT ROSTER
// ==========================================

// GetDefaultEmployees returns the roster a fresh store starts with.
// Employees created later get generated ids; these keep short numeric ones.
func GetDefaultEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: "1", Name: "João Silva"},
		{ID: "2", Name: "Maria Santos"},
		{ID: "3", Name: "Pedro Costa"},
		{ID: "4", Name: "Ana Oliveira"},
		{ID: "5", Name: "Carlos Souza"},
	}
}
