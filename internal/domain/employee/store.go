package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeColumns = `id, name, email, department, role, location, nationality, status, join_date,
           basic_salary, housing_allowance, transport_allowance, other_allowances`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Role, &emp.Location, &emp.Nationality,
		&emp.Status, &emp.JoinDate, &emp.BasicSalary, &emp.HousingAllowance, &emp.TransportAllowance, &emp.OtherAllowances)
	return emp, err
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	return s.list(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY id
  `)
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	return s.list(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE status IN ($1, $2)
    ORDER BY id
  `, StatusActive, StatusNoticePeriod)
}

func (s *Store) list(ctx context.Context, sql string, args ...any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Upsert(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, name, email, department, role, location, nationality, status, join_date,
                           basic_salary, housing_allowance, transport_allowance, other_allowances)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    ON CONFLICT (id) DO UPDATE SET
      name = EXCLUDED.name,
      email = EXCLUDED.email,
      department = EXCLUDED.department,
      role = EXCLUDED.role,
      location = EXCLUDED.location,
      nationality = EXCLUDED.nationality,
      status = EXCLUDED.status,
      join_date = EXCLUDED.join_date,
      basic_salary = EXCLUDED.basic_salary,
      housing_allowance = EXCLUDED.housing_allowance,
      transport_allowance = EXCLUDED.transport_allowance,
      other_allowances = EXCLUDED.other_allowances,
      updated_at = now()
  `, emp.ID, emp.Name, emp.Email, emp.Department, emp.Role, emp.Location, emp.Nationality, emp.Status, emp.JoinDate,
		emp.BasicSalary, emp.HousingAllowance, emp.TransportAllowance, emp.OtherAllowances)
	return err
}
