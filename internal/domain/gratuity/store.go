package gratuity

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

func (s *Store) SaveCalculation(ctx context.Context, record Record, entry HistoryEntry) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    INSERT INTO employee_gratuity (employee_id, gratuity_amount, years_of_service, daily_wage, basic_salary, calculation_date, last_updated)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (employee_id) DO UPDATE SET
      gratuity_amount = EXCLUDED.gratuity_amount,
      years_of_service = EXCLUDED.years_of_service,
      daily_wage = EXCLUDED.daily_wage,
      basic_salary = EXCLUDED.basic_salary,
      calculation_date = EXCLUDED.calculation_date,
      last_updated = EXCLUDED.last_updated
  `, record.EmployeeID, record.Amount, record.YearsOfService, record.DailyWage, record.BasicSalary,
		record.CalculationDate, record.LastUpdated); err != nil {
		return err
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertHistory(ctx context.Context, tx pgx.Tx, entry HistoryEntry) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO gratuity_history
      (id, employee_id, gratuity_amount, years_of_service, daily_wage, basic_salary,
       calculation_date, calculation_type, notes, created_by, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  `, entry.ID, entry.EmployeeID, entry.Amount, entry.YearsOfService, entry.DailyWage, entry.BasicSalary,
		entry.CalculationDate, entry.CalculationType, nullIfEmpty(entry.Notes), nullIfEmpty(entry.CreatedBy), entry.CreatedAt)
	return err
}

func (s *Store) GetCurrent(ctx context.Context, employeeID string) (Record, error) {
	var record Record
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, gratuity_amount, years_of_service, daily_wage, basic_salary, calculation_date, last_updated
    FROM employee_gratuity
    WHERE employee_id = $1
  `, employeeID).Scan(&record.EmployeeID, &record.Amount, &record.YearsOfService, &record.DailyWage,
		&record.BasicSalary, &record.CalculationDate, &record.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return record, err
}

func (s *Store) ListHistory(ctx context.Context, employeeID string, limit int) ([]HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, gratuity_amount, years_of_service, daily_wage, basic_salary,
           calculation_date, calculation_type, COALESCE(notes, ''), COALESCE(created_by, ''), created_at
    FROM gratuity_history
    WHERE employee_id = $1
    ORDER BY calculation_date DESC, created_at DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Amount, &entry.YearsOfService, &entry.DailyWage,
			&entry.BasicSalary, &entry.CalculationDate, &entry.CalculationType, &entry.Notes, &entry.CreatedBy,
			&entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) CreateSettlement(ctx context.Context, settlement Settlement, entry HistoryEntry) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    INSERT INTO gratuity_settlements
      (id, employee_id, total_gratuity_amount, years_of_service, final_basic_salary, settlement_date,
       payment_status, approved_by, approved_at, notes, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, settlement.ID, settlement.EmployeeID, settlement.TotalAmount, settlement.YearsOfService, settlement.FinalBasicSalary,
		settlement.SettlementDate, settlement.PaymentStatus, nullIfEmpty(settlement.ApprovedBy), settlement.ApprovedAt,
		nullIfEmpty(settlement.Notes), settlement.CreatedAt, settlement.UpdatedAt); err != nil {
		return err
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const settlementColumns = `id, employee_id, total_gratuity_amount, years_of_service, final_basic_salary, settlement_date,
           payment_status, COALESCE(approved_by, ''), approved_at, payment_date, COALESCE(payment_method, ''),
           COALESCE(payment_reference, ''), COALESCE(notes, ''), created_at, updated_at`

func scanSettlement(row pgx.Row) (Settlement, error) {
	var st Settlement
	err := row.Scan(&st.ID, &st.EmployeeID, &st.TotalAmount, &st.YearsOfService, &st.FinalBasicSalary, &st.SettlementDate,
		&st.PaymentStatus, &st.ApprovedBy, &st.ApprovedAt, &st.PaymentDate, &st.PaymentMethod, &st.PaymentReference,
		&st.Notes, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

func (s *Store) GetSettlement(ctx context.Context, settlementID string) (Settlement, error) {
	st, err := scanSettlement(s.DB.QueryRow(ctx, `
    SELECT `+settlementColumns+`
    FROM gratuity_settlements
    WHERE id = $1
  `, settlementID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Settlement{}, ErrSettlementNotFound
	}
	return st, err
}

func (s *Store) ListSettlements(ctx context.Context, employeeID string) ([]Settlement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+settlementColumns+`
    FROM gratuity_settlements
    WHERE employee_id = $1
    ORDER BY settlement_date DESC, created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Settlement
	for rows.Next() {
		st, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSettlementPayment(ctx context.Context, settlementID, status string, details PaymentDetails) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE gratuity_settlements
    SET payment_status = $2,
        payment_date = COALESCE($3, payment_date),
        payment_method = COALESCE($4, payment_method),
        payment_reference = COALESCE($5, payment_reference),
        updated_at = now()
    WHERE id = $1
  `, settlementID, status, details.PaymentDate, nullIfEmpty(details.PaymentMethod), nullIfEmpty(details.PaymentReference))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSettlementNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
