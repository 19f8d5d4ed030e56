package tenants

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. Schedule fields come from
// tenant_units_view so Go and SQL agree on the day math.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new tenant.
func (r *PGRepo) Create(ctx context.Context, t Tenant) error {
	const query = `
INSERT INTO tenants (
    id,
    unit_id,
    full_name,
    email,
    phone_number,
    rent_due_date,
    yearly_rent_amount,
    reminder_status,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	status := t.ReminderStatus
	if status == "" {
		status = ReminderActive
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		t.ID,
		nullString(t.UnitID),
		t.FullName,
		t.Email,
		nullString(t.PhoneNumber),
		t.RentDueDate,
		nullFloat(t.YearlyRentAmount),
		status,
		t.CreatedAt,
	)
	return err
}

// GetByID fetches a tenant by ID.
func (r *PGRepo) GetByID(ctx context.Context, tenantID string) (Tenant, error) {
	const query = `
SELECT id, unit_id, full_name, email, phone_number, rent_due_date, yearly_rent_amount, reminder_status, created_at
FROM tenants
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, tenantID)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tenant{}, ErrNotFound
		}
		return Tenant{}, err
	}
	return t, nil
}

// List returns all tenants ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]Tenant, error) {
	const query = `
SELECT id, unit_id, full_name, email, phone_number, rent_due_date, yearly_rent_amount, reminder_status, created_at
FROM tenants
ORDER BY full_name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update overwrites the mutable tenant fields.
func (r *PGRepo) Update(ctx context.Context, t Tenant) error {
	const query = `
UPDATE tenants
SET unit_id = $1,
    full_name = $2,
    email = $3,
    phone_number = $4,
    rent_due_date = $5,
    yearly_rent_amount = $6,
    reminder_status = $7
WHERE id = $8`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		nullString(t.UnitID),
		t.FullName,
		t.Email,
		nullString(t.PhoneNumber),
		t.RentDueDate,
		nullFloat(t.YearlyRentAmount),
		t.ReminderStatus,
		t.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tenant row.
func (r *PGRepo) Delete(ctx context.Context, tenantID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUnitView fetches the joined tenant row with derived schedule fields.
func (r *PGRepo) GetUnitView(ctx context.Context, tenantID string) (TenantUnit, error) {
	const query = `
SELECT tenant_id, full_name, email, phone_number, rent_due_date, reminder_status,
       unit_id, unit_number, unit_status,
       property_id, property_name, property_address,
       days_until_due, payment_status
FROM tenant_units_view
WHERE tenant_id = $1
LIMIT 1`

	var tu TenantUnit
	var phone, unitID, unitNumber, unitStatus, propertyID, propertyName, propertyAddress sql.NullString
	err := r.DB.QueryRowContext(ctx, query, tenantID).Scan(
		&tu.TenantID,
		&tu.FullName,
		&tu.Email,
		&phone,
		&tu.RentDueDate,
		&tu.ReminderStatus,
		&unitID,
		&unitNumber,
		&unitStatus,
		&propertyID,
		&propertyName,
		&propertyAddress,
		&tu.DaysUntilDue,
		&tu.PaymentStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TenantUnit{}, ErrNotFound
		}
		return TenantUnit{}, err
	}
	tu.PhoneNumber = phone.String
	tu.UnitID = unitID.String
	tu.UnitNumber = unitNumber.String
	tu.UnitStatus = unitStatus.String
	tu.PropertyID = propertyID.String
	tu.PropertyName = propertyName.String
	tu.PropertyAddress = propertyAddress.String
	return tu, nil
}

// ListNeedingReminders returns active tenants sitting exactly on a notice
// threshold today.
func (r *PGRepo) ListNeedingReminders(ctx context.Context) ([]Reminder, error) {
	const query = `
SELECT tenant_id, full_name, email, phone_number, unit_number, property_name, property_address,
       rent_due_date, days_until_due,
       CASE days_until_due
           WHEN 30 THEN '30_day_reminder'
           WHEN 7 THEN '7_day_urgent'
           WHEN 1 THEN '1_day_final'
       END AS notice_type
FROM tenant_units_view
WHERE reminder_status = 'active'
  AND days_until_due IN (30, 7, 1)
ORDER BY days_until_due, full_name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var rem Reminder
		var phone, unitNumber, propertyName, propertyAddress sql.NullString
		if err := rows.Scan(
			&rem.TenantID,
			&rem.FullName,
			&rem.Email,
			&phone,
			&unitNumber,
			&propertyName,
			&propertyAddress,
			&rem.RentDueDate,
			&rem.DaysUntilDue,
			&rem.NoticeType,
		); err != nil {
			return nil, err
		}
		rem.PhoneNumber = phone.String
		rem.UnitNumber = unitNumber.String
		rem.PropertyName = propertyName.String
		rem.PropertyAddress = propertyAddress.String
		out = append(out, rem)
	}
	return out, rows.Err()
}

func scanTenant(row interface{ Scan(dest ...any) error }) (Tenant, error) {
	var t Tenant
	var unitID, phone sql.NullString
	var amount sql.NullFloat64
	err := row.Scan(
		&t.ID,
		&unitID,
		&t.FullName,
		&t.Email,
		&phone,
		&t.RentDueDate,
		&amount,
		&t.ReminderStatus,
		&t.CreatedAt,
	)
	if err != nil {
		return Tenant{}, err
	}
	t.UnitID = unitID.String
	t.PhoneNumber = phone.String
	t.YearlyRentAmount = amount.Float64
	return t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
