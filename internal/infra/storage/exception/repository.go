package exception

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/DS-ScheduleService/pkg/txmanager"
)

var exceptionColumns = []string{
	"id",
	"instructor_id",
	"exception_type",
	"start_date",
	"end_date",
	"is_recurring",
	"recurring_pattern",
	"affected_slot_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий исключений расписания (отпуска, болезни, праздники)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое исключение
func (r *Repository) Create(ctx context.Context, e *domain.Exception) (*domain.Exception, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	affectedJSON, err := json.Marshal(e.AffectedSlotIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode affected slot ids: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("exceptions").
		Columns(
			"id",
			"instructor_id",
			"exception_type",
			"start_date",
			"end_date",
			"is_recurring",
			"recurring_pattern",
			"affected_slot_ids",
		).
		Values(
			e.ID,
			e.InstructorID,
			e.Type,
			e.StartDate,
			e.EndDate,
			e.IsRecurring,
			e.RecurringPattern,
			affectedJSON,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает исключение по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exception, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrExceptionNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return e, nil
}

// ListByInstructor получает все исключения инструктора
func (r *Repository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Exception, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("exceptions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var exceptions []*domain.Exception
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByInstructor - scan: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - rows error: %v", ErrExecQuery, err)
	}

	return exceptions, nil
}

// UpdateAffectedSlots сохраняет список слотов, затронутых исключением
func (r *Repository) UpdateAffectedSlots(ctx context.Context, id uuid.UUID, slotIDs []uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	affectedJSON, err := json.Marshal(slotIDs)
	if err != nil {
		return fmt.Errorf("%w: UpdateAffectedSlots - encode slot ids: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("exceptions").
		Set("affected_slot_ids", affectedJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAffectedSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAffectedSlots - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAffectedSlots - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// Delete удаляет исключение
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// DeleteByInstructor удаляет все исключения инструктора.
// Используется только при полном импорте расписания.
func (r *Repository) DeleteByInstructor(ctx context.Context, instructorID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("exceptions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByInstructor - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByInstructor - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.Exception, error) {
	var e domain.Exception
	var pattern sql.NullString
	var affectedJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.InstructorID,
		&e.Type,
		&e.StartDate,
		&e.EndDate,
		&e.IsRecurring,
		&pattern,
		&affectedJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pattern.Valid {
		p := domain.RecurrencePattern(pattern.String)
		e.RecurringPattern = &p
	}
	if len(affectedJSON) > 0 {
		if err := json.Unmarshal(affectedJSON, &e.AffectedSlotIDs); err != nil {
			return nil, err
		}
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
