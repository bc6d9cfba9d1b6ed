package template

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

var templateColumns = []string{
	"id",
	"instructor_id",
	"name",
	"week",
	"is_default",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов расписания.
// Недельная конфигурация шаблона сериализуется в JSONB.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый шаблон
func (r *Repository) Create(ctx context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	weekJSON, err := json.Marshal(t.Week)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode week: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_templates").
		Columns(
			"id",
			"instructor_id",
			"name",
			"week",
			"is_default",
		).
		Values(
			t.ID,
			t.InstructorID,
			t.Name,
			weekJSON,
			t.IsDefault,
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

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return t, nil
}

// ListByInstructor получает все шаблоны инструктора
func (r *Repository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.ScheduleTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var templates []*domain.ScheduleTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByInstructor - scan: %v", ErrScanRow, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - rows error: %v", ErrExecQuery, err)
	}

	return templates, nil
}

// ClearDefault снимает флаг default со всех шаблонов инструктора
func (r *Repository) ClearDefault(ctx context.Context, instructorID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_templates").
		Set("is_default", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"is_default": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearDefault - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDefault - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// SetDefault помечает шаблон как шаблон по умолчанию
func (r *Repository) SetDefault(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_templates").
		Set("is_default", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDefault - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDefault - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetDefault - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Delete удаляет шаблон
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_templates").
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
		return ErrTemplateNotFound
	}

	return nil
}

// DeleteByInstructor удаляет все шаблоны инструктора.
// Используется только при полном импорте расписания.
func (r *Repository) DeleteByInstructor(ctx context.Context, instructorID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_templates").
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

func scanTemplate(row rowScanner) (*domain.ScheduleTemplate, error) {
	var t domain.ScheduleTemplate
	var weekJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.InstructorID,
		&t.Name,
		&weekJSON,
		&t.IsDefault,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(weekJSON, &t.Week); err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
