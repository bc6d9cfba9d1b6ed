package cancellation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/DS-ScheduleService/pkg/txmanager"
)

var requestColumns = []string{
	"id",
	"slot_id",
	"instructor_id",
	"student_id",
	"request_date",
	"reason",
	"status",
	"processed_at",
	"processed_by",
	"admin_comment",
	"refund_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий запросов на отмену занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на отмену
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый запрос на отмену в статусе pending
func (r *Repository) Create(ctx context.Context, req *domain.CancellationRequest) (*domain.CancellationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("cancellation_requests").
		Columns(
			"id",
			"slot_id",
			"instructor_id",
			"student_id",
			"request_date",
			"reason",
			"status",
		).
		Values(
			req.ID,
			req.SlotID,
			req.InstructorID,
			req.StudentID,
			req.RequestDate,
			req.Reason,
			req.Status,
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

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает запрос на отмену по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CancellationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("cancellation_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListByInstructor получает запросы на отмену инструктора,
// опционально фильтруя по статусу
func (r *Repository) ListByInstructor(ctx context.Context, instructorID int64, status *domain.CancellationStatus) ([]*domain.CancellationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(requestColumns...).
		From("cancellation_requests").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("request_date DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var requests []*domain.CancellationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByInstructor - scan: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - rows error: %v", ErrExecQuery, err)
	}

	return requests, nil
}

// Process переводит запрос в терминальный статус и сохраняет решение инструктора
func (r *Repository) Process(ctx context.Context, req *domain.CancellationRequest) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cancellation_requests").
		Set("status", req.Status).
		Set("processed_at", req.ProcessedAt).
		Set("processed_by", req.ProcessedBy).
		Set("admin_comment", req.AdminComment).
		Set("refund_amount", req.RefundAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Where(squirrel.Eq{"status": domain.CancellationPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Process - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Process - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Process - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		// Запрос не существует или уже обработан
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.CancellationRequest, error) {
	var req domain.CancellationRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.SlotID,
		&req.InstructorID,
		&req.StudentID,
		&req.RequestDate,
		&req.Reason,
		&req.Status,
		&req.ProcessedAt,
		&req.ProcessedBy,
		&req.AdminComment,
		&req.RefundAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}
