package slot

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

var slotColumns = []string{
	"id",
	"instructor_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"student_id",
	"location",
	"notes",
	"payment_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один слот. Если ID не задан, генерируется новый uuid.
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"id",
			"instructor_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
			"student_id",
			"location",
			"notes",
			"payment_amount",
		).
		Values(
			s.ID,
			s.InstructorID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Status,
			s.StudentID,
			s.Location,
			s.Notes,
			s.PaymentAmount,
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

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает набор слотов одним запросом.
// Используется реконсилятором для вставки сгенерированных слотов.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns(
			"id",
			"instructor_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
			"student_id",
			"location",
			"notes",
			"payment_amount",
		)

	for _, s := range slots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		builder = builder.Values(
			s.ID,
			s.InstructorID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Status,
			s.StudentID,
			s.Location,
			s.Notes,
			s.PaymentAmount,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты инструктора с фильтрацией по периоду и статусу,
// упорядоченные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"instructor_id": filter.InstructorID}).
		OrderBy("slot_date ASC", "start_time ASC")

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []*domain.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// Update обновляет изменяемые поля слота
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", s.Status).
		Set("student_id", s.StudentID).
		Set("location", s.Location).
		Set("notes", s.Notes).
		Set("payment_amount", s.PaymentAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateStatus изменяет статус слота и, опционально, ссылку на студента
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus, studentID *int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusBooked {
		builder = builder.Set("student_id", studentID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteAvailable удаляет слоты из списка, находящиеся в статусе available.
// Статусная проверка в WHERE гарантирует, что слот с историей бронирования
// не будет удалён даже при гонке со студенческим бронированием.
func (r *Repository) DeleteAvailable(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": domain.StatusAvailable}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailable - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailable - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// DeleteByInstructor удаляет все слоты инструктора.
// Используется только при полном импорте расписания.
func (r *Repository) DeleteByInstructor(ctx context.Context, instructorID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
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

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.InstructorID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.StudentID,
		&s.Location,
		&s.Notes,
		&s.PaymentAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
