package consultation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/moshavereh/booking-service/internal/domain"
	"github.com/moshavereh/booking-service/pkg/dbmetrics"
	"github.com/moshavereh/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с консультациями и их рабочими окнами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает консультацию вместе с рабочими окнами.
// Окна сохраняются с позицией, чтобы порядок, заданный администратором,
// воспроизводился при генерации слотов. Строка консультации и её окна
// пишутся в одной транзакции: консультация без окон в БД не появляется.
func (r *Repository) Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error) {
	err := r.inTx(ctx, func(txCtx context.Context) error {
		return r.create(txCtx, consultation)
	})
	if err != nil {
		return nil, err
	}
	return consultation, nil
}

func (r *Repository) create(ctx context.Context, consultation *domain.Consultation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultations").
		Columns(
			"title",
			"consultant_name",
			"description",
			"session_duration_minutes",
			"thursdays_open",
		).
		Values(
			consultation.Title,
			consultation.ConsultantName,
			consultation.Description,
			consultation.SessionDurationMinutes,
			consultation.ThursdaysOpen,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&consultation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	consultation.CreatedAt = createdAt.Time
	consultation.UpdatedAt = updatedAt.Time

	return r.insertWindows(ctx, executor, consultation.ID, consultation.WorkingWindows)
}

// GetByID получает консультацию по ID вместе с рабочими окнами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"consultant_name",
		"description",
		"session_duration_minutes",
		"thursdays_open",
		"created_at",
		"updated_at",
	).
		From("consultations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var consultation domain.Consultation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&consultation.ID,
		&consultation.Title,
		&consultation.ConsultantName,
		&consultation.Description,
		&consultation.SessionDurationMinutes,
		&consultation.ThursdaysOpen,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	consultation.CreatedAt = createdAt.Time
	consultation.UpdatedAt = updatedAt.Time

	windows, err := r.getWindows(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	consultation.WorkingWindows = windows

	return &consultation, nil
}

// List получает все консультации с рабочими окнами
func (r *Repository) List(ctx context.Context) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"consultant_name",
		"description",
		"session_duration_minutes",
		"thursdays_open",
		"created_at",
		"updated_at",
	).
		From("consultations").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	consultations := make([]*domain.Consultation, 0)

	for rows.Next() {
		var consultation domain.Consultation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&consultation.ID,
			&consultation.Title,
			&consultation.ConsultantName,
			&consultation.Description,
			&consultation.SessionDurationMinutes,
			&consultation.ThursdaysOpen,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		consultation.CreatedAt = createdAt.Time
		consultation.UpdatedAt = updatedAt.Time

		consultations = append(consultations, &consultation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	for _, consultation := range consultations {
		windows, err := r.getWindows(ctx, executor, consultation.ID)
		if err != nil {
			return nil, err
		}
		consultation.WorkingWindows = windows
	}

	return consultations, nil
}

// Update обновляет консультацию и полностью заменяет её рабочие окна.
// Существующие брони при этом не трогаются: они хранят собственный снимок
// длительности и названия. Замена окон (DELETE + INSERT) и обновление строки
// идут в одной транзакции: при сбое вставки старые окна не теряются.
func (r *Repository) Update(ctx context.Context, id int64, consultation *domain.Consultation) (*domain.Consultation, error) {
	err := r.inTx(ctx, func(txCtx context.Context) error {
		return r.update(txCtx, id, consultation)
	})
	if err != nil {
		return nil, err
	}
	return consultation, nil
}

func (r *Repository) update(ctx context.Context, id int64, consultation *domain.Consultation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("title", consultation.Title).
		Set("consultant_name", consultation.ConsultantName).
		Set("description", consultation.Description).
		Set("session_duration_minutes", consultation.SessionDurationMinutes).
		Set("thursdays_open", consultation.ThursdaysOpen).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return ErrConsultationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	consultation.ID = id
	consultation.CreatedAt = createdAt.Time
	consultation.UpdatedAt = updatedAt.Time

	if err := r.deleteWindows(ctx, executor, id); err != nil {
		return err
	}

	return r.insertWindows(ctx, executor, id, consultation.WorkingWindows)
}

// Delete удаляет консультацию; рабочие окна удаляются каскадом
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consultations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}

	return nil
}

// insertWindows сохраняет рабочие окна консультации с их позициями
func (r *Repository) insertWindows(ctx context.Context, executor DBExecutor, consultationID int64, windows []domain.WorkingWindow) error {
	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("consultation_windows").
		Columns("consultation_id", "position", "start_time", "end_time")

	for i, window := range windows {
		insertBuilder = insertBuilder.Values(consultationID, i, window.StartTime, window.EndTime)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// getWindows загружает рабочие окна консультации в заданном порядке
func (r *Repository) getWindows(ctx context.Context, executor DBExecutor, consultationID int64) ([]domain.WorkingWindow, error) {
	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("consultation_windows").
		Where(squirrel.Eq{"consultation_id": consultationID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.WorkingWindow, 0)

	for rows.Next() {
		var window domain.WorkingWindow
		if err := rows.Scan(&window.StartTime, &window.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Helper methods

// inTx выполняет fn в транзакции. Если транзакция уже есть в контексте,
// переиспользует её: коммит и откат остаются за внешним владельцем.
func (r *Repository) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	txCtx, tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}

// beginTx начинает новую транзакцию и возвращает контекст с ней
func (r *Repository) beginTx(ctx context.Context) (context.Context, TxExecutor, error) {
	// Пытаемся привести к TxBeginner интерфейсу (dbmetrics.DB реализует этот интерфейс)
	if txBeginner, ok := r.db.(TxBeginner); ok {
		tx, err := txBeginner.BeginTx(ctx, nil)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: beginTx: %v", ErrTransaction, err)
		}
		return dbmetrics.WithTx(ctx, tx), tx, nil
	}

	// Fallback для обычного *sql.DB
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: beginTx: %v", ErrTransaction, err)
		}
		wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
		return dbmetrics.WithTx(ctx, wrappedTx), wrappedTx, nil
	}

	return ctx, nil, fmt.Errorf("%w: db type not supported", ErrTransaction)
}

// deleteWindows удаляет все рабочие окна консультации
func (r *Repository) deleteWindows(ctx context.Context, executor DBExecutor, consultationID int64) error {
	query, args, err := psqlbuilder.Delete("consultation_windows").
		Where(squirrel.Eq{"consultation_id": consultationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteWindows - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
