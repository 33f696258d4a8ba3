package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts r; a second review for the same booking is ErrReviewAlreadyExists.
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByBookingID(ctx context.Context, bookingID string) (*Review, error)
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	// ListBySubject returns every review of the subject, newest first.
	ListBySubject(ctx context.Context, subjectID string) ([]*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var reviewColumns = []string{
	"r.id", "r.booking_id", "r.author_id", "r.subject_id", "r.rating", "r.comment",
	"r.created_at", "r.updated_at",
	"a.first_name || ' ' || a.last_name", "a.avatar_url",
	"s.first_name || ' ' || s.last_name",
	"p.name", "p.type", "b.start_date", "b.end_date",
}

func selectReviews() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(reviewColumns...).
		From("public.reviews r").
		Join("public.users a ON r.author_id = a.id").
		Join("public.users s ON r.subject_id = s.id").
		Join("public.bookings b ON r.booking_id = b.id").
		Join("public.pets p ON b.pet_id = p.id")
}

func scanReview(row pgx.Row) (*Review, error) {
	var r Review
	err := row.Scan(
		&r.ID, &r.BookingID, &r.AuthorID, &r.SubjectID, &r.Rating, &r.Comment,
		&r.CreatedAt, &r.UpdatedAt,
		&r.AuthorName, &r.AuthorAvatarURL,
		&r.SubjectName,
		&r.PetName, &r.PetType, &r.StayStart, &r.StayEnd,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *pgxRepository) Create(ctx context.Context, r *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "author_id", "subject_id", "rating", "comment").
		Values(r.BookingID, r.AuthorID, r.SubjectID, r.Rating, r.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrReviewAlreadyExists
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Review, error) {
	query, args, err := selectReviews().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	r, err := scanReview(repo.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	return repo.getOne(ctx, squirrel.Eq{"r.id": id})
}

func (repo *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Review, error) {
	return repo.getOne(ctx, squirrel.Eq{"r.booking_id": bookingID})
}

func (repo *pgxRepository) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var exists bool
	err := repo.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM public.reviews WHERE booking_id = $1)", bookingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review exists failed: %w", err)
	}
	return exists, nil
}

func (repo *pgxRepository) ListBySubject(ctx context.Context, subjectID string) ([]*Review, error) {
	query, args, err := selectReviews().
		Where(squirrel.Eq{"r.subject_id": subjectID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews failed: %w", err)
	}
	return reviews, nil
}

func (repo *pgxRepository) Update(ctx context.Context, r *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reviews").
		Set("rating", r.Rating).
		Set("comment", r.Comment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update review query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update review failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := repo.pool.Exec(ctx, "DELETE FROM public.reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
