package pet

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
)

// Repository defines data access methods for pets.
type Repository interface {
	Create(ctx context.Context, p *Pet) error
	GetByID(ctx context.Context, id string) (*Pet, error)
	ListByOwner(ctx context.Context, ownerID string, params request.ListParams) ([]*Pet, int, error)
	Update(ctx context.Context, p *Pet) error
	Delete(ctx context.Context, id string) error
	SetPhoto(ctx context.Context, id, url string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var petColumns = []string{
	"id", "owner_id", "name", "type", "breed", "age", "weight", "gender",
	"description", "special_needs", "photo_url", "is_neutered", "vaccinated",
	"created_at", "updated_at",
}

func scanPet(row pgx.Row, extra ...any) (*Pet, error) {
	var p Pet
	dest := []any{
		&p.ID, &p.OwnerID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.Weight, &p.Gender,
		&p.Description, &p.SpecialNeeds, &p.PhotoURL, &p.IsNeutered, &p.Vaccinated,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Pet) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.pets").
		Columns(
			"owner_id", "name", "type", "breed", "age", "weight", "gender",
			"description", "special_needs", "photo_url", "is_neutered", "vaccinated",
		).
		Values(
			p.OwnerID, p.Name, p.Type, p.Breed, p.Age, p.Weight, p.Gender,
			p.Description, p.SpecialNeeds, p.PhotoURL, p.IsNeutered, p.Vaccinated,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create pet query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create pet failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Pet, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(petColumns...).
		From("public.pets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get pet query failed: %w", err)
	}

	p, err := scanPet(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pet failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, params request.ListParams) ([]*Pet, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	offset := (params.Page - 1) * params.PageSize
	query, args, err := psql.Select(append(petColumns, "count(*) OVER() AS total_count")...).
		From("public.pets").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(params.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list pets query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pets failed: %w", err)
	}
	defer rows.Close()

	var pets []*Pet
	var total int
	for rows.Next() {
		p, err := scanPet(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pet failed: %w", err)
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pets failed: %w", err)
	}

	return pets, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Pet) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.pets").
		Set("name", p.Name).
		Set("type", p.Type).
		Set("breed", p.Breed).
		Set("age", p.Age).
		Set("weight", p.Weight).
		Set("gender", p.Gender).
		Set("description", p.Description).
		Set("special_needs", p.SpecialNeeds).
		Set("photo_url", p.PhotoURL).
		Set("is_neutered", p.IsNeutered).
		Set("vaccinated", p.Vaccinated).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update pet query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update pet failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.pets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete pet query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasBookings
		}
		return fmt.Errorf("delete pet failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetPhoto(ctx context.Context, id, url string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.pets").
		Set("photo_url", url).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set pet photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set pet photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
