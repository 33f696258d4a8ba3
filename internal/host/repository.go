package host

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

// Repository defines data access methods for host profiles.
type Repository interface {
	// Create inserts the profile and promotes its user to HOST atomically.
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter Filter) ([]*Profile, int, error)
	Update(ctx context.Context, p *Profile) error
	// DeleteByUserID removes the profile and demotes its user to PET_OWNER atomically.
	DeleteByUserID(ctx context.Context, userID string) error
	ToggleAvailability(ctx context.Context, userID string) error
	AddPhoto(ctx context.Context, userID, url string) error
	UpdateRating(ctx context.Context, userID string, rating *float64, reviewCount int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const (
	roleHost     = "HOST"
	rolePetOwner = "PET_OWNER"
)

var profileColumns = []string{
	"h.id", "h.user_id", "h.bio", "h.address", "h.city", "h.state", "h.zip_code",
	"h.latitude", "h.longitude", "h.home_type", "h.has_yard", "h.accepted_pet_types", "h.max_pets",
	"h.price_per_night", "h.price_per_week", "h.photos", "h.is_available", "h.rating", "h.review_count",
	"h.created_at", "h.updated_at",
	"u.first_name", "u.last_name", "u.avatar_url",
}

func scanProfile(row pgx.Row, extra ...any) (*Profile, error) {
	var p Profile
	dest := []any{
		&p.ID, &p.UserID, &p.Bio, &p.Address, &p.City, &p.State, &p.ZipCode,
		&p.Latitude, &p.Longitude, &p.HomeType, &p.HasYard, &p.AcceptedPetTypes, &p.MaxPets,
		&p.PricePerNight, &p.PricePerWeek, &p.Photos, &p.IsAvailable, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
		&p.FirstName, &p.LastName, &p.AvatarURL,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func selectProfiles() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(profileColumns...).
		From("public.host_profiles h").
		Join("public.users u ON u.id = h.user_id")
}

// setRole runs inside the caller's transaction.
func setRole(ctx context.Context, tx pgx.Tx, userID, role string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.users").
		Set("role", role).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set role query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set user role failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("set user role failed: user %s does not exist", userID)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Profile) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.host_profiles").
		Columns(
			"user_id", "bio", "address", "city", "state", "zip_code", "latitude", "longitude",
			"home_type", "has_yard", "accepted_pet_types", "max_pets", "price_per_night",
			"price_per_week", "photos", "is_available",
		).
		Values(
			p.UserID, p.Bio, p.Address, p.City, p.State, p.ZipCode, p.Latitude, p.Longitude,
			p.HomeType, p.HasYard, p.AcceptedPetTypes, p.MaxPets, p.PricePerNight,
			p.PricePerWeek, p.Photos, p.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create host profile query failed: %w", err)
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			var e *pgconn.PgError
			if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
				return ErrProfileExists
			}
			return fmt.Errorf("create host profile failed: %w", err)
		}
		return setRole(ctx, tx, p.UserID, roleHost)
	})
	return err
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Profile, error) {
	query, args, err := selectProfiles().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get host profile query failed: %w", err)
	}

	p, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get host profile failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"h.id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"h.user_id": userID})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {
	query := selectProfiles().
		Column("count(*) OVER() AS total_count").
		Where(squirrel.Eq{"h.is_available": true})

	if filter.City != "" {
		query = query.Where(squirrel.ILike{"h.city": "%" + filter.City + "%"})
	}
	if filter.PetType != "" {
		// Empty accepted_pet_types accepts every type.
		query = query.Where(squirrel.Or{
			squirrel.Expr("? = ANY(h.accepted_pet_types)", filter.PetType),
			squirrel.Expr("cardinality(h.accepted_pet_types) = 0"),
		})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"h.price_per_night": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"h.price_per_night": *filter.MaxPrice})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.
		OrderBy("h.rating DESC NULLS LAST", "h.review_count DESC", "h.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list host profiles query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list host profiles failed: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	var total int
	for rows.Next() {
		p, err := scanProfile(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan host profile failed: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate host profiles failed: %w", err)
	}

	return profiles, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Profile) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.host_profiles").
		Set("bio", p.Bio).
		Set("address", p.Address).
		Set("city", p.City).
		Set("state", p.State).
		Set("zip_code", p.ZipCode).
		Set("latitude", p.Latitude).
		Set("longitude", p.Longitude).
		Set("home_type", p.HomeType).
		Set("has_yard", p.HasYard).
		Set("accepted_pet_types", p.AcceptedPetTypes).
		Set("max_pets", p.MaxPets).
		Set("price_per_night", p.PricePerNight).
		Set("price_per_week", p.PricePerWeek).
		Set("photos", p.Photos).
		Set("is_available", p.IsAvailable).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update host profile query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update host profile failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) DeleteByUserID(ctx context.Context, userID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.host_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete host profile query failed: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete host profile failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return setRole(ctx, tx, userID, rolePetOwner)
	})
}

// execByUser runs a single-row update keyed by user_id.
func (r *pgxRepository) execByUser(ctx context.Context, op string, b squirrel.UpdateBuilder, userID string) error {
	query, args, err := b.
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s query failed: %w", op, err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ToggleAvailability(ctx context.Context, userID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.execByUser(ctx, "toggle availability",
		psql.Update("public.host_profiles").Set("is_available", squirrel.Expr("NOT is_available")),
		userID)
}

func (r *pgxRepository) AddPhoto(ctx context.Context, userID, url string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.execByUser(ctx, "add host photo",
		psql.Update("public.host_profiles").Set("photos", squirrel.Expr("array_append(photos, ?)", url)),
		userID)
}

func (r *pgxRepository) UpdateRating(ctx context.Context, userID string, rating *float64, reviewCount int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.execByUser(ctx, "update host rating",
		psql.Update("public.host_profiles").Set("rating", rating).Set("review_count", reviewCount),
		userID)
}
