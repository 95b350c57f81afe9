package repository

import (
	"context"
	"errors"

	"billchill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrProviderNotFound = errors.New("provider not found")

// ProviderRepository stores the insurance provider registry. This is
// reference data only; analysis results never touch the database.
type ProviderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProviderRepository(db *pgxpool.Pool, logger *zap.Logger) *ProviderRepository {
	return &ProviderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	query := squirrel.Insert("providers").
		Columns("id", "name", "policy_doc", "created_at", "updated_at").
		Values(provider.ID, provider.Name, provider.PolicyDoc, provider.CreatedAt, provider.UpdatedAt).
		Suffix("ON CONFLICT (name) DO UPDATE SET policy_doc = EXCLUDED.policy_doc, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProviderRepository) List(ctx context.Context) ([]*models.Provider, error) {
	query := squirrel.Select("id", "name", "policy_doc", "created_at", "updated_at").
		From("providers").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*models.Provider
	for rows.Next() {
		var p models.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.PolicyDoc, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, &p)
	}

	return providers, nil
}

func (r *ProviderRepository) GetByName(ctx context.Context, name string) (*models.Provider, error) {
	query := squirrel.Select("id", "name", "policy_doc", "created_at", "updated_at").
		From("providers").
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Provider
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.Name, &p.PolicyDoc, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	return &p, nil
}
