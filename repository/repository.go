package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/missingpersons"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connStr string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (repo *Repository) Close() {
	repo.pool.Close()
}

func (repo *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return repo.pool.Ping(ctx)
}

// BoundingBox limits hub listings to the rectangle between the south-west and north-east corners.
type BoundingBox struct {
	SwLat float64
	SwLng float64
	NeLat float64
	NeLng float64
}

func listHubsQuery(box *BoundingBox) sq.SelectBuilder {
	q := psql.Select("id", "hub_name", "email", "phone", "location",
		"latitude", "longitude", "areas_covered", "aid_types").
		From("relief_hubs")
	if box != nil {
		q = q.Where(sq.GtOrEq{"latitude": box.SwLat}).
			Where(sq.LtOrEq{"latitude": box.NeLat}).
			Where(sq.GtOrEq{"longitude": box.SwLng}).
			Where(sq.LtOrEq{"longitude": box.NeLng})
	}
	return q.OrderBy("created_at ASC")
}

func (repo *Repository) ListHubs(ctx context.Context, box *BoundingBox) ([]hubs.ReliefHub, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := listHubsQuery(box).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build hubs query: %w", err)
	}
	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query hubs: %w", err)
	}
	defer rows.Close()

	results := make([]hubs.ReliefHub, 0)
	for rows.Next() {
		var h hubs.ReliefHub
		if err := rows.Scan(&h.ID, &h.HubName, &h.Email, &h.Phone, &h.Location,
			&h.Latitude, &h.Longitude, &h.AreasCovered, &h.AidTypes); err != nil {
			return nil, fmt.Errorf("could not scan hub: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read hubs: %w", err)
	}
	return results, nil
}

func createHubQuery(h hubs.ReliefHub, now time.Time) sq.InsertBuilder {
	return psql.Insert("relief_hubs").
		Columns("id", "hub_name", "email", "phone", "location",
			"latitude", "longitude", "areas_covered", "aid_types", "created_at").
		Values(h.ID, h.HubName, h.Email, h.Phone, h.Location,
			h.Latitude, h.Longitude, h.AreasCovered, h.AidTypes, now).
		Suffix("ON CONFLICT (id) DO NOTHING")
}

// CreateHub stores h. Re-submitting an ID that already exists is a no-op.
func (repo *Repository) CreateHub(ctx context.Context, h hubs.ReliefHub) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := createHubQuery(h, time.Now()).ToSql()
	if err != nil {
		return fmt.Errorf("could not build hub insert: %w", err)
	}
	if _, err := repo.pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("could not insert hub %s: %w", h.ID, err)
	}
	return nil
}

func listMissingPersonsQuery(status missingpersons.Status) sq.SelectBuilder {
	q := psql.Select("id", "name", "age", "last_seen", "description", "contact",
		"status", "image_url", "latitude", "longitude", "created_at").
		From("missing_persons")
	if status != "" && status != missingpersons.StatusAll {
		q = q.Where(sq.Eq{"status": string(status)})
	}
	return q.OrderBy("created_at DESC")
}

func (repo *Repository) ListMissingPersons(ctx context.Context, status missingpersons.Status) ([]missingpersons.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := listMissingPersonsQuery(status).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build missing persons query: %w", err)
	}
	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query missing persons: %w", err)
	}
	defer rows.Close()

	results := make([]missingpersons.Report, 0)
	for rows.Next() {
		var (
			r      missingpersons.Report
			status string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Age, &r.LastSeen, &r.Description, &r.Contact,
			&status, &r.ImageURL, &r.Latitude, &r.Longitude, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan missing person: %w", err)
		}
		r.Status = missingpersons.Status(status)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read missing persons: %w", err)
	}
	return results, nil
}

func createMissingPersonQuery(r missingpersons.Report) sq.InsertBuilder {
	return psql.Insert("missing_persons").
		Columns("id", "name", "age", "last_seen", "description", "contact",
			"status", "image_url", "latitude", "longitude", "created_at").
		Values(r.ID, r.Name, r.Age, r.LastSeen, r.Description, r.Contact,
			string(r.Status), r.ImageURL, r.Latitude, r.Longitude, r.CreatedAt)
}

func (repo *Repository) CreateMissingPerson(ctx context.Context, r missingpersons.Report) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := createMissingPersonQuery(r).ToSql()
	if err != nil {
		return fmt.Errorf("could not build missing person insert: %w", err)
	}
	if _, err := repo.pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("could not insert missing person %s: %w", r.ID, err)
	}
	return nil
}
