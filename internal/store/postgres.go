package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PostgresStore implements Store over a Postgres database populated by the
// collector subsystem. It only ever reads.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to Postgres, configures the connection pool and verifies
// connectivity.
func Open(url string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables this service reads from if they do not
// exist. The collector normally owns the schema; this exists for local
// development and the seed command.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS geo_container (
			id            TEXT PRIMARY KEY,
			parent_id     TEXT REFERENCES geo_container(id),
			name          TEXT NOT NULL,
			kind          TEXT NOT NULL,
			lookup_method TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create geo_container: %w", err)
	}

	_, err = ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS property (
			id                 TEXT PRIMARY KEY,
			parent_id          TEXT NOT NULL REFERENCES geo_container(id),
			name               TEXT NOT NULL DEFAULT '',
			status             TEXT NOT NULL DEFAULT 'active',
			price              NUMERIC NOT NULL DEFAULT 0,
			bedrooms           INTEGER,
			bathrooms          NUMERIC,
			year_built         INTEGER,
			lot_size           NUMERIC,
			square_feet        NUMERIC,
			property_type      TEXT NOT NULL DEFAULT '',
			condition          TEXT NOT NULL DEFAULT '',
			assessed_value     NUMERIC,
			tax_lien_status    TEXT NOT NULL DEFAULT '',
			street             TEXT NOT NULL DEFAULT '',
			city               TEXT NOT NULL DEFAULT '',
			zip_code           TEXT NOT NULL DEFAULT '',
			owner_name         TEXT NOT NULL DEFAULT '',
			parcel_id          TEXT NOT NULL DEFAULT '',
			tax_account_number TEXT NOT NULL DEFAULT '',
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	_, err = ps.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_property_parent ON property(parent_id);
		CREATE INDEX IF NOT EXISTS idx_property_parcel ON property(parcel_id) WHERE parcel_id != '';
		CREATE INDEX IF NOT EXISTS idx_property_account ON property(tax_account_number) WHERE tax_account_number != ''
	`)
	if err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}

	return nil
}

// UpsertContainer inserts or replaces a container. Used by the seed command
// only; normal operation reads data owned by the collector.
func (ps *PostgresStore) UpsertContainer(ctx context.Context, c GeoContainer) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO geo_container (id, parent_id, name, kind, lookup_method)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			lookup_method = EXCLUDED.lookup_method
	`, c.ID, c.ParentID, c.Name, c.Kind, c.LookupMethod)
	if err != nil {
		return fmt.Errorf("failed to upsert container %s: %w", c.ID, err)
	}
	return nil
}

// UpsertProperty inserts or replaces a property. Used by the seed command
// only.
func (ps *PostgresStore) UpsertProperty(ctx context.Context, p Property) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO property (
			id, parent_id, name, status, price, bedrooms, bathrooms,
			year_built, lot_size, square_feet, property_type, condition,
			assessed_value, tax_lien_status, street, city, zip_code,
			owner_name, parcel_id, tax_account_number, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			price = EXCLUDED.price,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			year_built = EXCLUDED.year_built,
			lot_size = EXCLUDED.lot_size,
			square_feet = EXCLUDED.square_feet,
			property_type = EXCLUDED.property_type,
			condition = EXCLUDED.condition,
			assessed_value = EXCLUDED.assessed_value,
			tax_lien_status = EXCLUDED.tax_lien_status,
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			zip_code = EXCLUDED.zip_code,
			owner_name = EXCLUDED.owner_name,
			parcel_id = EXCLUDED.parcel_id,
			tax_account_number = EXCLUDED.tax_account_number,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID, p.ParentID, p.Name, p.Status, p.Price,
		p.Features.Bedrooms, p.Features.Bathrooms, p.Features.YearBuilt,
		p.Features.LotSize, p.Features.SquareFeet, p.Features.PropertyType,
		p.Features.Condition, p.TaxStatus.AssessedValue, p.TaxStatus.TaxLienStatus,
		p.Location.Street, p.Location.City, p.Location.ZipCode, p.Owner.Name,
		p.Identifiers.ParcelID, p.Identifiers.TaxAccountNumber, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert property %s: %w", p.ID, err)
	}
	return nil
}

// queryBuilder accumulates WHERE conditions with numbered arguments.
type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

func (qb *queryBuilder) add(condition string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) addStatic(condition string) {
	qb.conditions = append(qb.conditions, condition)
}

func (qb *queryBuilder) addFloatRange(column string, min, max *float64) {
	if min != nil {
		qb.add(column+" >= $%d", *min)
	}
	if max != nil {
		qb.add(column+" <= $%d", *max)
	}
}

func (qb *queryBuilder) addIntRange(column string, min, max *int) {
	if min != nil {
		qb.add(column+" >= $%d", *min)
	}
	if max != nil {
		qb.add(column+" <= $%d", *max)
	}
}

func (qb *queryBuilder) where() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// applyFilter translates a FilterSpec into WHERE conditions.
func applyFilter(qb *queryBuilder, f FilterSpec) {
	if f.Scoped {
		if len(f.ParentIDs) == 0 {
			// Empty scope matches nothing (e.g. a state with no counties).
			qb.addStatic("FALSE")
		} else {
			qb.add("parent_id = ANY($%d)", pq.Array(f.ParentIDs))
		}
	}

	if f.Status != "" {
		qb.add("status = $%d", f.Status)
	}
	qb.addFloatRange("assessed_value", f.MinValue, f.MaxValue)
	if f.PropertyType != "" {
		qb.add("property_type = $%d", f.PropertyType)
	}
	if f.Condition != "" {
		qb.add("condition = $%d", f.Condition)
	}
	qb.addIntRange("bedrooms", f.MinBedrooms, f.MaxBedrooms)
	qb.addFloatRange("bathrooms", f.MinBathrooms, f.MaxBathrooms)
	qb.addIntRange("year_built", f.MinYearBuilt, f.MaxYearBuilt)
	qb.addFloatRange("lot_size", f.MinLotSize, f.MaxLotSize)
	qb.addFloatRange("square_feet", f.MinSqFt, f.MaxSqFt)
	if f.TaxLienStatus != "" {
		qb.add("tax_lien_status = $%d", f.TaxLienStatus)
	}
	if f.ZipCode != "" {
		qb.add("zip_code = $%d", f.ZipCode)
	}
	if f.City != "" {
		qb.add("city ILIKE $%d", "%"+f.City+"%")
	}

	if f.ParcelID != "" {
		qb.add("parcel_id = $%d", f.ParcelID)
	}
	if f.TaxAccountNumber != "" {
		qb.add("tax_account_number = $%d", f.TaxAccountNumber)
	}
	if f.TextQuery != "" {
		pattern := "%" + f.TextQuery + "%"
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"(owner_name ILIKE $%d OR street ILIKE $%d OR city ILIKE $%d OR name ILIKE $%d)",
			qb.argID, qb.argID, qb.argID, qb.argID))
		qb.args = append(qb.args, pattern)
		qb.argID++
	}

	if f.RequireParcelID {
		qb.addStatic("parcel_id != ''")
	}
	if f.RequireTaxAccountNumber {
		qb.addStatic("tax_account_number != ''")
	}
}

// orderBy maps a Sort to a safe ORDER BY clause. Sort fields come from a
// fixed set, never from raw client input.
func orderBy(s Sort) string {
	column := "updated_at"
	switch s.Field {
	case SortPrice:
		column = "price"
	case SortYearBuilt:
		column = "year_built"
	case SortSquareFeet:
		column = "square_feet"
	case SortName:
		column = "name"
	}

	direction := "ASC"
	if s.Descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id ASC", column, direction)
}

const propertyColumns = `id, parent_id, name, status, price, bedrooms, bathrooms,
	year_built, lot_size, square_feet, property_type, condition, assessed_value,
	tax_lien_status, street, city, zip_code, owner_name, parcel_id,
	tax_account_number, updated_at`

// FindProperties returns the filtered, sorted page of properties.
func (ps *PostgresStore) FindProperties(ctx context.Context, filter FilterSpec, s Sort, skip, limit int) ([]Property, error) {
	qb := newQueryBuilder()
	applyFilter(qb, filter)

	query := fmt.Sprintf("SELECT %s FROM property %s %s LIMIT $%d OFFSET $%d",
		propertyColumns, qb.where(), orderBy(s), qb.argID, qb.argID+1)
	args := append(qb.args, limit, skip)

	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var props []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		props = append(props, *p)
	}
	return props, rows.Err()
}

// CountProperties returns the number of properties matching the filter.
func (ps *PostgresStore) CountProperties(ctx context.Context, filter FilterSpec) (int, error) {
	qb := newQueryBuilder()
	applyFilter(qb, filter)

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM property %s", qb.where())
	if err := ps.db.QueryRowContext(ctx, query, qb.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// FindPropertyByID returns the property with the given ID, or nil.
func (ps *PostgresStore) FindPropertyByID(ctx context.Context, id string) (*Property, error) {
	row := ps.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM property WHERE id = $1", propertyColumns), id)

	p, err := scanProperty(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch property %s: %w", id, err)
	}
	return p, nil
}

// FindContainers returns containers matching the filter.
func (ps *PostgresStore) FindContainers(ctx context.Context, filter ContainerFilter) ([]GeoContainer, error) {
	qb := newQueryBuilder()
	if filter.Kind != "" {
		qb.add("kind = $%d", filter.Kind)
	}
	if filter.ParentID != "" {
		qb.add("parent_id = $%d", filter.ParentID)
	}

	query := fmt.Sprintf(
		"SELECT id, parent_id, name, kind, lookup_method FROM geo_container %s ORDER BY name",
		qb.where())

	rows, err := ps.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer rows.Close()

	var containers []GeoContainer
	for rows.Next() {
		var c GeoContainer
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Kind, &c.LookupMethod); err != nil {
			return nil, fmt.Errorf("failed to scan container: %w", err)
		}
		containers = append(containers, c)
	}
	return containers, rows.Err()
}

// FindContainerByID returns the container with the given ID, or nil.
func (ps *PostgresStore) FindContainerByID(ctx context.Context, id string) (*GeoContainer, error) {
	var c GeoContainer
	err := ps.db.QueryRowContext(ctx,
		"SELECT id, parent_id, name, kind, lookup_method FROM geo_container WHERE id = $1", id).
		Scan(&c.ID, &c.ParentID, &c.Name, &c.Kind, &c.LookupMethod)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch container %s: %w", id, err)
	}
	return &c, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row scanner) (*Property, error) {
	var (
		p             Property
		bedrooms      sql.NullInt64
		bathrooms     sql.NullFloat64
		yearBuilt     sql.NullInt64
		lotSize       sql.NullFloat64
		squareFeet    sql.NullFloat64
		assessedValue sql.NullFloat64
	)

	err := row.Scan(
		&p.ID, &p.ParentID, &p.Name, &p.Status, &p.Price,
		&bedrooms, &bathrooms, &yearBuilt, &lotSize, &squareFeet,
		&p.Features.PropertyType, &p.Features.Condition, &assessedValue,
		&p.TaxStatus.TaxLienStatus, &p.Location.Street, &p.Location.City,
		&p.Location.ZipCode, &p.Owner.Name, &p.Identifiers.ParcelID,
		&p.Identifiers.TaxAccountNumber, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bedrooms.Valid {
		v := int(bedrooms.Int64)
		p.Features.Bedrooms = &v
	}
	if bathrooms.Valid {
		p.Features.Bathrooms = &bathrooms.Float64
	}
	if yearBuilt.Valid {
		v := int(yearBuilt.Int64)
		p.Features.YearBuilt = &v
	}
	if lotSize.Valid {
		p.Features.LotSize = &lotSize.Float64
	}
	if squareFeet.Valid {
		p.Features.SquareFeet = &squareFeet.Float64
	}
	if assessedValue.Valid {
		p.TaxStatus.AssessedValue = &assessedValue.Float64
	}

	return &p, nil
}
