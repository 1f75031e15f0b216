package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hotel_allocation/internal/domain"
)

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func valJSON(m map[string]any) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeParams(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

type Repo struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repo { return &Repo{db: db, now: time.Now} }

// GetTenantConstraints implements domain.ConstraintRepository. Tenant params
// are laid over the template defaults; a malformed row fails the whole load.
func (r *Repo) GetTenantConstraints(ctx context.Context, tenantID string) ([]domain.TenantConstraintConfig, error) {
	now := r.now().UTC()
	rows, err := r.db.QueryContext(ctx, getTenantConstraintsSQL, tenantID, now, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantConstraintConfig
	for rows.Next() {
		var (
			c             domain.TenantConstraintConfig
			kind          string
			defaultParams []byte
			weight        sql.NullInt64
			params        []byte
		)
		if err := rows.Scan(
			&c.Code,
			&c.Name,
			&kind,
			&c.DefaultWeight,
			&defaultParams,
			&c.Enabled,
			&weight,
			&params,
		); err != nil {
			return nil, err
		}
		c.TenantID = tenantID
		c.Kind = domain.ConstraintKind(kind)
		if weight.Valid {
			w := int(weight.Int64)
			c.Weight = &w
		}

		defaults, err := decodeParams(defaultParams)
		if err != nil {
			return nil, fmt.Errorf("%w: template %s: default_params: %v", domain.ErrConfigLoad, c.Code, err)
		}
		overrides, err := decodeParams(params)
		if err != nil {
			return nil, fmt.Errorf("%w: tenant %s code %s: params: %v", domain.ErrConfigLoad, tenantID, c.Code, err)
		}
		if len(defaults)+len(overrides) > 0 {
			c.Params = make(map[string]any, len(defaults)+len(overrides))
			for k, v := range defaults {
				c.Params[k] = v
			}
			for k, v := range overrides {
				c.Params[k] = v
			}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpsertTemplate(ctx context.Context, t domain.ConstraintTemplate) error {
	schema := make(map[string]any, len(t.ParamSchema))
	for k, v := range t.ParamSchema {
		schema[k] = v
	}
	schemaJSON, err := valJSON(schema)
	if err != nil {
		return fmt.Errorf("marshal param schema %s: %w", t.Code, err)
	}
	defaultsJSON, err := valJSON(t.DefaultParams)
	if err != nil {
		return fmt.Errorf("marshal default params %s: %w", t.Code, err)
	}
	_, err = r.db.ExecContext(ctx, upsertTemplateSQL,
		t.Code,
		t.Name,
		string(t.Kind),
		t.DefaultWeight,
		schemaJSON,
		defaultsJSON,
	)
	return err
}

func (r *Repo) UpsertTenantConstraint(ctx context.Context, c domain.TenantConstraintConfig) error {
	paramsJSON, err := valJSON(c.Params)
	if err != nil {
		return fmt.Errorf("marshal params %s: %w", c.Code, err)
	}
	_, err = r.db.ExecContext(ctx, upsertTenantConstraintSQL,
		c.TenantID,
		c.Code,
		c.Enabled,
		valInt(c.Weight),
		paramsJSON,
	)
	return err
}
