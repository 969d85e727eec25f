package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"travel_advisor/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func jsonText(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertDestinations(ctx context.Context, ds []domain.Destination) error {
	if len(ds) == 0 {
		return nil
	}
	values := make([]string, 0, len(ds))
	args := make([]any, 0, len(ds)*11) // 11 params per row
	for _, d := range ds {
		styles, err := jsonText(d.TravelStyles)
		if err != nil {
			return err
		}
		envs, err := jsonText(d.Environments)
		if err != nil {
			return err
		}
		durs, err := jsonText(d.Durations)
		if err != nil {
			return err
		}
		groups, err := jsonText(d.GroupTypes)
		if err != nil {
			return err
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			d.ID,
			d.LocationName,
			d.CountryName,
			valStr(d.LocationNameEn),
			valStr(d.CountryNameEn),
			styles,
			envs,
			durs,
			groups,
			d.Descriptor,
			d.MinBudget,
		)
	}
	sqlStr := insertDestinationsPrefix + strings.Join(values, ",") + insertDestinationsOnDup
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert %d destinations: %w", len(ds), err)
	}
	return nil
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		var locEn, countryEn sql.NullString
		var styles, envs, durs, groups []byte
		if err := rows.Scan(
			&d.ID,
			&d.LocationName,
			&d.CountryName,
			&locEn,
			&countryEn,
			&styles, &envs, &durs, &groups,
			&d.Descriptor,
			&d.MinBudget,
		); err != nil {
			return nil, err
		}
		if locEn.Valid {
			d.LocationNameEn = locEn.String
		}
		if countryEn.Valid {
			d.CountryNameEn = countryEn.String
		}
		if err := json.Unmarshal(styles, &d.TravelStyles); err != nil {
			return nil, fmt.Errorf("destination %s travel_styles: %w", d.ID, err)
		}
		if err := json.Unmarshal(envs, &d.Environments); err != nil {
			return nil, fmt.Errorf("destination %s environments: %w", d.ID, err)
		}
		if err := json.Unmarshal(durs, &d.Durations); err != nil {
			return nil, fmt.Errorf("destination %s durations: %w", d.ID, err)
		}
		if err := json.Unmarshal(groups, &d.GroupTypes); err != nil {
			return nil, fmt.Errorf("destination %s group_types: %w", d.ID, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountDestinations(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countDestinationsSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
