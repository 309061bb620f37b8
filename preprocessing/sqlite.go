package preprocessing

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

//go:embed schema.sql
var schemaSQL string

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// LoadSQLite reads a network written by SaveSQLite. Line order is the
// insertion order; branches of one label keep their branch index order.
func LoadSQLite(ctx context.Context, path string) (*models.Network, error) {
	conn, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	net := &models.Network{}
	err = conn.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'name'`).Scan(&net.Name)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("query network name: %w", err)
	}

	rows, err := conn.QueryContext(ctx, `SELECT id, name, lat, lon FROM stations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Lat, &st.Lon); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan station: %w", err)
		}
		net.Stations = append(net.Stations, st)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate stations: %w", err)
	}
	rows.Close()

	rows, err = conn.QueryContext(ctx, `SELECT line, branch, station_id FROM line_stops ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query line stops: %w", err)
	}
	defer rows.Close()

	var (
		curLabel  string
		curBranch = -1
	)
	for rows.Next() {
		var (
			label     string
			branch    int
			stationID int
		)
		if err := rows.Scan(&label, &branch, &stationID); err != nil {
			return nil, fmt.Errorf("scan line stop: %w", err)
		}
		if len(net.Lines) == 0 || label != curLabel || branch != curBranch {
			net.Lines = append(net.Lines, models.Line{Label: label})
			curLabel, curBranch = label, branch
		}
		last := &net.Lines[len(net.Lines)-1]
		last.Stops = append(last.Stops, stationID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line stops: %w", err)
	}

	return finalize(net)
}

// SaveSQLite replaces the content of the database at path with net.
func SaveSQLite(ctx context.Context, path string, net *models.Network) error {
	if err := Validate(net); err != nil {
		return err
	}
	conn, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM line_stops`, `DELETE FROM stations`, `DELETE FROM meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('name', ?)`, net.Name); err != nil {
		return fmt.Errorf("insert network name: %w", err)
	}

	insertStation, err := tx.PrepareContext(ctx, `INSERT INTO stations (id, name, lat, lon) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare station insert: %w", err)
	}
	defer insertStation.Close()
	for _, st := range net.Stations {
		if _, err := insertStation.ExecContext(ctx, st.ID, st.Name, st.Lat, st.Lon); err != nil {
			return fmt.Errorf("insert station %d: %w", st.ID, err)
		}
	}

	insertStop, err := tx.PrepareContext(ctx, `INSERT INTO line_stops (line, branch, seq, station_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare line stop insert: %w", err)
	}
	defer insertStop.Close()
	branches := map[string]int{}
	for _, line := range net.Lines {
		branch := branches[line.Label]
		branches[line.Label]++
		for seq, id := range line.Stops {
			if _, err := insertStop.ExecContext(ctx, line.Label, branch, seq, id); err != nil {
				return fmt.Errorf("insert line %s stop %d: %w", line.Label, seq, err)
			}
		}
	}

	return tx.Commit()
}
