package parser

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"firewall-auditor/internal/model"
)

// MariaDBProvider loads rule records from a firewall_rule table. Rows go
// through the same normalization and validation path as file records, and
// the seq column preserves declaration order.
type MariaDBProvider struct {
	db *sql.DB
}

func NewMariaDBProvider(dsn string) (*MariaDBProvider, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &MariaDBProvider{db: db}, nil
}

func (p *MariaDBProvider) Close() error {
	return p.db.Close()
}

// Load reads the full rule table in declaration order.
func (p *MariaDBProvider) Load() ([]model.Rule, error) {
	rows, err := p.db.Query(`SELECT rule_id, name, source, destination, port, protocol, action, priority, hit_count
		FROM firewall_rule ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query firewall_rule: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var id, name, source, destination, port, protocol, action, priority, hitCount sql.NullString
		if err := rows.Scan(&id, &name, &source, &destination, &port, &protocol, &action, &priority, &hitCount); err != nil {
			return nil, err
		}
		records = append(records, record{
			"id":          id.String,
			"name":        name.String,
			"source":      source.String,
			"destination": destination.String,
			"port":        port.String,
			"protocol":    protocol.String,
			"action":      action.String,
			"priority":    priority.String,
			"hit_count":   hitCount.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return normalize(records)
}
