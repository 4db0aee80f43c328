package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump breaks an error chain down for logs. The DB fields are filled when a driver error
// from the order store (pgx, lib/pq or sqlite3) sits somewhere in the chain.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	DBDriver     string `json:"db_driver,omitempty"`
	DBCode       string `json:"db_code,omitempty"`
	DBConstraint string `json:"db_constraint,omitempty"`
	DBTable      string `json:"db_table,omitempty"`
	DBDetail     string `json:"db_detail,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.fillDB(err)
	return d
}

func (d *ErrorDump) fillDB(err error) {
	var (
		pgxErr    *pgconn.PgError
		pqErr     *pq.Error
		sqliteErr sqlite3.Error
	)
	switch {
	case errors.As(err, &pgxErr):
		d.DBDriver, d.DBCode = "postgres", pgxErr.Code
		d.DBConstraint, d.DBTable, d.DBDetail = pgxErr.ConstraintName, pgxErr.TableName, pgxErr.Detail
	case errors.As(err, &pqErr):
		d.DBDriver, d.DBCode = "postgres", string(pqErr.Code)
		d.DBConstraint, d.DBTable, d.DBDetail = pqErr.Constraint, pqErr.Table, pqErr.Detail
	case errors.As(err, &sqliteErr):
		d.DBDriver, d.DBCode = "sqlite", strconv.Itoa(int(sqliteErr.ExtendedCode))
		d.DBDetail = sqliteErr.Error()
	}
}

// Fields flattens the dump into logger fields; DB fields appear only when a driver error was found.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.DBDriver == "" {
		return fields
	}
	fields["db_driver"] = d.DBDriver
	fields["db_code"] = d.DBCode
	for key, value := range map[string]string{
		"db_constraint": d.DBConstraint,
		"db_table":      d.DBTable,
		"db_detail":     d.DBDetail,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}
