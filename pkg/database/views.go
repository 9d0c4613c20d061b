package database

import "gorm.io/gorm"

// Names of the derived aggregate views over cashflow_entries. The views hold
// no state of their own: every read recomputes from the base table, so they
// can never drift from it.
var cashflowViewNames = []string{
	"daily_flow",
	"monthly_flow",
	"method_flow",
	"annual_flow",
	"cumulative_in",
	"cumulative_out",
	"cumulative_net",
}

// The sign convention is fixed: entrada contributes +amount, saida -amount.
// Amounts themselves are always stored as positive magnitudes.
var cashflowViewDDL = []string{
	`CREATE VIEW IF NOT EXISTS daily_flow AS
	SELECT
		transaction_date AS date,
		SUM(CASE WHEN type='entrada' THEN amount ELSE 0 END) AS total_in,
		SUM(CASE WHEN type='saida' THEN amount ELSE 0 END) AS total_out,
		SUM(CASE WHEN type='entrada' THEN amount ELSE -amount END) AS balance
	FROM cashflow_entries
	GROUP BY transaction_date;`,

	`CREATE VIEW IF NOT EXISTS monthly_flow AS
	SELECT
		strftime('%Y-%m', transaction_date) AS month,
		SUM(CASE WHEN type='entrada' THEN amount ELSE 0 END) AS total_in,
		SUM(CASE WHEN type='saida' THEN amount ELSE 0 END) AS total_out,
		SUM(CASE WHEN type='entrada' THEN amount ELSE -amount END) AS balance
	FROM cashflow_entries
	GROUP BY strftime('%Y-%m', transaction_date);`,

	`CREATE VIEW IF NOT EXISTS method_flow AS
	SELECT
		method,
		SUM(CASE WHEN type='entrada' THEN amount ELSE 0 END) AS total_in,
		SUM(CASE WHEN type='saida' THEN amount ELSE 0 END) AS total_out,
		SUM(CASE WHEN type='entrada' THEN amount ELSE -amount END) AS balance
	FROM cashflow_entries
	GROUP BY method;`,

	// Annual aggregates income only. Kept as the product defines it.
	`CREATE VIEW IF NOT EXISTS annual_flow AS
	SELECT
		strftime('%Y', transaction_date) AS year,
		SUM(CASE WHEN type='entrada' THEN amount ELSE 0 END) AS total_in
	FROM cashflow_entries
	GROUP BY strftime('%Y', transaction_date);`,

	`CREATE VIEW IF NOT EXISTS cumulative_in AS
	SELECT
		DATE('now') AS date,
		SUM(amount) AS total
	FROM cashflow_entries
	WHERE type = 'entrada'
	AND DATE(transaction_date) <= DATE('now');`,

	`CREATE VIEW IF NOT EXISTS cumulative_out AS
	SELECT
		DATE('now') AS date,
		SUM(amount) AS total
	FROM cashflow_entries
	WHERE type = 'saida'
	AND DATE(transaction_date) <= DATE('now');`,

	// Unlike the two views above, the net summary spans the whole table.
	`CREATE VIEW IF NOT EXISTS cumulative_net AS
	SELECT
		DATE('now') AS date,
		SUM(CASE WHEN type='entrada' THEN amount ELSE 0 END) AS total_in,
		SUM(CASE WHEN type='saida' THEN amount ELSE 0 END) AS total_out,
		SUM(CASE WHEN type='entrada' THEN amount ELSE -amount END) AS balance
	FROM cashflow_entries;`,
}

// MigrateCashflowViews creates the aggregate views idempotently. Run once at
// process start, after the base table migration.
func MigrateCashflowViews(db *gorm.DB) error {
	for _, ddl := range cashflowViewDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

// DropCashflowViews removes every aggregate view. Paired with
// MigrateCashflowViews it gives operators a clean rebuild path after a
// schema change to the base table.
func DropCashflowViews(db *gorm.DB) error {
	for _, name := range cashflowViewNames {
		if err := db.Exec("DROP VIEW IF EXISTS " + name).Error; err != nil {
			return err
		}
	}
	return nil
}
