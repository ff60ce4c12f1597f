package database

// schema is portable between PostgreSQL and SQLite: identifiers are assigned
// by the repositories, dates are ISO strings and money is NUMERIC.
// id_sequences keeps the last id handed out for tables whose rows can be
// deleted.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS id_sequences (
		name    TEXT PRIMARY KEY,
		last_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_accounts (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS staff_accounts (
		username          TEXT PRIMARY KEY,
		password_hash     TEXT NOT NULL,
		name              TEXT NOT NULL,
		phone             TEXT NOT NULL DEFAULT '',
		address           TEXT NOT NULL DEFAULT '',
		dob               TEXT NOT NULL DEFAULT '',
		gender            TEXT NOT NULL DEFAULT '',
		salary            NUMERIC(12,2) NOT NULL DEFAULT 0,
		next_of_kin_name  TEXT NOT NULL DEFAULT '',
		next_of_kin_phone TEXT NOT NULL DEFAULT '',
		privileges        TEXT NOT NULL DEFAULT '',
		staff_type        TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS packages (
		id              BIGINT PRIMARY KEY,
		name            TEXT NOT NULL UNIQUE,
		price           NUMERIC(12,2) NOT NULL,
		duration_months INTEGER NOT NULL,
		trainers        BOOLEAN NOT NULL DEFAULT FALSE,
		cardio_access   BOOLEAN NOT NULL DEFAULT FALSE,
		sauna_access    BOOLEAN NOT NULL DEFAULT FALSE,
		steam_room      BOOLEAN NOT NULL DEFAULT FALSE,
		timings         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		member_id          BIGINT PRIMARY KEY,
		name               TEXT NOT NULL,
		phone              TEXT NOT NULL DEFAULT '',
		address            TEXT NOT NULL DEFAULT '',
		dob                TEXT NOT NULL DEFAULT '',
		gender             TEXT NOT NULL DEFAULT '',
		next_of_kin_name   TEXT NOT NULL DEFAULT '',
		next_of_kin_phone  TEXT NOT NULL DEFAULT '',
		medical_conditions TEXT NOT NULL DEFAULT '',
		weight             TEXT NOT NULL DEFAULT '',
		height             TEXT NOT NULL DEFAULT '',
		package_id         BIGINT NOT NULL,
		join_date          TEXT NOT NULL,
		expiry_date        TEXT,
		status             TEXT NOT NULL,
		payment_status     TEXT NOT NULL,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_members_package ON members (package_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id               BIGINT PRIMARY KEY,
		member_id        BIGINT NOT NULL,
		member_name      TEXT NOT NULL,
		package_id       BIGINT NOT NULL,
		package_name     TEXT NOT NULL,
		base_amount      NUMERIC(12,2) NOT NULL,
		additional_cost  NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
		amount           NUMERIC(12,2) NOT NULL,
		payment_date     TEXT NOT NULL,
		status           TEXT NOT NULL,
		comments         TEXT NOT NULL DEFAULT '',
		recorded_by      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_date ON payments (payment_date)`,
	`CREATE TABLE IF NOT EXISTS member_attendance (
		member_id       BIGINT NOT NULL,
		attendance_date TEXT NOT NULL,
		check_in        TEXT NOT NULL,
		check_out       TEXT,
		PRIMARY KEY (member_id, attendance_date)
	)`,
	`CREATE TABLE IF NOT EXISTS staff_attendance (
		username        TEXT NOT NULL,
		attendance_date TEXT NOT NULL,
		check_in        TEXT NOT NULL,
		check_out       TEXT,
		PRIMARY KEY (username, attendance_date)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                 BIGINT PRIMARY KEY,
		stock_type         TEXT NOT NULL,
		servings           INTEGER NOT NULL CHECK (servings >= 0),
		cost_per_serving   NUMERIC(12,2) NOT NULL,
		profit_per_serving NUMERIC(12,2) NOT NULL,
		other_charges      NUMERIC(12,2) NOT NULL DEFAULT 0,
		date_added         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id                BIGINT PRIMARY KEY,
		inventory_item_id BIGINT NOT NULL,
		movement_type     TEXT NOT NULL,
		quantity_changed  INTEGER NOT NULL,
		reason            TEXT NOT NULL DEFAULT '',
		recorded_by       TEXT NOT NULL DEFAULT '',
		movement_date     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_item ON stock_movements (inventory_item_id)`,
	`CREATE TABLE IF NOT EXISTS custom_products (
		product_id   BIGINT PRIMARY KEY,
		product_name TEXT NOT NULL,
		final_price  NUMERIC(12,2) NOT NULL,
		total_cost   NUMERIC(12,2) NOT NULL,
		profit       NUMERIC(12,2) NOT NULL,
		created_by   TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_product_ingredients (
		product_id        BIGINT NOT NULL,
		line_no           INTEGER NOT NULL,
		inventory_item_id BIGINT NOT NULL,
		quantity          INTEGER NOT NULL CHECK (quantity > 0),
		unit_cost         NUMERIC(12,2) NOT NULL,
		PRIMARY KEY (product_id, line_no)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ingredients_item ON custom_product_ingredients (inventory_item_id)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             BIGINT PRIMARY KEY,
		sale_date      TEXT NOT NULL,
		staff_username TEXT NOT NULL,
		staff_name     TEXT NOT NULL DEFAULT '',
		total_amount   NUMERIC(12,2) NOT NULL,
		payment_method TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (sale_date)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		sale_id      BIGINT NOT NULL,
		line_no      INTEGER NOT NULL,
		product_type TEXT NOT NULL,
		product_id   BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL,
		unit_price   NUMERIC(12,2) NOT NULL,
		line_total   NUMERIC(12,2) NOT NULL,
		PRIMARY KEY (sale_id, line_no)
	)`,
}
