package repositories

import "fmt"

// nextID returns max(column)+1, or first when the table is empty or below first.
// Callers run it inside the transaction that inserts the row.
func nextID(executor SQLExecutor, table, column string, first int64) (int64, error) {
	var maxID int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", column, table)
	if err := executor.Get(&maxID, query); err != nil {
		return 0, fmt.Errorf("%w: reading next %s.%s: %v", ErrDatabaseError, table, column, err)
	}
	if maxID < first {
		return first, nil
	}
	return maxID + 1, nil
}

// nextSequenceID allocates from the id_sequences row for table. Unlike
// nextID it never hands out an id again after the row holding it is
// deleted, so history keyed by that id stays with its original owner.
// The counter is raised to nextID when rows already exist above it.
func nextSequenceID(executor SQLExecutor, table, column string, first int64) (int64, error) {
	floor, err := nextID(executor, table, column, first)
	if err != nil {
		return 0, err
	}

	res, err := executor.Exec(`UPDATE id_sequences
	                           SET last_id = CASE WHEN last_id + 1 > $1 THEN last_id + 1 ELSE $1 END
	                           WHERE name = $2`, floor, table)
	if err != nil {
		return 0, fmt.Errorf("%w: advancing %s sequence: %v", ErrDatabaseError, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: advancing %s sequence: %v", ErrDatabaseError, table, err)
	}
	if n == 0 {
		if _, err := executor.Exec(`INSERT INTO id_sequences (name, last_id) VALUES ($1, $2)`, table, floor); err != nil {
			return 0, wrapWriteErr(err, fmt.Sprintf("starting %s sequence", table))
		}
		return floor, nil
	}

	var id int64
	if err := executor.Get(&id, `SELECT last_id FROM id_sequences WHERE name = $1`, table); err != nil {
		return 0, fmt.Errorf("%w: reading %s sequence: %v", ErrDatabaseError, table, err)
	}
	return id, nil
}
