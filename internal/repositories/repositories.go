package repositories

import "database/sql"

// nextSequence increments and returns the library sequence counter inside the
// given transaction. New entries take increasing sequence numbers; listing
// descends so the newest entry comes first.
func nextSequence(tx *sql.Tx) (int, error) {
	if _, err := tx.Exec("UPDATE library_sequence SET value = value + 1 WHERE id = 1"); err != nil {
		return 0, err
	}

	var seq int
	if err := tx.QueryRow("SELECT value FROM library_sequence WHERE id = 1").Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
