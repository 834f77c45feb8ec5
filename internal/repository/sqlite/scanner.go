package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanListRow scans the name and next id of the task list.
func ScanListRow(scanner Scanner) (*listRow, error) {
	row := &listRow{}
	if err := scanner.Scan(&row.Name, &row.NextID); err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTaskRow scans a single task from a database row
func ScanTaskRow(scanner Scanner) (*taskRow, error) {
	row := &taskRow{}
	err := scanner.Scan(
		&row.ID,
		&row.Position,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTaskRows scans every task row in order.
func ScanTaskRows(rows Rows) ([]*taskRow, error) {
	var tasks []*taskRow
	for rows.Next() {
		task, err := ScanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
