package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = ts.data[i].(int)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}

	return nil
}

// TestRows implements the Rows interface over a fixed set of scanners.
type TestRows struct {
	rows    []*TestScanner
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	if tr.current >= len(tr.rows) {
		return false
	}
	tr.current++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.current-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func taskScanner(id, position int, status string, completedAt sql.NullString) *TestScanner {
	return &TestScanner{data: []interface{}{
		id, position, "task", status, "2025-07-02 16:05:25", completedAt,
	}}
}

func TestScanListRow(t *testing.T) {
	row, err := ScanListRow(&TestScanner{data: []interface{}{"Chores", 7}})
	require.NoError(t, err)
	assert.Equal(t, &listRow{Name: "Chores", NextID: 7}, row)

	_, err = ScanListRow(&TestScanner{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScanTaskRow(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *taskRow
		expectError bool
	}{
		{
			name:    "pending task",
			scanner: taskScanner(1, 0, "Pending", sql.NullString{}),
			expected: &taskRow{
				ID: 1, Position: 0, Description: "task", Status: "Pending",
				CreatedAt: "2025-07-02 16:05:25",
			},
		},
		{
			name:    "task with completion time",
			scanner: taskScanner(4, 2, "Completed", sql.NullString{String: "2025-07-03 08:00:00", Valid: true}),
			expected: &taskRow{
				ID: 4, Position: 2, Description: "task", Status: "Completed",
				CreatedAt:   "2025-07-02 16:05:25",
				CompletedAt: sql.NullString{String: "2025-07-03 08:00:00", Valid: true},
			},
		},
		{
			name:        "scan error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTaskRow(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTaskRows(t *testing.T) {
	t.Run("multiple rows", func(t *testing.T) {
		rows := &TestRows{rows: []*TestScanner{
			taskScanner(1, 0, "Pending", sql.NullString{}),
			taskScanner(3, 1, "Suspended", sql.NullString{}),
		}}

		result, err := ScanTaskRows(rows)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 1, result[0].ID)
		assert.Equal(t, 3, result[1].ID)
	})

	t.Run("no rows", func(t *testing.T) {
		result, err := ScanTaskRows(&TestRows{})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("row error", func(t *testing.T) {
		rows := &TestRows{rows: []*TestScanner{{err: errors.New("bad row")}}}
		_, err := ScanTaskRows(rows)
		assert.EqualError(t, err, "bad row")
	})

	t.Run("iteration error", func(t *testing.T) {
		rows := &TestRows{err: errors.New("cursor failed")}
		_, err := ScanTaskRows(rows)
		assert.EqualError(t, err, "cursor failed")
	})
}

func TestTaskRow_ToDomain(t *testing.T) {
	row := taskRow{
		ID: 2, Description: "Walk dog", Status: "Suspended", CreatedAt: "2025-07-02 16:05:25",
	}
	task := row.toDomain()
	assert.Equal(t, 2, task.ID)
	assert.Equal(t, "Walk dog", task.Description)
	assert.Equal(t, "Suspended", string(task.Status))
	assert.Nil(t, task.CompletedAt)

	back := taskRowFromDomain(5, task)
	assert.Equal(t, 5, back.Position)
	assert.Equal(t, row.Status, back.Status)
	assert.False(t, back.CompletedAt.Valid)
}
