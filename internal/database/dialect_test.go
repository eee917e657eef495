package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("BoolValue", func(t *testing.T) {
		if dialect.BoolValue(true) != "1" || dialect.BoolValue(false) != "0" {
			t.Errorf("BoolValue() = %v/%v, want 1/0", dialect.BoolValue(true), dialect.BoolValue(false))
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("BoolValue", func(t *testing.T) {
		if dialect.BoolValue(true) != "TRUE" || dialect.BoolValue(false) != "FALSE" {
			t.Errorf("BoolValue() = %v/%v, want TRUE/FALSE", dialect.BoolValue(true), dialect.BoolValue(false))
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM parents WHERE id = ?",
			expected: "SELECT * FROM parents WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM parents WHERE id = ?",
			expected: "SELECT * FROM parents WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO parents (email, full_name) VALUES (?, ?)",
			expected: "INSERT INTO parents (email, full_name) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE children SET display_name = ?, age = ? WHERE id = ?",
			expected: "UPDATE children SET display_name = ?, age = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestInsertIgnore(t *testing.T) {
	query := "INSERT INTO child_artifacts (child_id, artifact_id) VALUES (?, ?)"

	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{
			name:     "SQLite uses INSERT OR IGNORE",
			dialect:  NewSQLiteDialect(),
			expected: "INSERT OR IGNORE INTO child_artifacts (child_id, artifact_id) VALUES (?, ?)",
		},
		{
			name:     "PostgreSQL appends ON CONFLICT DO NOTHING",
			dialect:  NewPostgresDialect(),
			expected: "INSERT INTO child_artifacts (child_id, artifact_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		},
		{
			name:     "MySQL uses INSERT IGNORE",
			dialect:  NewMySQLDialect(),
			expected: "INSERT IGNORE INTO child_artifacts (child_id, artifact_id) VALUES (?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.InsertIgnore(query)
			if result != tt.expected {
				t.Errorf("InsertIgnore() = %v, want %v", result, tt.expected)
			}
		})
	}
}
