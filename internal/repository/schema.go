package repository

import (
	"context"
	"fmt"

	"github.com/forgo/guildhall/internal/database"
)

// schema holds the table and index definitions the repositories rely on.
// Every statement is idempotent.
var schema = []string{
	`DEFINE TABLE IF NOT EXISTS guild SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS name ON guild TYPE string`,
	`DEFINE FIELD IF NOT EXISTS created_on ON guild TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_on ON guild TYPE datetime`,
	`DEFINE INDEX IF NOT EXISTS guild_name ON guild FIELDS name UNIQUE`,

	`DEFINE TABLE IF NOT EXISTS player SCHEMAFULL`,
	`DEFINE FIELD IF NOT EXISTS name ON player TYPE string`,
	`DEFINE FIELD IF NOT EXISTS class ON player TYPE string ASSERT $value IN ["WARRIOR", "MAGE", "CLERIC", "ARCHER"]`,
	`DEFINE FIELD IF NOT EXISTS experience ON player TYPE int ASSERT $value >= 0 AND $value <= 100`,
	`DEFINE FIELD IF NOT EXISTS guild ON player TYPE option<record<guild>>`,
	`DEFINE FIELD IF NOT EXISTS created_on ON player TYPE datetime`,
	`DEFINE FIELD IF NOT EXISTS updated_on ON player TYPE datetime`,
	`DEFINE INDEX IF NOT EXISTS player_name ON player FIELDS name UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS player_guild ON player FIELDS guild`,
}

// DefineSchema applies the schema to a connected database
func DefineSchema(ctx context.Context, db database.Database) error {
	for _, stmt := range schema {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("define schema: %w", err)
		}
	}
	return nil
}
