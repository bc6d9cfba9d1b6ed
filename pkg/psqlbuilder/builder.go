package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder is a squirrel statement builder pinned to PostgreSQL placeholders
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT statement with $N placeholders
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT statement with $N placeholders
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE statement with $N placeholders
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE statement with $N placeholders
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
