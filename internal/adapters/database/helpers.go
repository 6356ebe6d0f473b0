package database

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with wildcards in term escaped
func containsPattern(term string) string {
	return fmt.Sprintf("%%%s%%", likeEscaper.Replace(strings.TrimSpace(term)))
}

// equalsFold compares a column to value case-insensitively
func equalsFold(column, value string) exp.BooleanExpression {
	return goqu.Func("LOWER", goqu.I(column)).Eq(strings.ToLower(strings.TrimSpace(value)))
}
