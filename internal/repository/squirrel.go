package repository

import sq "github.com/Masterminds/squirrel"

// qb is the shared Squirrel statement builder configured for SQLite question-mark placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)
