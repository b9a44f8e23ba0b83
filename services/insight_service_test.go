package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// The insight feed's guarantees live in its WHERE clause: owner scoping,
// expiry exclusion, actionable-only. Assert the generated SQL carries them.

func insightRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "type", "actionable"}).
		AddRow(1, 7, "pattern", true)
}

func TestActiveInsightsFiltersExpiredAndNonActionable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewInsightService(db)

	mock.ExpectQuery(`SELECT \* FROM "ai_insights" WHERE user_id = \$1 AND \(expires_at IS NULL OR expires_at > \$2\) AND actionable = \$3`).
		WillReturnRows(insightRows())

	out, err := svc.ActiveInsights(7, "")
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveInsightsTypeFilter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewInsightService(db)

	mock.ExpectQuery(`SELECT \* FROM "ai_insights" WHERE user_id = \$1 AND \(expires_at IS NULL OR expires_at > \$2\) AND actionable = \$3 AND type = \$4`).
		WillReturnRows(insightRows())

	_, err := svc.ActiveInsights(7, "pattern")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByGoalScopesToOwnerAndGoal(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewInsightService(db)

	mock.ExpectQuery(`SELECT \* FROM "ai_insights" WHERE user_id = \$1 AND \(expires_at IS NULL OR expires_at > \$2\) AND \(related_goal_id = \$3 OR message ILIKE \$4\)`).
		WithArgs(uint(7), sqlmock.AnyArg(), uint(3), "%goal 3%").
		WillReturnRows(insightRows())

	_, err := svc.ByGoal(7, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
