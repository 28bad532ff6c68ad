package sqldb_test

import (
	"github.com/jmoiron/sqlx"
	"github.com/veltrip/platform/business/sdk/sqldb"
)

// The route wiring hands handlers a Beginner built from the raw sqlx handle.
// These assertions keep the adapter chain intact.
var (
	_ sqldb.Beginner         = sqldb.NewBeginner(&sqlx.DB{})
	_ sqldb.CommitRollbacker = &sqlx.Tx{}
)
