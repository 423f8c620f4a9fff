// Package cashbook implements the flat cash/bank ledger.
package cashbook

import (
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

// Entry is one ledger row. Cash and bank amounts are signed; withdrawals are
// negative. There is no per-entry balance column, the running balance is the
// sum of all rows.
type Entry struct {
	ID        id.ID       `db:"id"`
	Date      time.Time   `db:"date"`
	Remark    string      `db:"remark"`
	Other     string      `db:"other"`
	Cash      types.Money `db:"cash"`
	Bank      types.Money `db:"bank"`
	UserName  string      `db:"user_name"`
	CreatedAt time.Time   `db:"created_at"`
}

// Totals is the ledger-wide running balance.
type Totals struct {
	Cash types.Money `db:"cash"`
	Bank types.Money `db:"bank"`
}
