package models

import "time"

const (
	KindDisperseETH   = "disperse_eth"
	KindDisperseERC20 = "disperse_erc20"
	KindCollectETH    = "collect_eth"
	KindCollectERC20  = "collect_erc20"
	KindApprove       = "approve"
)

// TxRecord is one broadcast transaction in the journal. Value is the native value in wei.
type TxRecord struct {
	ID        int64     `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	From      string    `db:"from_address" json:"from"`
	To        string    `db:"to_address" json:"to"`
	TxHash    string    `db:"tx_hash" json:"tx_hash"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
