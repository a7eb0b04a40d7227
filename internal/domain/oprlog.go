package domain

import "time"

// OprLog records one operator action (checkout, product added, admin
// unlock) for audit purposes. Best-effort: a failed audit write never
// blocks the action it describes.
type OprLog struct {
	ID        int64     `csv:"id" json:"id,string"`
	OptAction string    `csv:"action" json:"opt_action"`
	OptDesc   string    `csv:"desc" json:"opt_desc"`
	OptTime   time.Time `csv:"time" json:"opt_time"`
}
