package model

import (
	"time"
)

// Plan is a tenant's subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Tenant represents the tenant model stored in the database.
// Every note and user belongs to exactly one tenant; all reads and writes
// are partitioned by its ID.
type Tenant struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(100)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Plan      Plan      `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	NoteLimit int       `json:"note_limit" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quota returns the tenant's note quota as a tagged value. Pro tenants are
// unlimited regardless of the stored bound, so a stale NoteLimit column can
// never re-cap an upgraded tenant.
func (t *Tenant) Quota() NoteQuota {
	if t.Plan == PlanPro {
		return UnlimitedQuota()
	}
	return BoundedQuota(t.NoteLimit)
}

// NoteQuota is the per-tenant note creation allowance. The unlimited state is
// explicit rather than a sentinel bound.
type NoteQuota struct {
	unlimited bool
	max       int
}

func BoundedQuota(max int) NoteQuota {
	return NoteQuota{max: max}
}

func UnlimitedQuota() NoteQuota {
	return NoteQuota{unlimited: true}
}

// Unlimited reports whether the quota has no bound.
func (q NoteQuota) Unlimited() bool {
	return q.unlimited
}

// AllowsCreate decides whether one more note may be created given the current
// note count. The count must be taken inside the same critical section as the
// insert it gates.
func (q NoteQuota) AllowsCreate(current int64) bool {
	if q.unlimited {
		return true
	}
	return current < int64(q.max)
}
