// Package analytics summarizes the member collection for the dashboard.
package analytics

import (
	"strings"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
)

// Tiers by member id prefix
const (
	TierBasic    = "Basic"
	TierDeluxe   = "Deluxe"
	TierUltimate = "Ultimate"
	TierOther    = "Other"
)

// Statuses combine the active and payment flags
const (
	StatusActivePaid         = "Active & Paid"
	StatusActivePaymentDue   = "Active & Payment Due"
	StatusInactivePaid       = "Inactive & Paid"
	StatusInactivePaymentDue = "Inactive & Payment Due"
)

var tierByPrefix = map[string]string{
	"B": TierBasic,
	"D": TierDeluxe,
	"U": TierUltimate,
}

type Summary struct {
	Total    int            `json:"total"`
	ByTier   map[string]int `json:"byTier"`
	ByStatus map[string]int `json:"byStatus"`
}

// Summarize counts members per tier and per status. Every known tier and status
// is present in the result, with zero when no member falls into it.
func Summarize(members []model.Member) Summary {
	summary := Summary{
		Total: len(members),
		ByTier: map[string]int{
			TierBasic:    0,
			TierDeluxe:   0,
			TierUltimate: 0,
			TierOther:    0,
		},
		ByStatus: map[string]int{
			StatusActivePaid:         0,
			StatusActivePaymentDue:   0,
			StatusInactivePaid:       0,
			StatusInactivePaymentDue: 0,
		},
	}

	for _, m := range members {
		summary.ByTier[Tier(m.ID)]++
		summary.ByStatus[Status(m)]++
	}

	return summary
}

// Tier maps the id prefix letter to a membership tier
func Tier(id string) string {
	if id == "" {
		return TierOther
	}
	if tier, ok := tierByPrefix[strings.ToUpper(id[:1])]; ok {
		return tier
	}
	return TierOther
}

func Status(m model.Member) string {
	switch {
	case m.IsActive && m.ValidPayment:
		return StatusActivePaid
	case m.IsActive:
		return StatusActivePaymentDue
	case m.ValidPayment:
		return StatusInactivePaid
	default:
		return StatusInactivePaymentDue
	}
}
