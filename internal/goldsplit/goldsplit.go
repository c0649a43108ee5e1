// Package goldsplit divides raid loot between party members after the market
// stamps are paid. Every member except the seller receives their share by
// transfer, and each transfer costs a small fee taken from the pool.
package goldsplit

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	CopperPerSilver = 100
	CopperPerGold   = 100 * CopperPerSilver

	// StampGold is the price of one market stamp.
	StampGold = 5
	// TransferFee is the share of each transfer lost to the mail fee.
	TransferFee = 0.003
)

var (
	ErrNoMembers      = errors.New("goldsplit: at least one member is required")
	ErrNegativeAmount = errors.New("goldsplit: amounts must not be negative")
	ErrStampsExceed   = errors.New("goldsplit: stamps cost more than the sale")
)

// Coins is an amount split into denominations.
type Coins struct {
	Gold   int64 `json:"gold"`
	Silver int64 `json:"silver"`
	Copper int64 `json:"copper"`
}

// Total returns the amount in copper.
func (c Coins) Total() int64 {
	return c.Gold*CopperPerGold + c.Silver*CopperPerSilver + c.Copper
}

// Normalize carries copper into silver and silver into gold.
func (c Coins) Normalize() Coins {
	t := c.Total()
	return Coins{Gold: t / CopperPerGold, Silver: t % CopperPerGold / CopperPerSilver, Copper: t % CopperPerSilver}
}

var printer = message.NewPrinter(language.English)

func (c Coins) String() string {
	return printer.Sprintf("%dg %ds %dc", c.Gold, c.Silver, c.Copper)
}

// Request is one sale to divide.
type Request struct {
	Sale    Coins `json:"sale"`
	Stamps  int64 `json:"stamps"`
	Members int   `json:"members"`
}

// Result is the per-member share and what was left to split.
type Result struct {
	Share Coins `json:"share"`
	Pool  int64 `json:"poolCopper"`
}

// Split returns each member's share. The pool after stamps is divided by
// members plus the fee of members-1 transfers, then floored per denomination.
func Split(r Request) (Result, error) {
	if r.Members < 1 {
		return Result{}, ErrNoMembers
	}
	if r.Sale.Gold < 0 || r.Sale.Silver < 0 || r.Sale.Copper < 0 || r.Stamps < 0 {
		return Result{}, ErrNegativeAmount
	}
	pool := r.Sale.Total() - r.Stamps*StampGold*CopperPerGold
	if pool < 0 {
		return Result{}, fmt.Errorf("%w: short by %d copper", ErrStampsExceed, -pool)
	}

	transfers := float64(r.Members - 1)
	share := float64(pool) / (float64(r.Members) + transfers*TransferFee)
	return Result{
		Share: Coins{
			Gold:   int64(math.Floor(share / CopperPerGold)),
			Silver: int64(math.Floor(math.Mod(share, CopperPerGold) / CopperPerSilver)),
			Copper: int64(math.Floor(math.Mod(share, CopperPerSilver))),
		},
		Pool: pool,
	}, nil
}
