package services

import (
	"fmt"
	"time"

	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"
)

// SettlementService combines a month's earnings output with penalty totals
// into a net payable figure. Pure read/compute; persisting a finalized
// settlement is the payout collaborator's job.
type SettlementService struct {
	Earnings      EarningsService
	PenaltiesRepo repositories.PenaltiesRepository
	RequestID     string

	// FetchPenalties overrides the penalty lookup (tests).
	FetchPenalties func(driverID int64, from, to time.Time) ([]models.Penalty, error)
}

// SettlementLine is one row of the driver-facing breakdown; deductions carry
// negative amounts so the lines sum to the net.
type SettlementLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type Settlement struct {
	DriverID        int64            `json:"driver_id"`
	Year            int              `json:"year"`
	Month           int              `json:"month"`
	MonthlyEarnings int64            `json:"monthly_earnings"`
	MonthlyBonus    int64            `json:"monthly_bonus"`
	TotalPenalties  int64            `json:"total_penalties"`
	PolicyCut       int64            `json:"policy_cut"`
	NetEarnings     int64            `json:"net_earnings"`
	Lines           []SettlementLine `json:"lines"`
	Penalties       []models.Penalty `json:"penalties"`
}

// Settle computes net = earnings + bonus - penalties - policy cut for one
// driver and calendar month, with the line items mirroring that formula.
func (s SettlementService) Settle(driverID int64, year, month int) (Settlement, error) {
	stats, err := s.Earnings.MonthlyStats(driverID, year, month)
	if err != nil {
		return Settlement{}, err
	}

	from, to := utils.MonthWindow(year, month)
	penalties, err := s.fetchPenalties(driverID, from, to)
	if err != nil {
		return Settlement{}, err
	}

	var totalPenalties int64
	for _, p := range penalties {
		totalPenalties += p.Amount
	}

	net := stats.Revenue + stats.Bonus - totalPenalties - stats.Deduction

	lines := []SettlementLine{
		{Label: "Pendapatan bulan berjalan", Amount: stats.Revenue},
		{Label: "Bonus bulanan", Amount: stats.Bonus},
		{Label: "Penalti", Amount: -totalPenalties},
		{Label: "Potongan kebijakan", Amount: -stats.Deduction},
		{Label: "Netto diterima", Amount: net},
	}

	utils.LogEvent(s.RequestID, "settlement", "settle",
		fmt.Sprintf("driver_id=%d period=%d-%02d net=%d", driverID, year, month, net))

	return Settlement{
		DriverID:        driverID,
		Year:            year,
		Month:           month,
		MonthlyEarnings: stats.Revenue,
		MonthlyBonus:    stats.Bonus,
		TotalPenalties:  totalPenalties,
		PolicyCut:       stats.Deduction,
		NetEarnings:     net,
		Lines:           lines,
		Penalties:       penalties,
	}, nil
}

func (s SettlementService) fetchPenalties(driverID int64, from, to time.Time) ([]models.Penalty, error) {
	if s.FetchPenalties != nil {
		return s.FetchPenalties(driverID, from, to)
	}
	return s.PenaltiesRepo.ListForPeriod(driverID, from, to)
}
