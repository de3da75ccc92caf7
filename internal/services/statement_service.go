package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// StatementService renders the monthly settlement as a PDF statement for
// driver display and dispute resolution.
type StatementService struct {
	Settlement  SettlementService
	DriversRepo repositories.DriversRepository
	RequestID   string

	// Loader overrides data collection (tests).
	Loader func(driverID int64, year, month int) (Settlement, models.Driver, error)
}

func (s StatementService) GenerateStatement(driverID int64, year, month int) ([]byte, string, error) {
	settlement, driver, err := s.load(driverID, year, month)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "statement", "generate",
		fmt.Sprintf("driver_id=%d period=%d-%02d", driverID, year, month))
	return buildStatementPDF(settlement, driver)
}

func (s StatementService) load(driverID int64, year, month int) (Settlement, models.Driver, error) {
	if s.Loader != nil {
		return s.Loader(driverID, year, month)
	}
	settlement, err := s.Settlement.Settle(driverID, year, month)
	if err != nil {
		return Settlement{}, models.Driver{}, err
	}
	driver, err := s.driversRepo().GetByID(driverID)
	if err != nil {
		return Settlement{}, models.Driver{}, err
	}
	return settlement, driver, nil
}

func (s StatementService) driversRepo() repositories.DriversRepository {
	if s.DriversRepo.DB != nil {
		return s.DriversRepo
	}
	return repositories.DriversRepository{}
}

func buildStatementPDF(st Settlement, driver models.Driver) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Settlement Statement", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SETTLEMENT STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Driver     : %s (#%d)", safe(driver.Name, "-"), driver.ID),
		fmt.Sprintf("Periode    : %04d-%02d", st.Year, st.Month),
		fmt.Sprintf("Dicetak    : %s", utils.FormatDateTime(time.Now())),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 8, "Rincian")
	pdf.Cell(0, 8, "Jumlah")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range st.Lines {
		pdf.Cell(120, 7, line.Label)
		pdf.Cell(0, 7, utils.FormatRupiah(line.Amount))
		pdf.Ln(7)
	}

	if len(st.Penalties) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Daftar Penalti")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, p := range st.Penalties {
			pdf.Cell(120, 6, fmt.Sprintf("%s - %s", utils.FormatDate(p.ImposedAt), safe(p.Reason, "-")))
			pdf.Cell(0, 6, utils.FormatRupiah(-p.Amount))
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: statement ini dihitung ulang dari data trip dan kebijakan aktif. Hubungi admin untuk sengketa.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("SETTLEMENT_%d_%04d-%02d.pdf", driver.ID, st.Year, st.Month)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
