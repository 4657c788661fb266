package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// OfferSheetPDF renders a search result as a printable offer sheet and
// returns the raw bytes.
func OfferSheetPDF(criteria SearchCriteria, set OfferSet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TravelHub", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Flight Offer Sheet", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	disclaimer := "This is NOT a booking confirmation. Prices are subject to change."
	if set.Synthetic() {
		disclaimer = "SAMPLE DATA: " + set.Warning()
	}
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Search ────────────────────────────────────────────────
	sectionHeader("Search")
	row("Route", fmt.Sprintf("%s -> %s", criteria.Origin, criteria.Destination))
	row("Date", fmtDateReadable(criteria.TravelDate))
	row("Passengers", fmt.Sprintf("%d", criteria.Passengers))
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Offers ────────────────────────────────────────────────
	offers := set.Offers()
	if len(offers) == 0 {
		sectionHeader("Offers")
		row("Result", "No offers found for this search")
	}
	for i, offer := range offers {
		sectionHeader(fmt.Sprintf("Offer %d", i+1))
		row("Total", fmt.Sprintf("%s %s", offer.Price.GrandTotal, offer.Price.Currency))
		for j, it := range offer.Itineraries {
			row(fmt.Sprintf("Itinerary %d", j+1), formatISODuration(it.Duration))
			for _, seg := range it.Segments {
				row("  "+seg.CarrierCode+seg.Number, formatSegment(seg))
			}
		}
		pdf.Ln(2)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TravelHub - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(t time.Time) string {
	return t.Format("02 Jan 2006 (Mon)")
}

func formatSegment(seg Segment) string {
	return fmt.Sprintf("%s %s -> %s %s",
		seg.Departure.IataCode, formatLocalTime(seg.Departure.At),
		seg.Arrival.IataCode, formatLocalTime(seg.Arrival.At))
}

// formatLocalTime handles the provider's zone-less timestamps (2026-10-20T10:00:00).
func formatLocalTime(at string) string {
	t, err := time.Parse("2006-01-02T15:04:05", at)
	if err != nil {
		return at
	}
	return t.Format("02 Jan 15:04")
}

// formatISODuration converts ISO 8601 durations (PT5H30M) to "5h 30m".
func formatISODuration(iso string) string {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return iso
	}
	var parts []string
	if h, after, found := strings.Cut(rest, "H"); found {
		parts = append(parts, h+"h")
		rest = after
	}
	if m, _, found := strings.Cut(rest, "M"); found {
		parts = append(parts, m+"m")
	}
	if len(parts) == 0 {
		return iso
	}
	return strings.Join(parts, " ")
}
