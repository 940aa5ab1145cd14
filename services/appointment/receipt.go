package appointment

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"medibook/models"
	"medibook/utils"

	"github.com/jung-kurt/gofpdf"
)

// Receipt renders a PDF receipt for an appointment owned by patientID.
func (s *DefaultAppointmentService) Receipt(ctx context.Context, patientID, appointmentID string) ([]byte, error) {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, utils.NewForbiddenError("Unauthorized action")
	}
	data, err := GenerateReceiptPDF(*appt)
	if err != nil {
		return nil, utils.NewInternalError("failed to render receipt", err)
	}
	return data, nil
}

// GenerateReceiptPDF lays out the appointment details on a single A4 page.
func GenerateReceiptPDF(appt models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Appointment Receipt", "", 1, "C", false, 0, "")
	pdf.SetY(pdf.GetY() + 5)

	addDetail(pdf, "Receipt No.", appt.ID)
	addDetail(pdf, "Patient", appt.PatientData.Name)
	addDetail(pdf, "Doctor", fmt.Sprintf("%s (%s)", appt.DoctorData.Name, appt.DoctorData.Speciality))
	addDetail(pdf, "Clinic", strings.TrimSpace(appt.DoctorData.Address.Line1+" "+appt.DoctorData.Address.Line2))
	addDetail(pdf, "Slot", strings.ReplaceAll(appt.SlotDate, "_", "/")+" "+appt.SlotTime)
	addDetail(pdf, "Amount", fmt.Sprintf("%.2f", appt.Amount))
	addDetail(pdf, "Status", receiptStatus(appt))
	if appt.PaymentID != "" {
		addDetail(pdf, "Payment Ref.", appt.PaymentID)
	}
	addDetail(pdf, "Booked On", appt.CreatedAt.Format("02 Jan 2006 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(45, 10, label, "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, value, "", 1, "", false, 0, "")
}

func receiptStatus(appt models.Appointment) string {
	var parts []string
	switch {
	case appt.Cancelled:
		parts = append(parts, "Cancelled")
	case appt.Completed:
		parts = append(parts, "Completed")
	default:
		parts = append(parts, "Scheduled")
	}
	if appt.Payment {
		parts = append(parts, "Paid")
	} else {
		parts = append(parts, "Unpaid")
	}
	return strings.Join(parts, ", ")
}
