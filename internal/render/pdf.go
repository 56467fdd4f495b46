package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/docket-service/internal/domain"
)

// DocketRenderer lays out the printable docket artifact.
type DocketRenderer struct {
	institution string
	logoPath    string
}

// NewDocketRenderer constructs a renderer.
func NewDocketRenderer(institution, logoPath string) *DocketRenderer {
	return &DocketRenderer{institution: institution, logoPath: logoPath}
}

// Filename returns the suggested download name for a rendered docket.
func Filename(studentNumber string, examType domain.ExamType) string {
	return fmt.Sprintf("%s_%s_Docket.pdf", studentNumber, examType)
}

const (
	marginX    = 15.0
	rowHeight  = 7.0
	sigColX    = 125.0
	pageBreakY = 250.0
)

// Render produces the docket PDF: institution header, exam-type title,
// student block, enumerated course table with one invigilator signature
// line per course, two signature lines and the QR image. Pure aside from
// reading the optional logo file.
func (r *DocketRenderer) Render(student *domain.Student, courses []domain.Course, examType domain.ExamType, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, marginX, 10, 35, 0, false, fpdf.ImageOptions{}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(centeredX(pdf, pageWidth, r.institution), 25, r.institution)

	title := fmt.Sprintf("%s DOCKET", strings.ToUpper(string(examType)))
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(centeredX(pdf, pageWidth, title), 35, title)

	pdf.SetFont("Helvetica", "", 12)
	y := 52.0
	pdf.Text(marginX, y, fmt.Sprintf("Name: %s %s", student.FirstName, student.LastName))
	pdf.Text(marginX, y+rowHeight, fmt.Sprintf("Student Number: %s", student.StudentNumber))
	pdf.Text(marginX, y+2*rowHeight, fmt.Sprintf("Programme: %s", student.ProgrammeName))

	y += 4 * rowHeight
	y = r.tableHeader(pdf, pageWidth, y)

	pdf.SetFont("Helvetica", "", 11)
	for _, course := range courses {
		pdf.Text(marginX, y, course.Name)
		pdf.Text(sigColX, y, "________________________")
		y += rowHeight
		if y > pageBreakY {
			pdf.AddPage()
			y = r.tableHeader(pdf, pageWidth, 30)
			pdf.SetFont("Helvetica", "", 11)
		}
	}

	y += 2 * rowHeight
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginX, y, "Verification Officer: ______________________")
	pdf.Text(sigColX, y, "Student Signature: ________________________")

	pdf.RegisterImageOptionsReader("docket-qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("docket-qr", pageWidth-60, pageHeight-70, 40, 40, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *DocketRenderer) tableHeader(pdf *fpdf.Fpdf, pageWidth, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(marginX, y, "Course Name")
	pdf.Text(sigColX, y, "Invigilator Signature")
	pdf.Line(marginX, y+2, pageWidth-marginX, y+2)
	return y + rowHeight + 2
}

func centeredX(pdf *fpdf.Fpdf, pageWidth float64, text string) float64 {
	return (pageWidth - pdf.GetStringWidth(text)) / 2
}
