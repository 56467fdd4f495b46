package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spec-kit/docket-service/internal/domain"
)

func testStudent() *domain.Student {
	return &domain.Student{
		ID:            1,
		StudentNumber: "21001234",
		FirstName:     "Chipo",
		LastName:      "Banda",
		ProgrammeName: "BSc Computer Science",
	}
}

func TestFilename(t *testing.T) {
	got := Filename("21001234", domain.ExamTypeFinal)
	if got != "21001234_exam_Docket.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	qr, err := EncodeQR("21001234|exam|abc", 256)
	if err != nil {
		t.Fatalf("qr error: %v", err)
	}

	renderer := NewDocketRenderer("CAVENDISH UNIVERSITY ZAMBIA", "")
	courses := []domain.Course{
		{ID: 1, Name: "Operating Systems"},
		{ID: 2, Name: "Databases"},
	}

	pdf, err := renderer.Render(testStudent(), courses, domain.ExamTypeCA1, qr)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF: %q", pdf[:8])
	}
}

func TestRenderManyCoursesPaginates(t *testing.T) {
	qr, err := EncodeQR("21001234|ca1|abc", 256)
	if err != nil {
		t.Fatalf("qr error: %v", err)
	}

	var courses []domain.Course
	for i := 0; i < 60; i++ {
		courses = append(courses, domain.Course{ID: int64(i + 1), Name: fmt.Sprintf("Course %02d", i+1)})
	}

	renderer := NewDocketRenderer("CAVENDISH UNIVERSITY ZAMBIA", "")
	pdf, err := renderer.Render(testStudent(), courses, domain.ExamTypeCA1, qr)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty output")
	}
}
