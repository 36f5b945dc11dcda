package frontend

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/fundusref/internal/core"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	config := core.DefaultConfig()
	coreService, err := core.NewCoreService(context.Background(), config)
	if err != nil {
		t.Fatalf("NewCoreService error: %v", err)
	}
	t.Cleanup(func() { _ = coreService.Close() })

	e := echo.New()
	NewFrontendService(config, coreService).SetRoutes(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func analyzeRequest(t *testing.T, image []byte, categories ...string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "fundus.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile error: %v", err)
	}
	_, _ = part.Write(image)
	for _, c := range categories {
		_ = writer.WriteField("category", c)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/htmx/analyze", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: 60, B: uint8(y * 5), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode error: %v", err)
	}
	return buf.Bytes()
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("expected body to contain %q", f)
		}
	}
}

func TestRootRedirect(t *testing.T) {
	rec := get(newTestServer(t), "/")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/"+MainPageName {
		t.Errorf("expected redirect to /%s, got %s", MainPageName, loc)
	}
}

func TestIndex_DefaultsToFirstDisease(t *testing.T) {
	rec := get(newTestServer(t), "/index.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		"When Additional Tests Are Recommended",
		`id="reference-diabetic-retinopathy"`,
		"<th>Decision Logic</th>",
		"American Academy of Ophthalmology (AAO)",
	)
}

func TestIndex_Selection(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/index.html?disease=glaucoma")
	assertContains(t, rec.Body.String(), "Cup-to-Disc Ratio (Vertical)")

	rec = get(e, "/index.html?view=additional-tests")
	assertContains(t, rec.Body.String(), `id="additional-tests"`)

	rec = get(e, "/index.html?disease=keratoconus")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown disease, got %d", rec.Code)
	}
}

func TestHtmxReference(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/htmx/reference?disease=cscr")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body, "Central Serous Chorioretinopathy (CSCR)", "Pigment Epithelial Detachment", "Measure elevation of RPE.")
	if n := strings.Count(body, "<tr><td>"); n != 1 {
		t.Errorf("expected exactly one table row, got %d", n)
	}

	rec = get(e, "/htmx/reference?disease=Age-Related%20Macular%20Degeneration")
	assertContains(t, rec.Body.String(), "Drusen Size")

	rec = get(e, "/htmx/reference?disease=")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing disease, got %d", rec.Code)
	}
}

func TestHtmxAdditionalTests(t *testing.T) {
	rec := get(newTestServer(t), "/htmx/additional-tests")
	assertContains(t, rec.Body.String(), "<strong>OCT:</strong>", "<strong>FA:</strong>", "<strong>OCTA:</strong>", "Retinopathy of Prematurity")
}

func TestAnalysisPage_ListsCategories(t *testing.T) {
	rec := get(newTestServer(t), "/analysis.html")
	body := rec.Body.String()
	if n := strings.Count(body, `name="category"`); n != len(core.Categories()) {
		t.Errorf("expected %d category options, got %d", len(core.Categories()), n)
	}
	assertContains(t, body, "Please upload an image to proceed.")
}

func TestHtmxAnalyze(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, analyzeRequest(t, testJPEG(t), "optic-disc", "macular", "rpe"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	assertContains(t, rec.Body.String(),
		"Uploaded Retinal Image",
		"data:image/png;base64,",
		"Cup-to-Disc Ratio (CDR): 0.4",
		"Detected Drusen",
		"Geographic Atrophy",
		"No automated analysis is available for RPE parameters.",
	)
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("expected no-cache headers on analysis results")
	}
}

func TestHtmxAnalyze_Errors(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"unknown category", analyzeRequest(t, testJPEG(t), "vascular", "choroid"), http.StatusBadRequest},
		{"not an image", analyzeRequest(t, []byte("%PDF-1.4"), "vascular"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, tt.req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if strings.Contains(rec.Body.String(), "data:image/png") {
				t.Error("expected no images in error response")
			}
		})
	}
}

func TestIcon(t *testing.T) {
	rec := get(newTestServer(t), "/icon.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/svg+xml" {
		t.Errorf("unexpected content type %q", ct)
	}
}
