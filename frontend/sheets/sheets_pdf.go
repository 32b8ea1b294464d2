package sheets

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"strconv"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"keepstock/frontend/shared/html"
	"keepstock/infrastructure/keepstock"
	"keepstock/models"
)

// renderBoxSheetsPDF builds one content sheet per box: barcode of the box id,
// the box header and a checklist of its items.
func renderBoxSheetsPDF(boxes []models.Box, printedAt time.Time) ([]byte, error) {
	if len(boxes) == 0 {
		return nil, fmt.Errorf("no boxes to print")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Box Content Sheets", false)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, box := range boxes {
		if err := addBoxSheetPage(pdf, tr, box, printedAt, i); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func addBoxSheetPage(pdf *gofpdf.Fpdf, tr func(string) string, box models.Box, printedAt time.Time, pageIndex int) error {
	// Ids made before ASCII folding may still carry accents; the barcode
	// then holds the folded form and the printed id stays exact.
	barcodePNG, err := renderCode128PNG(keepstock.ASCIIFold(box.ID), 1200, 220)
	if err != nil {
		slog.Warn("box sheet without barcode", slog.String("box_id", box.ID), slog.Any("err", err))
		barcodePNG = nil
	}

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	pdf.SetFont("Helvetica", "B", 30)
	pdf.CellFormat(contentW*0.5, 14, "BOX "+box.Number, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW*0.5, 14, "Printed: "+printedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(contentW/2, 8, tr("Branch: "+box.Branch), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 8, "Category: "+box.Category, "", 1, "R", false, 0, "")

	if barcodePNG != nil {
		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		imageName := "box-barcode-" + strconv.Itoa(pageIndex)
		pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
		imgW := 120.0
		imgH := 24.0
		y := pdf.GetY() + 4
		pdf.ImageOptions(imageName, (pageW-imgW)/2, y, imgW, imgH, false, opt, 0, "")
		pdf.SetY(y + imgH + 1)
	} else {
		pdf.Ln(4)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(box.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{contentW * 0.18, contentW * 0.40, contentW * 0.12, contentW * 0.20, contentW * 0.10}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"SKU", "Product Name", "Qty", "Price", "Check"} {
		align := "L"
		if i >= 2 {
			align = "C"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	if len(box.Items) == 0 {
		pdf.CellFormat(contentW, 8, "Box is empty", "1", 1, "C", false, 0, "")
	}
	for _, item := range box.Items {
		nameFont := fitFontSizeForWidth(pdf, "Helvetica", "", 11, 7, tr(item.Name), widths[1]-2)
		pdf.CellFormat(widths[0], 8, tr(item.SKU), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", nameFont)
		pdf.CellFormat(widths[1], 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(widths[2], 8, strconv.FormatInt(item.Quantity, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, html.Rupiah(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, "", "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 8, strconv.FormatInt(box.TotalQuantity(), 10), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3]+widths[4], 8, "", "1", 1, "", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "Checked by: ____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Date: ______________", "", 1, "R", false, 0, "")
	return nil
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
