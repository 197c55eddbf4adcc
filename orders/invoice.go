package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"greennest/globals"
	"greennest/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// InvoiceQRPayload returns orderID|userID|timestamp|signature so a scanned
// invoice can be verified against the signing secret.
func InvoiceQRPayload(orderID, userID string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, time.Now().Unix())

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/orders/:id/invoice
func (h *Handler) PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Store.GetByID(ctx, ps.ByName("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("PrintInvoice error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if !CanView(order, utils.GetUserIDFromRequest(r), utils.IsAdminRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	qrPNG, err := qrcode.Encode(InvoiceQRPayload(order.OrderID, order.UserID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "GreenNest Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s / payment %s", order.Status, order.PaymentStatus))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(90, 7, "Item")
	pdf.Cell(25, 7, "Price")
	pdf.Cell(20, 7, "Qty")
	pdf.Cell(30, 7, "Line total")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(90, 7, item.Name)
		pdf.Cell(25, 7, fmt.Sprintf("%.2f", item.Price))
		pdf.Cell(20, 7, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f", utils.RoundCents(item.Price*float64(item.Quantity))))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.TotalAmount))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	addr := order.ShippingAddress
	pdf.Cell(0, 6, "Ship to:")
	pdf.Ln(5)
	pdf.Cell(0, 6, addr.Street)
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.Zip))
	pdf.Ln(5)
	pdf.Cell(0, 6, addr.Country)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
