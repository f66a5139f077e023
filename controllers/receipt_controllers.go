package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GenerateReceipt renders a PDF receipt for a paid order.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	var order models.Order
	if err := rc.DB.Preload("OrderItems").Preload("Portal").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order %s is not paid yet", order.ReferenceID))
		return
	}

	portal := order.Portal
	portal.ApplySettingDefaults()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, portal.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Receipt "+order.ReferenceID, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, order.CreatedAt.Format(time.RFC1123), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Line items
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.OrderItems {
		pdf.CellFormat(90, 7, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", item.LineTotal()), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	totalRow := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f %s", amount, portal.Currency), "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", order.Subtotal, false)
	totalRow("Tax", order.Tax, false)
	totalRow("Delivery fee", order.DeliveryFee, false)
	if order.Tip > 0 {
		totalRow("Tip", order.Tip, false)
	}
	totalRow("Total", order.Total, true)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Paid via %s. Thank you for your order!", order.PaymentMethod), "", 1, "C", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", order.ReferenceID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error rendering receipt for order %s: %v", order.ReferenceID, err)
	}
}
