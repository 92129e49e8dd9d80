package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salesdash-backend/internal/audit"
	"salesdash-backend/internal/auth"
	"salesdash-backend/internal/database"
	"salesdash-backend/internal/models"
	"salesdash-backend/internal/reportparser"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ImportReportRequest struct {
	ReportText string `json:"report_text"`
}

type ImportReportResponse struct {
	Imported []reportparser.SalesData      `json:"imported"`
	Skipped  []reportparser.SkippedSegment `json:"skipped,omitempty"`
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "missing user claim")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "user not found")
	}

	return userID, user.Name, nil
}

func parseDateParam(c *fiber.Ctx) (time.Time, error) {
	d, err := time.Parse(dateLayout, c.Params("date"))
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
	}
	return d, nil
}

// upsertRecord writes one day's record inside tx, replacing any existing
// record for the same date. Children are always rewritten wholesale; a
// partial child update after a re-import would mix two reports.
func upsertRecord(tx *gorm.DB, rec *models.SalesRecord) error {
	var existing models.SalesRecord
	err := tx.Where("date = ?", rec.Date).First(&existing).Error
	switch {
	case err == nil:
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if err := tx.Where("sales_record_id = ?", existing.ID).Delete(&models.SalesPaymentMethod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sales_record_id = ?", existing.ID).Delete(&models.SalesPromotion{}).Error; err != nil {
			return err
		}
		return tx.Save(rec).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(rec).Error
	default:
		return err
	}
}

// -------------------------------------------------
// POST /api/sales-reports/import
// -------------------------------------------------
func ImportReportHandler(log *zap.Logger) fiber.Handler {
	parser := reportparser.New(log)

	return func(c *fiber.Ctx) error {
		var body ImportReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if strings.TrimSpace(body.ReportText) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "report_text is required")
		}

		result, err := parser.Parse(body.ReportText)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if len(result.Records) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "no day reports could be extracted from the text")
		}

		if err := reportparser.ValidateSalesData(result.Records); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		recs := make([]models.SalesRecord, 0, len(result.Records))
		for _, d := range result.Records {
			rec, err := toModel(d)
			if err != nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			recs = append(recs, rec)
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for i := range recs {
				if err := upsertRecord(tx, &recs[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error("sales report import failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to store sales records")
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			dates := make([]string, 0, len(result.Records))
			for _, d := range result.Records {
				dates = append(dates, d.Date)
			}
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sales_record",
				Action:      models.AuditActionImport,
				Description: fmt.Sprintf("Imported %d sales record(s), %d segment(s) skipped", len(result.Records), len(result.Skipped)),
				After:       dates,
			}); logErr != nil {
				log.Warn("audit log write failed", zap.Error(logErr))
			}
		}

		return c.Status(fiber.StatusCreated).JSON(ImportReportResponse{
			Imported: result.Records,
			Skipped:  result.Skipped,
		})
	}
}

// -------------------------------------------------
// GET /api/sales-records?from=2025-01-01&to=2025-01-31
// -------------------------------------------------
func ListSalesRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SalesRecord{}).
			Preload("PaymentMethods").
			Preload("Promotions")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse(dateLayout, fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse(dateLayout, toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
			}
			dbq = dbq.Where("date <= ?", to)
		}

		var recs []models.SalesRecord
		if err := dbq.Order("date asc").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list sales records")
		}

		resp := make([]reportparser.SalesData, 0, len(recs))
		for _, rec := range recs {
			resp = append(resp, toSalesData(rec))
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/sales-records/:date
// -------------------------------------------------
func GetSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c)
		if err != nil {
			return err
		}

		var rec models.SalesRecord
		if err := database.DB.
			Preload("PaymentMethods").
			Preload("Promotions").
			Where("date = ?", date).
			First(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no sales record for that date")
		}

		return c.JSON(toSalesData(rec))
	}
}

// -------------------------------------------------
// PUT /api/sales-records/:date
// -------------------------------------------------
func UpdateSalesRecordHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c)
		if err != nil {
			return err
		}

		var existing models.SalesRecord
		if err := database.DB.
			Preload("PaymentMethods").
			Preload("Promotions").
			Where("date = ?", date).
			First(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no sales record for that date")
		}

		var body reportparser.SalesData
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		// The path owns the date; derived totals are never taken from the
		// client.
		body.Date = date.Format(dateLayout)
		reportparser.ComputeDerived(&body)

		if err := reportparser.ValidateSalesData([]reportparser.SalesData{body}); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		rec, err := toModel(body)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		before := toSalesData(existing)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			return upsertRecord(tx, &rec)
		})
		if err != nil {
			log.Error("sales record update failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update sales record")
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sales_record",
				EntityID:    rec.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Updated sales record for %s", body.Date),
				Before:      before,
				After:       body,
			}); logErr != nil {
				log.Warn("audit log write failed", zap.Error(logErr))
			}
		}

		return c.JSON(body)
	}
}

// -------------------------------------------------
// DELETE /api/sales-records/:date
// -------------------------------------------------
func DeleteSalesRecordHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c)
		if err != nil {
			return err
		}

		var rec models.SalesRecord
		if err := database.DB.
			Preload("PaymentMethods").
			Preload("Promotions").
			Where("date = ?", date).
			First(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no sales record for that date")
		}

		if err := database.DB.Select("PaymentMethods", "Promotions").Delete(&rec).Error; err != nil {
			log.Error("sales record delete failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete sales record")
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sales_record",
				EntityID:    rec.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Deleted sales record for %s", rec.Date.Format(dateLayout)),
				Before:      toSalesData(rec),
			}); logErr != nil {
				log.Warn("audit log write failed", zap.Error(logErr))
			}
		}

		return c.JSON(fiber.Map{"deleted": rec.Date.Format(dateLayout)})
	}
}

// -------------------------------------------------
// DELETE /api/sales-records  (admin only)
// -------------------------------------------------
func ClearSalesRecordsHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		database.DB.Model(&models.SalesRecord{}).Count(&count)

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.SalesPaymentMethod{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.SalesPromotion{}).Error; err != nil {
				return err
			}
			return tx.Where("1 = 1").Delete(&models.SalesRecord{}).Error
		})
		if err != nil {
			log.Error("clearing sales records failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to clear sales records")
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sales_record",
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Cleared all sales records (%d deleted)", count),
			}); logErr != nil {
				log.Warn("audit log write failed", zap.Error(logErr))
			}
		}

		return c.JSON(fiber.Map{"deleted_count": count})
	}
}
