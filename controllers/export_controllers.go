package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

var exportHeader = []string{
	"ID", "Date", "Time", "Customer Name", "Email", "Phone", "Party Size",
	"Table", "Status", "Notes", "Created At", "Updated At",
}

// ExportBookings -> CSV download for ?start_date=&end_date=[&status=]
func (bc *BookingController) ExportBookings(c *gin.Context) {
	start := c.Query("start_date")
	end := c.DefaultQuery("end_date", start)
	status := c.Query("status")

	bookings, err := bc.Bookings.ExportBookings(start, end, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)
	for _, b := range bookings {
		_ = w.Write(exportRow(b))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Exported %d bookings (%s to %s)", len(bookings), start, end)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(start, end, status)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportRow(b models.Booking) []string {
	table := b.TableLabel()
	if table == "" {
		table = "TBD"
	}
	updated := b.UpdatedAt
	if updated.IsZero() {
		updated = b.CreatedAt
	}
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.Date,
		b.Time,
		b.CustomerName,
		b.Email,
		b.Phone,
		strconv.Itoa(b.PartySize),
		table,
		statusLabel(b.Status),
		b.Notes,
		b.CreatedAt.UTC().Format(time.DateTime),
		updated.UTC().Format(time.DateTime),
	}
}

// statusLabel turns no_show into "No show".
func statusLabel(status string) string {
	label := strings.ReplaceAll(status, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func exportFilename(start, end, status string) string {
	name := "bookings_" + start
	if end != start {
		name += "_to_" + end
	}
	if status != "" {
		name += "_" + status
	}
	return name + ".csv"
}
