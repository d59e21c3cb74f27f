package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"employee-manager/internal/middleware"
	"employee-manager/internal/models"
	"employee-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the caller's employee records as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "First Name", "Last Name", "Email", "Position", "Salary", "Hire Date"}

func (h *ExportHandler) loadEmployees(userID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := h.DB.Scopes(models.OwnedBy(userID)).
		Order("created_at ASC, id ASC").
		Find(&employees).Error
	return employees, err
}

func exportRow(e *models.Employee) []string {
	hireDate := ""
	if !e.HireDate.IsZero() {
		hireDate = e.HireDate.Format("2006-01-02")
	}
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		e.FirstName,
		e.LastName,
		e.Email,
		e.Position,
		strconv.FormatFloat(e.Salary, 'f', 2, 64),
		hireDate,
	}
}

// ExportCSV streams the caller's employees as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	employees, err := h.loadEmployees(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query employees")
		return
	}

	filename := fmt.Sprintf("employees-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for i := range employees {
		_ = w.Write(exportRow(&employees[i]))
	}
	w.Flush()
}

// ExportXLSX writes the caller's employees as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	employees, err := h.loadEmployees(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query employees")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Employees"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build workbook")
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	for row := range employees {
		for col, val := range exportRow(&employees[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
