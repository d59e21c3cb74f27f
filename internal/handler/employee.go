package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"employee-manager/internal/middleware"
	"employee-manager/internal/models"
	"employee-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeHandler serves the owner-scoped employee CRUD. Every query is
// filtered through models.OwnedBy; create stamps the caller as owner.
type EmployeeHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewEmployeeHandler(db *gorm.DB, pageSize int) *EmployeeHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &EmployeeHandler{
		DB:       db,
		PageSize: pageSize,
	}
}

// ---------- request/response structs ----------

// no owner field here on purpose: the owner always comes from the token
type createEmployeeReq struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Position  string  `json:"position"`
	Salary    float64 `json:"salary"`
	HireDate  string  `json:"hireDate"`
}

type updateEmployeeReq struct {
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Email     *string  `json:"email"`
	Position  *string  `json:"position"`
	Salary    *float64 `json:"salary"`
	HireDate  *string  `json:"hireDate"`
}

type employeeResp struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	HireDate  time.Time `json:"hireDate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEmployeeResp(e *models.Employee) employeeResp {
	return employeeResp{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Position:  e.Position,
		Salary:    e.Salary,
		HireDate:  e.HireDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ---------- create ----------

func (h *EmployeeHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "first and last name are required")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateName("firstName", req.FirstName); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateName("lastName", req.LastName); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateSalary(req.Salary); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	hireDate, err := util.ParseHireDate(req.HireDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	employee := models.Employee{
		OwnerID:   user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Position:  req.Position,
		Salary:    req.Salary,
		HireDate:  hireDate,
	}

	if err := h.DB.Create(&employee).Error; err != nil {
		// employee email carries a unique index
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "employee email already exists")
		return
	}

	util.Created(c, util.Response{
		"employee": toEmployeeResp(&employee),
	})
}

// ---------- list ----------

// GetAll lists the caller's employees, newest first, paginated with
// page/limit query params.
func (h *EmployeeHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if limit <= 0 || limit > 100 {
		limit = h.PageSize
	}
	offset := (page - 1) * limit

	base := h.DB.Model(&models.Employee{}).Scopes(models.OwnedBy(user.ID))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query employees")
		return
	}

	var employees []models.Employee
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query employees")
		return
	}

	items := make([]employeeResp, 0, len(employees))
	for i := range employees {
		items = append(items, toEmployeeResp(&employees[i]))
	}

	util.Success(c, util.Response{
		"total":     total,
		"page":      page,
		"employees": items,
	})
}

// ---------- get by id ----------

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var employee models.Employee
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		First(&employee, id).Error; err != nil {
		h.notFoundOrServerErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"employee": toEmployeeResp(&employee),
	})
}

// ---------- update ----------

func (h *EmployeeHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req updateEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var employee models.Employee
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		First(&employee, id).Error; err != nil {
		h.notFoundOrServerErr(c, err)
		return
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if err := util.ValidateName("firstName", name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		employee.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if err := util.ValidateName("lastName", name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		employee.LastName = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := util.ValidateEmail(email); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		employee.Email = email
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Salary != nil {
		if err := util.ValidateSalary(*req.Salary); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		employee.Salary = *req.Salary
	}
	if req.HireDate != nil {
		hireDate, err := util.ParseHireDate(*req.HireDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		employee.HireDate = hireDate
	}

	if err := h.DB.Save(&employee).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save employee")
		return
	}

	util.Success(c, util.Response{
		"employee": toEmployeeResp(&employee),
	})
}

// ---------- delete ----------

func (h *EmployeeHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Scopes(models.OwnedBy(user.ID)).
		Delete(&models.Employee{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete employee")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "employee not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// ---------- search ----------

// Search matches q as a case-insensitive substring over names, email,
// position, and the text forms of salary and hire date. Always scoped to
// the caller's own records.
func (h *EmployeeHandler) Search(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		util.Success(c, util.Response{
			"employees": []employeeResp{},
		})
		return
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var employees []models.Employee
	err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where(h.DB.
			Where("LOWER(first_name) LIKE ?", pattern).
			Or("LOWER(last_name) LIKE ?", pattern).
			Or("LOWER(email) LIKE ?", pattern).
			Or("LOWER(position) LIKE ?", pattern).
			Or("CAST(salary AS TEXT) LIKE ?", pattern).
			Or("LOWER(CAST(hire_date AS TEXT)) LIKE ?", pattern)).
		Order("created_at DESC, id DESC").
		Find(&employees).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "search failed")
		return
	}

	items := make([]employeeResp, 0, len(employees))
	for i := range employees {
		items = append(items, toEmployeeResp(&employees[i]))
	}

	util.Success(c, util.Response{
		"employees": items,
	})
}

// ---------- helpers ----------

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// notFoundOrServerErr hides ownership misses behind the same 404 a
// genuinely nonexistent id produces.
func (h *EmployeeHandler) notFoundOrServerErr(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "employee not found")
		return
	}
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query employee")
}
