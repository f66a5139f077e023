package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/controllers"
	"github.com/menuport/portal-app/middlewares"
	"github.com/menuport/portal-app/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewUserController(db)
	r.POST("/register", ctrl.Register)
	r.POST("/login", ctrl.Login)

	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", ctrl.GetProfile)
	auth.POST("/logout", ctrl.Logout)
	return r
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) string {
	w := doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name":     "Pat",
		"email":    email,
		"password": "hunter2hunter2",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"email":    email,
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := orderData(t, w)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestRegisterLoginProfile(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupUserRouter(db)

	token := registerAndLogin(t, r, "owner@example.com", "owner")

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	data := orderData(t, w)
	assert.Equal(t, "owner@example.com", data["email"])
	assert.Equal(t, "owner", data["role"])
}

func TestRegisterValidation(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupUserRouter(db)

	// Short password.
	w := doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name": "Pat", "email": "a@b.com", "password": "short", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role.
	w = doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name": "Pat", "email": "a@b.com", "password": "hunter2hunter2", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupUserRouter(db)

	registerAndLogin(t, r, "owner@example.com", "owner")

	w := doJSON(t, r, "POST", "/login", map[string]interface{}{
		"email": "owner@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupUserRouter(db)

	token := registerAndLogin(t, r, "owner@example.com", "owner")

	req, _ := http.NewRequest("POST", "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = doRequest(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	guarded := r.Group("/admin", fakeAuth(1, "kitchen"))
	guarded.GET("/owner-only", middlewares.RequireRole("owner"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	guarded.GET("/staff", middlewares.RequireRole("owner", "cashier", "kitchen"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/admin/owner-only", nil)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ = http.NewRequest("GET", "/admin/staff", nil)
	w = doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
