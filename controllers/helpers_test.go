package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
	"github.com/mbuckingham74/moms-recipes-sub001/routes"
	"github.com/mbuckingham74/moms-recipes-sub001/services"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"
)

// setupAPI wires the full router against a fresh in-memory database,
// the same way main does against the real one.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "api-test-secret")
	t.Setenv("UPLOADS_DIR", t.TempDir())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// a second pool connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Tag{},
		&models.PendingRecipe{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	t.Cleanup(func() { sqlDB.Close() })

	return routes.SetupRouter()
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT(1, "mom", models.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func viewerToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT(2, "kid", models.RoleViewer)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func fetchCSRF(t *testing.T, r *gin.Engine) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("csrf-token returned %d", rr.Code)
	}
	var body struct {
		Token string `json:"csrf_token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode csrf response: %v", err)
	}
	return body.Token
}

// doJSON sends a JSON request through the router. Empty token or csrf
// leaves the matching header off.
func doJSON(t *testing.T, r *gin.Engine, method, path, token, csrf string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// doUpload sends one multipart file through the router.
func doUpload(t *testing.T, r *gin.Engine, path, token, csrf, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			img.Set(x, y, color.RGBA{R: 180, G: 90, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// fakeAI stands in for the Gemini client.
type fakeAI struct {
	estimate *services.CalorieEstimate
	parsed   *services.RecipeInput
	err      error

	gotIngredients []string
	gotServings    int
	gotText        string
}

func (f *fakeAI) EstimateCalories(ctx context.Context, ingredients []string, servings int) (*services.CalorieEstimate, error) {
	f.gotIngredients = ingredients
	f.gotServings = servings
	if f.err != nil {
		return nil, f.err
	}
	return f.estimate, nil
}

func (f *fakeAI) ParseRecipeText(ctx context.Context, text string) (*services.RecipeInput, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.parsed, nil
}

func (f *fakeAI) ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*services.RecipeInput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.parsed, nil
}
