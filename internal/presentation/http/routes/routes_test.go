package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	appservices "github.com/MarajLabs/maraj-go/internal/application/services"
	persistence "github.com/MarajLabs/maraj-go/internal/infrastructure/persistence/catalog"

	"github.com/MarajLabs/maraj-go/internal/application/container"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/caching/stores"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/database"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	editorHash, err := bcrypt.GenerateFromPassword([]byte("editor-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	config.AdminPasswordHash = string(adminHash)
	config.EditorPasswordHash = string(editorHash)
	config.JWTSecret = "routes-test-secret"

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewTableCreator().CreateSchema(db))

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	cache := stores.NewCatalogStore()
	regionRepo := persistence.NewRegionRepository(db, cache, logger)
	streetRepo := persistence.NewStreetRepository(db, cache, logger)
	branchRepo := persistence.NewBranchRepository(db, cache, logger)
	productRepo := persistence.NewProductRepository(db, cache, logger)

	tracker := performance.NewTracker()
	consistency := appservices.NewConsistencyService(productRepo, branchRepo, logger, tracker)

	c := &container.Container{
		Logger:             logger,
		PerfTracker:        tracker,
		Cache:              cache,
		RegionRepo:         regionRepo,
		StreetRepo:         streetRepo,
		BranchRepo:         branchRepo,
		ProductRepo:        productRepo,
		AuthService:        appservices.NewAuthService(logger),
		RegionService:      appservices.NewRegionService(regionRepo, logger),
		StreetService:      appservices.NewStreetService(streetRepo, regionRepo, logger),
		BranchService:      appservices.NewBranchService(branchRepo, streetRepo, productRepo, consistency, logger),
		ProductService:     appservices.NewProductService(productRepo, logger),
		ConsistencyService: consistency,
		CatalogService: appservices.NewCatalogService(regionRepo, streetRepo, branchRepo, productRepo,
			language.English, logger, tracker),
	}

	r := gin.New()
	Register(r, c)
	return r
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, password string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/auth/login", "", `{"password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/auth/login", "", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/regions", "", `{"name":"Downtown"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/v1/regions", "", "")
	assert.Equal(t, http.StatusOK, w.Code, "reads stay public")
}

func TestRegionLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "editor-pass")

	w := do(r, http.MethodPost, "/api/v1/regions", token, `{"name":"Downtown","notes":"central"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var region struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &region))
	require.NotEmpty(t, region.ID)
	assert.Equal(t, "Downtown", region.Name)

	w = do(r, http.MethodPut, "/api/v1/regions/"+region.ID, token, `{"name":"Midtown"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/regions/"+region.ID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Midtown")

	w = do(r, http.MethodDelete, "/api/v1/regions/"+region.ID, token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/v1/regions/"+region.ID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentFlowArchivesOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "editor-pass")

	w := do(r, http.MethodPost, "/api/v1/products", token, `{"name":"Burger","category":"Food","price":10}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var product struct {
		ID         string `json:"id"`
		IsArchived bool   `json:"isArchived"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.True(t, product.IsArchived)

	w = do(r, http.MethodPost, "/api/v1/branches", token, `{"name":"Alpha"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var branch struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &branch))

	w = do(r, http.MethodPut, "/api/v1/branches/"+branch.ID+"/products", token,
		`{"productIds":["`+product.ID+`"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/products/"+product.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.False(t, product.IsArchived)

	// The catalog now shows exactly one row.
	w = do(r, http.MethodGet, "/api/v1/catalog", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Total)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	r := newTestRouter(t)

	editorToken := login(t, r, "editor-pass")
	w := do(r, http.MethodPost, "/api/v1/admin/reconcile", editorToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := login(t, r, "admin-pass")
	w = do(r, http.MethodPost, "/api/v1/admin/reconcile", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/admin/stats", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShareURLEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "editor-pass")

	w := do(r, http.MethodPost, "/api/v1/regions", token, `{"name":"Downtown"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/api/v1/catalog/url?region=downtown", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/products?region=downtown", resp.URL)
}
