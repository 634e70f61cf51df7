package handlers

import (
	"encoding/json"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReceptionFixture(t *testing.T) (*ReceptionHandler, *gorm.DB, *models.User) {
	t.Helper()
	testDB := setupTestDB(t)
	for _, name := range []string{"Maria Souza", "João Pereira", "Ana Lima"} {
		require.NoError(t, testDB.Create(&models.Patient{Name: name}).Error)
		// created_at orders the list
		time.Sleep(2 * time.Millisecond)
	}
	user := createUser(t, testDB, "rita@hospital.test", "Senha!123", models.RoleReceptionist)
	h := NewReceptionHandler(newTestRegistry(t, testDB), services.NewPatientService(testDB), zap.NewNop())
	return h, testDB, user
}

func panelBody(t *testing.T, h *ReceptionHandler, user *models.User) string {
	t.Helper()
	_, c, rec := setupEcho(http.MethodGet, "/recepcionista/painel", nil)
	withSession(c, user, "sess-1")
	require.NoError(t, h.Panel(c))
	return rec.Body.String()
}

func waitForDashboard(t *testing.T, h *ReceptionHandler, user *models.User) string {
	t.Helper()
	var body string
	require.Eventually(t, func() bool {
		body = panelBody(t, h, user)
		return !strings.Contains(body, "hx-trigger")
	}, 2*time.Second, 10*time.Millisecond)
	return body
}

func TestReceptionPage(t *testing.T) {
	h, _, user := newReceptionFixture(t)

	_, c, rec := setupEcho(http.MethodGet, "/recepcionista", nil)
	withSession(c, user, "sess-1")
	require.NoError(t, h.Page(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, `id="reception-dashboard"`)
	assert.Contains(t, body, "Rita Recepção")
}

func TestReceptionPanelLoaded(t *testing.T) {
	h, _, user := newReceptionFixture(t)

	body := waitForDashboard(t, h, user)
	assert.Contains(t, body, "Dashboard de Recepção")
	assert.Contains(t, body, "Olá, Rita Recepção. Bem-vindo(a)!")
	assert.Contains(t, body, "Maria Souza")
	assert.Contains(t, body, "Ana Lima")
	// positions without a patient keep the template names
	assert.Contains(t, body, "Eduardo Martins")
	assert.Contains(t, body, "Roberto Almeida")
	assert.Contains(t, body, "Chegou: 11:25")
	assert.Contains(t, body, "bg-red-100 text-red-800")
	assert.Contains(t, body, "bg-purple-200 text-black")
	assert.Equal(t, 6, strings.Count(body, "data-queue-id="))
	assert.Equal(t, 3, strings.Count(body, "data-appointment-id="))
	for _, href := range []string{"/recepcionista/pacientes/novo", "/recepcionista/agendamentos/novo", "/recepcionista/check-in", "/recepcionista/acompanhantes/novo", "/recepcionista/agendamentos"} {
		assert.Contains(t, body, `href="`+href+`"`)
	}
	// 3 patients: today 6, appointments 9, waiting 1, upcoming 3
	assert.Contains(t, body, `<p class="text-3xl font-bold text-black">6</p>`)
	assert.Contains(t, body, `<p class="text-3xl font-bold text-black">9</p>`)
}

func TestReceptionPageReloadsPatients(t *testing.T) {
	h, testDB, user := newReceptionFixture(t)

	page := func() {
		_, c, rec := setupEcho(http.MethodGet, "/recepcionista", nil)
		withSession(c, user, "sess-1")
		require.NoError(t, h.Page(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	page()
	before := waitForDashboard(t, h, user)
	assert.Contains(t, before, "Camila Ferreira")
	assert.NotContains(t, before, "Carla Nunes")

	require.NoError(t, testDB.Create(&models.Patient{Name: "Carla Nunes"}).Error)

	page()
	after := waitForDashboard(t, h, user)
	assert.Contains(t, after, "Carla Nunes")
	assert.NotContains(t, after, "Camila Ferreira")
	// 4 patients: today 8
	assert.Contains(t, after, `<p class="text-3xl font-bold text-black">8</p>`)
}

func TestReceptionRefreshQueue(t *testing.T) {
	h, _, user := newReceptionFixture(t)
	before := waitForDashboard(t, h, user)

	_, c, rec := setupEcho(http.MethodPost, "/recepcionista/fila/atualizar", nil)
	withSession(c, user, "sess-1")
	require.NoError(t, h.RefreshQueue(c))

	assert.Contains(t, rec.Body.String(), "Carregando dados...")
	assert.Contains(t, rec.Body.String(), `hx-get="/recepcionista/painel"`)

	after := waitForDashboard(t, h, user)
	assert.Equal(t, before, after)
}

func TestReceptionSearch(t *testing.T) {
	h, _, user := newReceptionFixture(t)

	search := func(term string) string {
		form := url.Values{"term": {term}}.Encode()
		_, c, rec := setupEcho(http.MethodPost, "/recepcionista/busca", strings.NewReader(form))
		withSession(c, user, "sess-1")
		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	t.Run("Term", func(t *testing.T) {
		body := search("123.456.789-09")
		assert.Contains(t, body, "Buscando por: 123.456.789-09")
		assert.Contains(t, body, `name="term" value=""`)
	})

	t.Run("Blank", func(t *testing.T) {
		body := search("   ")
		assert.NotContains(t, body, "search-notice")
		assert.Contains(t, body, `name="term" value="   "`)
	})

	t.Run("Escaped", func(t *testing.T) {
		body := search("<b>Maria</b>")
		assert.Contains(t, body, "Buscando por: &lt;b&gt;Maria&lt;/b&gt;")
		assert.NotContains(t, body, "<b>Maria</b>")
	})
}

func TestReceptionWithoutSession(t *testing.T) {
	h, _, _ := newReceptionFixture(t)

	_, c, _ := setupEcho(http.MethodGet, "/recepcionista", nil)
	err := h.Page(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
}

func TestListPatients(t *testing.T) {
	h, _, user := newReceptionFixture(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/patients", nil)
	withSession(c, user, "sess-1")
	require.NoError(t, h.ListPatients(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var patients []models.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patients))
	require.Len(t, patients, 3)
	assert.Equal(t, "Maria Souza", patients[0].Name)
	assert.Equal(t, "Ana Lima", patients[2].Name)
}

func TestListPatientsEmpty(t *testing.T) {
	testDB := setupTestDB(t)
	h := NewReceptionHandler(newTestRegistry(t, testDB), services.NewPatientService(testDB), zap.NewNop())

	_, c, rec := setupEcho(http.MethodGet, "/api/patients", nil)
	require.NoError(t, h.ListPatients(c))
	assert.JSONEq(t, "[]", rec.Body.String())
}
