package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend_ftth/models"
	"backend_ftth/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestRouter создает тестовый роутер с middleware
func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Подкладываем тестовую базу вместо глобального подключения
	router.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})

	api := router.Group("/api")
	{
		api.GET("/items", GetItems)
		api.GET("/items/:id", GetItem)
		api.POST("/items", CreateItem)
		api.PUT("/items/:id", UpdateItem)
		api.DELETE("/items/:id", DeleteItem)
		api.GET("/items/:id/capacity", GetItemCapacity)
		api.POST("/items/:id/capacity/sync", SyncItemCapacity)

		api.GET("/routes", GetRoutes)
		api.GET("/routes/:id", GetRoute)
		api.POST("/routes", CreateRoute)
		api.PUT("/routes/:id", UpdateRoute)
		api.DELETE("/routes/:id", DeleteRoute)

		api.GET("/statistics", GetStatistics)
	}

	return router
}

// performRequest выполняет HTTP-запрос к тестовому роутеру
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performRawRequest выполняет заранее собранный запрос (с заголовками)
func performRawRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeItem извлекает элемент из конверта ответа
func decodeItem(t *testing.T, w *httptest.ResponseRecorder) models.Item {
	var response struct {
		Status string      `json:"status"`
		Data   models.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "success", response.Status)
	return response.Data
}

func TestCreateItem(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	t.Run("Создание элемента с обязательными полями", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"item_type_id": testutils.ItemTypeID(t, db, "OLT"),
			"name":         "OLT Центральный",
			"latitude":     -6.2088,
			"longitude":    106.8456,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		item := decodeItem(t, w)

		assert.Equal(t, "OLT Центральный", item.Name)
		assert.Equal(t, "distribution", item.CableType)
		assert.Equal(t, "active", item.Status)
		assert.Equal(t, 24, item.TotalCoreCapacity)
		assert.Equal(t, 0, item.CoreUsed)
		require.NotNil(t, item.ItemType)
		assert.Equal(t, "OLT", item.ItemType.Name)

		// Незаданные справочные поля должны остаться NULL, а не нулем
		assert.Nil(t, item.TubeColorID)
		assert.Nil(t, item.CoreColorID)
		assert.Nil(t, item.SplitterMainID)
		assert.Nil(t, item.SplitterOdpID)
	})

	t.Run("Пустые справочные поля нормализуются в NULL", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"item_type_id":     testutils.ItemTypeID(t, db, "ODP Pole"),
			"name":             "ODP-01",
			"latitude":         -6.21,
			"longitude":        106.85,
			"tube_color_id":    "",
			"core_color_id":    "0",
			"splitter_main_id": 0,
			"splitter_odp_id":  2,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		item := decodeItem(t, w)

		assert.Nil(t, item.TubeColorID)
		assert.Nil(t, item.CoreColorID)
		assert.Nil(t, item.SplitterMainID)
		assert.NotNil(t, item.SplitterOdpID)
	})

	t.Run("Ошибка при отсутствии обязательных полей", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"name": "Без типа и координат",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при несуществующем типе элемента", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"item_type_id": 99999,
			"name":         "Фантомный тип",
			"latitude":     -6.2,
			"longitude":    106.8,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при недопустимом типе кабеля", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"item_type_id":    testutils.ItemTypeID(t, db, "Pole"),
			"name":            "Опора",
			"latitude":        -6.2,
			"longitude":       106.8,
			"item_cable_type": "coaxial",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Поддержка старого имени поля item_type", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/items", gin.H{
			"item_type": fmt.Sprintf("%d", testutils.ItemTypeID(t, db, "Customer")),
			"name":      "Абонент 7",
			"latitude":  -6.22,
			"longitude": 106.86,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		item := decodeItem(t, w)
		require.NotNil(t, item.ItemType)
		assert.Equal(t, "Customer", item.ItemType.Name)
	})
}

func TestGetItems(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.20, 106.80)
	testutils.CreateTestItem(t, db, "Опора 2", "Pole", -6.21, 106.81)

	w := performRequest(router, "GET", "/api/items", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status string        `json:"status"`
		Data   []models.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
	for _, item := range response.Data {
		assert.NotNil(t, item.ItemType)
	}
}

func TestGetItem(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	created := testutils.CreateTestItem(t, db, "Муфта 3", "Joint Closure", -6.23, 106.82)

	t.Run("Получение существующего элемента", func(t *testing.T) {
		w := performRequest(router, "GET", fmt.Sprintf("/api/items/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		item := decodeItem(t, w)
		assert.Equal(t, created.ID, item.ID)
		assert.Equal(t, "Муфта 3", item.Name)
	})

	t.Run("404 для несуществующего элемента", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/items/99999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("400 для некорректного ID", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/items/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	created := testutils.CreateTestItem(t, db, "ODC-5", "ODC Pole", -6.24, 106.83)

	t.Run("Частичное обновление меняет только переданные поля", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/items/%d", created.ID), gin.H{
			"name":   "ODC-5 (перенесен)",
			"status": "maintenance",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		item := decodeItem(t, w)

		assert.Equal(t, "ODC-5 (перенесен)", item.Name)
		assert.Equal(t, "maintenance", item.Status)
		// Непереданные поля не тронуты
		require.NotNil(t, item.Latitude)
		assert.InDelta(t, -6.24, *item.Latitude, 1e-9)
		assert.Equal(t, 24, item.TotalCoreCapacity)
	})

	t.Run("Обнуление справочного поля пишет NULL", func(t *testing.T) {
		tubeColorID := uint(1)
		require.NoError(t, db.Model(&models.Item{}).
			Where("id = ?", created.ID).
			Update("tube_color_id", tubeColorID).Error)

		w := performRequest(router, "PUT", fmt.Sprintf("/api/items/%d", created.ID), gin.H{
			"tube_color_id": "",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		item := decodeItem(t, w)
		assert.Nil(t, item.TubeColorID)
	})

	t.Run("Ошибка при пустом наборе полей", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/items/%d", created.ID), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при недопустимом статусе", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/items/%d", created.ID), gin.H{
			"status": "deleted",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("404 для несуществующего элемента", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/items/99999", gin.H{"name": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 9", "Pole", -6.21, 106.81)
	customer := testutils.CreateTestItem(t, db, "Абонент 1", "Customer", -6.22, 106.82)

	routeToPole := testutils.CreateTestRoute(t, db, olt.ID, pole.ID, 24, 1200)
	routeToCustomer := testutils.CreateTestRoute(t, db, pole.ID, customer.ID, 4, 300)

	t.Run("Удаление элемента каскадно удаляет его маршруты", func(t *testing.T) {
		w := performRequest(router, "DELETE", fmt.Sprintf("/api/items/%d", pole.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response struct {
			Status string `json:"status"`
			Data   struct {
				DeletedRouteIDs []uint `json:"deleted_route_ids"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.ElementsMatch(t, []uint{routeToPole.ID, routeToCustomer.ID}, response.Data.DeletedRouteIDs)

		// Сам элемент удален
		var count int64
		require.NoError(t, db.Model(&models.Item{}).Where("id = ?", pole.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)

		// Маршруты с обоих направлений удалены
		require.NoError(t, db.Model(&models.CableRoute{}).
			Where("from_item_id = ? OR to_item_id = ?", pole.ID, pole.ID).
			Count(&count).Error)
		assert.Equal(t, int64(0), count)

		// Не связанные с элементом данные не тронуты
		require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("404 для несуществующего элемента", func(t *testing.T) {
		w := performRequest(router, "DELETE", "/api/items/99999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
