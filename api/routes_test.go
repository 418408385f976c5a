package api

import (
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
)

// decodeRoute извлекает маршрут из конверта ответа
func decodeRoute(t *testing.T, w *httptest.ResponseRecorder) models.CableRoute {
	var response struct {
		Status string            `json:"status"`
		Data   models.CableRoute `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "success", response.Status)
	return response.Data
}

func TestCreateRoute(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.21, 106.81)

	t.Run("Создание маршрута со значениями по умолчанию", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id": olt.ID,
			"to_item_id":   pole.ID,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		route := decodeRoute(t, w)

		assert.Equal(t, olt.ID, route.FromItemID)
		assert.Equal(t, pole.ID, route.ToItemID)
		assert.Equal(t, 24, route.CoreCount)
		assert.Equal(t, "planned", route.Status)
		require.NotNil(t, route.FromItem)
		require.NotNil(t, route.ToItem)
		assert.Equal(t, "OLT-1", route.FromItem.Name)
		assert.Equal(t, "Опора 1", route.ToItem.Name)
	})

	t.Run("Создание маршрута с трассой и длиной", func(t *testing.T) {
		coordinates := `[[-6.20,106.80],[-6.205,106.805],[-6.21,106.81]]`
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id":      olt.ID,
			"to_item_id":        pole.ID,
			"route_coordinates": coordinates,
			"distance":          1523.7,
			"cable_type":        "ADSS 24F",
			"core_count":        48,
			"status":            "installed",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		route := decodeRoute(t, w)

		assert.Equal(t, coordinates, route.RouteCoordinates)
		require.NotNil(t, route.Distance)
		assert.InDelta(t, 1523.7, *route.Distance, 1e-9)
		assert.Equal(t, "ADSS 24F", route.CableType)
		assert.Equal(t, 48, route.CoreCount)
		assert.Equal(t, "installed", route.Status)
	})

	t.Run("Ошибка при совпадающих концах", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id": olt.ID,
			"to_item_id":   olt.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при несуществующем конце", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id": olt.ID,
			"to_item_id":   99999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при нестандартном количестве жил", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id": olt.ID,
			"to_item_id":   pole.ID,
			"core_count":   10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при отрицательной длине", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/routes", gin.H{
			"from_item_id": olt.ID,
			"to_item_id":   pole.ID,
			"distance":     -5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRoutes(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.21, 106.81)
	customer := testutils.CreateTestItem(t, db, "Абонент 1", "Customer", -6.22, 106.82)

	testutils.CreateTestRoute(t, db, olt.ID, pole.ID, 24, 1000)
	testutils.CreateTestRoute(t, db, pole.ID, customer.ID, 4, 250)

	w := performRequest(router, "GET", "/api/routes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status string              `json:"status"`
		Data   []models.CableRoute `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
	for _, route := range response.Data {
		assert.NotNil(t, route.FromItem)
		assert.NotNil(t, route.ToItem)
	}
}

func TestUpdateRoute(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.21, 106.81)
	route := testutils.CreateTestRoute(t, db, olt.ID, pole.ID, 4, 800)

	t.Run("Частичное обновление статуса и жил", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/routes/%d", route.ID), gin.H{
			"core_count": 8,
			"status":     "installed",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decodeRoute(t, w)

		assert.Equal(t, 8, updated.CoreCount)
		assert.Equal(t, "installed", updated.Status)
		// Концы и длина не тронуты
		assert.Equal(t, olt.ID, updated.FromItemID)
		require.NotNil(t, updated.Distance)
		assert.InDelta(t, 800, *updated.Distance, 1e-9)
	})

	t.Run("Ошибка при недопустимом статусе", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/routes/%d", route.ID), gin.H{
			"status": "active",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Ошибка при пустом наборе полей", func(t *testing.T) {
		w := performRequest(router, "PUT", fmt.Sprintf("/api/routes/%d", route.ID), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("404 для несуществующего маршрута", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/routes/99999", gin.H{"status": "planned"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteRoute(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupTestRouter(db)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.21, 106.81)
	route := testutils.CreateTestRoute(t, db, olt.ID, pole.ID, 24, 1000)

	t.Run("Удаление маршрута не трогает элементы", func(t *testing.T) {
		w := performRequest(router, "DELETE", fmt.Sprintf("/api/routes/%d", route.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var count int64
		require.NoError(t, db.Model(&models.CableRoute{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)

		require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("404 для несуществующего маршрута", func(t *testing.T) {
		w := performRequest(router, "DELETE", "/api/routes/99999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
