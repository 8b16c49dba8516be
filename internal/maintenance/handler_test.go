package maintenance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupHandlerTest(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func parseEnvelope(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

func TestHandler_ListDue_Success(t *testing.T) {
	repo := new(mockRepo)
	handler := NewHandler(NewService(repo, nil))

	repo.On("ListVehicleSnapshots", mock.Anything, uuid.Nil, uuid.Nil).
		Return([]VehicleSnapshot{testVehicle(14600, date(2025, 1, 10))}, nil)
	repo.On("ListPlans", mock.Anything).
		Return([]PlanEntry{{ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: 5000, RemindBeforeKm: 500}}, nil)
	repo.On("ListServiceTypeRefs", mock.Anything).
		Return([]ServiceTypeRef{*activeOilType()}, nil)
	repo.On("ListServiceEvents", mock.Anything, uuid.Nil, uuid.Nil).
		Return([]ServiceEvent{{
			VehicleID: testVehicleID, ServiceTypeID: testOilID,
			Date: date(2026, 2, 1), Mileage: 10000, LogSeq: 1,
		}}, nil)

	c, w := setupHandlerTest("GET", "/api/v1/maintenance/due", nil)
	handler.ListDue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseEnvelope(w)
	assert.True(t, response["success"].(bool))
	rows := response["data"].(map[string]interface{})["rows"].([]interface{})
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(400), row["km_to_due"])
	assert.True(t, row["is_due"].(bool))
	repo.AssertExpectations(t)
}

func TestHandler_ListDue_InvalidOfficeFilter(t *testing.T) {
	repo := new(mockRepo)
	handler := NewHandler(NewService(repo, nil))

	c, w := setupHandlerTest("GET", "/api/v1/maintenance/due?office_id=not-a-uuid", nil)
	handler.ListDue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseEnvelope(w)
	assert.False(t, response["success"].(bool))
}

func TestHandler_PerformService_Success(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return date(2026, 8, 1) }
	handler := NewHandler(svc)

	repo.On("GetVehicleSnapshot", mock.Anything, testVehicleID).
		Return(&VehicleSnapshot{
			VehicleID: testVehicleID, ModelID: testModelID, OfficeID: testOfficeID,
			Plate: "AB-1234-CD", Mileage: 15200, CreatedAt: date(2025, 1, 10),
		}, nil)
	repo.On("GetServiceTypeRef", mock.Anything, testOilID).Return(activeOilType(), nil)
	repo.On("CreateLog", mock.Anything, mock.MatchedBy(func(l *LogEntry) bool {
		return l.Mileage == 15200 && len(l.CostLines) == 1 && l.CostLines[0].Cost == 45
	})).Return(nil)

	c, w := setupHandlerTest("POST", "/api/v1/maintenance/perform-service", PerformServiceRequest{
		VehicleID:     testVehicleID,
		ServiceTypeID: testOilID,
	})
	handler.PerformService(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := parseEnvelope(w)
	assert.True(t, response["success"].(bool))
	repo.AssertExpectations(t)
}

func TestHandler_PerformService_MissingServiceType(t *testing.T) {
	repo := new(mockRepo)
	handler := NewHandler(NewService(repo, nil))

	c, w := setupHandlerTest("POST", "/api/v1/maintenance/perform-service", map[string]interface{}{
		"vehicle_id": testVehicleID,
	})
	handler.PerformService(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreatePlan_RejectsMalformedBody(t *testing.T) {
	repo := new(mockRepo)
	handler := NewHandler(NewService(repo, nil))

	c, w := setupHandlerTest("POST", "/api/v1/maintenance/plans", map[string]interface{}{
		"model_id": "not-a-uuid",
	})
	handler.CreatePlan(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreatePlan")
}
