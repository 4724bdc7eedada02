package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-dashboard/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	testProducts := []model.Product{
		{ID: 1, Name: "Water", Quantity: 24, Price: decimal.RequireFromString("1.99"), CategoryID: 1, CategoryName: "Drinks"},
		{ID: 2, Name: "Chips", Quantity: 5, Price: decimal.RequireFromString("4.50"), CategoryID: 2, CategoryName: "Snacks"},
	}

	tests := []struct {
		name           string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			mockService.On("List", mock.Anything).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				var products []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
				require.Len(t, products, 2)
				assert.Equal(t, "Drinks", products[0].CategoryName)
				assert.True(t, decimal.RequireFromString("1.99").Equal(products[0].Price))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(in model.NewProduct) bool {
			return in.Name == "Water" &&
				in.Quantity == 24 &&
				in.Price.Equal(decimal.RequireFromString("1.99")) &&
				in.CategoryID == 1
		})).Return(&model.Product{ID: 7, Name: "Water", Quantity: 24, CategoryID: 1}, nil)

		body := `{"name":"Water","quantity":24,"price":"1.99","categoryId":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var product model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
		assert.Equal(t, int64(7), product.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("not json"))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown category", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrCategoryNotFound)

		body := `{"name":"Water","quantity":1,"price":1,"categoryId":99}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeCategoryNotFound, resp.Error)
		assert.Equal(t, "category not found", resp.Message)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		id             string
		expectService  bool
		mockError      error
		expectedStatus int
	}{
		{name: "Success", id: "4", expectService: true, expectedStatus: http.StatusNoContent},
		{name: "Not found", id: "4", expectService: true, mockError: model.ErrProductNotFound, expectedStatus: http.StatusNotFound},
		{name: "Invalid id", id: "four", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Delete", mock.Anything, int64(4)).Return(tt.mockError)
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/products/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Summary(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, logger)

	mockService.On("Summary", mock.Anything).Return(&model.Summary{
		ProductCount: 1,
		TotalValue:   decimal.RequireFromString("47.76"),
		Chart:        []model.ChartBar{{Label: "Water", Quantity: 24, Percent: 100}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()

	handler.Summary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var summary model.Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 1, summary.ProductCount)
	assert.True(t, decimal.RequireFromString("47.76").Equal(summary.TotalValue))
	require.Len(t, summary.Chart, 1)
	assert.Equal(t, "Water", summary.Chart[0].Label)
}
