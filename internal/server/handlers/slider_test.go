package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

func TestSliderHandler_Create(t *testing.T) {
	newBody := func() []byte {
		body, _ := json.Marshal(api.CreateSliderImageRequest{
			Title:    "Summer sale",
			Filename: "sale.jpg",
			Data:     []byte("fake-image-bytes"),
			Position: 1,
		})
		return body
	}

	t.Run("retailer uploads banner", func(t *testing.T) {
		slider := newMockSliderStorage()
		uploader := &mockUploader{}
		h := NewSliderHandler(testLogger(), slider, uploader)

		req := authedRequest(http.MethodPost, "/api/slider", newBody(), "admin1", models.RoleRetailer)
		w := httptest.NewRecorder()

		h.Create(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.SliderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "https://images.example.com/sale.jpg", resp.Data[0].ImageURL)

		// delete_token хранится, но наружу не отдается
		assert.NotContains(t, w.Body.String(), "token-sale.jpg")
		require.Len(t, slider.images, 1)
		for _, img := range slider.images {
			assert.Equal(t, "token-sale.jpg", img.DeleteToken)
		}
	})

	t.Run("customer forbidden", func(t *testing.T) {
		uploader := &mockUploader{}
		h := NewSliderHandler(testLogger(), newMockSliderStorage(), uploader)

		req := authedRequest(http.MethodPost, "/api/slider", newBody(), "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Only the retailer can manage slider images")
		assert.Empty(t, uploader.uploaded)
	})

	t.Run("hosting failure", func(t *testing.T) {
		slider := newMockSliderStorage()
		uploader := &mockUploader{uploadError: errors.New("hosting down")}
		h := NewSliderHandler(testLogger(), slider, uploader)

		req := authedRequest(http.MethodPost, "/api/slider", newBody(), "admin1", models.RoleRetailer)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to upload image")
		assert.Empty(t, slider.images)
	})

	t.Run("empty image data", func(t *testing.T) {
		h := NewSliderHandler(testLogger(), newMockSliderStorage(), &mockUploader{})

		body, _ := json.Marshal(api.CreateSliderImageRequest{Title: "empty"})
		req := authedRequest(http.MethodPost, "/api/slider", body, "admin1", models.RoleRetailer)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSliderHandler_Delete(t *testing.T) {
	t.Run("deletes record and hosting copy", func(t *testing.T) {
		slider := newMockSliderStorage()
		slider.images["img1"] = &api.SliderImage{ID: "img1", ImageURL: "https://x/1.jpg", DeleteToken: "tok1"}
		uploader := &mockUploader{}
		h := NewSliderHandler(testLogger(), slider, uploader)

		req := authedRequest(http.MethodDelete, "/api/slider/img1", nil, "admin1", models.RoleRetailer)
		req.SetPathValue("id", "img1")
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, slider.images)
		assert.Equal(t, []string{"tok1"}, uploader.deletedTokens)
	})

	t.Run("hosting delete failure is not fatal", func(t *testing.T) {
		slider := newMockSliderStorage()
		slider.images["img1"] = &api.SliderImage{ID: "img1", DeleteToken: "tok1"}
		uploader := &mockUploader{deleteError: errors.New("hosting down")}
		h := NewSliderHandler(testLogger(), slider, uploader)

		req := authedRequest(http.MethodDelete, "/api/slider/img1", nil, "admin1", models.RoleRetailer)
		req.SetPathValue("id", "img1")
		w := httptest.NewRecorder()

		h.Delete(w, req)

		// Запись из БД все равно уходит
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, slider.images)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewSliderHandler(testLogger(), newMockSliderStorage(), &mockUploader{})

		req := authedRequest(http.MethodDelete, "/api/slider/ghost", nil, "admin1", models.RoleRetailer)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
