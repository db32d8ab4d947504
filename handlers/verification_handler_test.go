package handlers

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
	"net/textproto"
	"testing"

	"labelcheck-backend/ocr"
	"labelcheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEngine struct {
	text string
}

func (f *fixedEngine) Name() string { return "fixed" }

func (f *fixedEngine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	return ocr.Result{PlainText: f.text}, nil
}

const handlerLabelText = "EAGLE PEAK\nKENTUCKY STRAIGHT BOURBON WHISKEY\n45% Alc./Vol.\n750 mL\n" +
	"GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink " +
	"alcoholic beverages during pregnancy because of the risk of birth defects. " +
	"(2) Consumption of alcoholic beverages impairs your ability to drive a car or " +
	"operate machinery, and may cause health problems."

func newTestRouter(engineText string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewVerificationService(service.WithOCREngine(&fixedEngine{text: engineText}))
	handler := NewVerificationHandler(svc)

	router := gin.New()
	router.POST("/api/verify", handler.VerifyLabel)
	return router
}

func labelImageBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 500, 500))
	for y := 0; y < 500; y++ {
		for x := 0; x < 500; x++ {
			img.Set(x, y, color.RGBA{R: uint8((x*7 + y*13) % 256), G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	for buf.Len() < 5000 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func buildVerifyRequest(t *testing.T, fields map[string]string, imageBytes []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if imageBytes != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="label_image"; filename="label.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(imageBytes)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/verify", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestVerifyLabelEndpoint(t *testing.T) {
	router := newTestRouter(handlerLabelText)

	fields := map[string]string{
		"brand_name":      "Eagle Peak",
		"product_class":   "Bourbon Whiskey",
		"alcohol_content": "45.0",
		"net_contents":    "750",
		"beverage_type":   "spirits",
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, buildVerifyRequest(t, fields, labelImageBytes(t)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success       bool   `json:"success"`
		OverallMatch  bool   `json:"overall_match"`
		ExtractedText string `json:"extracted_text"`
		Checks        []struct {
			FieldName string `json:"field_name"`
			Matched   bool   `json:"matched"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.True(t, resp.OverallMatch)
	assert.Equal(t, handlerLabelText, resp.ExtractedText)
	assert.NotEmpty(t, resp.Checks)
}

func TestVerifyLabelEndpointValidation(t *testing.T) {
	router := newTestRouter(handlerLabelText)
	img := labelImageBytes(t)

	cases := []struct {
		name     string
		fields   map[string]string
		image    []byte
		wantCode string
	}{
		{
			name: "missing brand name",
			fields: map[string]string{
				"product_class":   "Bourbon Whiskey",
				"alcohol_content": "45.0",
			},
			image:    img,
			wantCode: "MISSING_BRAND_NAME",
		},
		{
			name: "missing product class",
			fields: map[string]string{
				"brand_name":      "Eagle Peak",
				"alcohol_content": "45.0",
			},
			image:    img,
			wantCode: "MISSING_PRODUCT_CLASS",
		},
		{
			name: "non-numeric alcohol content",
			fields: map[string]string{
				"brand_name":      "Eagle Peak",
				"product_class":   "Bourbon Whiskey",
				"alcohol_content": "forty-five",
			},
			image:    img,
			wantCode: "INVALID_ALCOHOL_CONTENT",
		},
		{
			name: "missing image",
			fields: map[string]string{
				"brand_name":      "Eagle Peak",
				"product_class":   "Bourbon Whiskey",
				"alcohol_content": "45.0",
			},
			image:    nil,
			wantCode: "MISSING_FILE",
		},
		{
			name: "bad user id",
			fields: map[string]string{
				"brand_name":      "Eagle Peak",
				"product_class":   "Bourbon Whiskey",
				"alcohol_content": "45.0",
				"user_id":         "not-a-uuid",
			},
			image:    img,
			wantCode: "INVALID_USER_ID",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, buildVerifyRequest(t, tc.fields, tc.image))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestVerifyLabelEndpointRejectsNonImageUpload(t *testing.T) {
	router := newTestRouter(handlerLabelText)

	cases := []struct {
		name        string
		contentType string
	}{
		{name: "declared non-image type", contentType: "text/plain"},
		{name: "no declared type", contentType: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			require.NoError(t, writer.WriteField("brand_name", "Eagle Peak"))
			require.NoError(t, writer.WriteField("product_class", "Bourbon Whiskey"))
			require.NoError(t, writer.WriteField("alcohol_content", "45.0"))

			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="label_image"; filename="label.txt"`)
			if tc.contentType != "" {
				header.Set("Content-Type", tc.contentType)
			}
			part, err := writer.CreatePart(header)
			require.NoError(t, err)
			_, err = part.Write([]byte("not an image"))
			require.NoError(t, err)
			require.NoError(t, writer.Close())

			req := httptest.NewRequest(http.MethodPost, "/api/verify", &body)
			req.Header.Set("Content-Type", writer.FormDataContentType())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_FILE_TYPE", resp.Error.Code)
		})
	}
}

func TestVerifyLabelEndpointMismatch(t *testing.T) {
	router := newTestRouter(handlerLabelText)

	fields := map[string]string{
		"brand_name":      "Mountain Ridge",
		"product_class":   "Bourbon Whiskey",
		"alcohol_content": "45.0",
		"beverage_type":   "spirits",
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, buildVerifyRequest(t, fields, labelImageBytes(t)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success      bool `json:"success"`
		OverallMatch bool `json:"overall_match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success, "a mismatch verdict is still a successful verification")
	assert.False(t, resp.OverallMatch)
}
